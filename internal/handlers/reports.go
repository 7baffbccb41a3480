package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/haneulkids/daily-learning-backend/internal/apperr"
	"github.com/haneulkids/daily-learning-backend/internal/requestdata"
	"github.com/haneulkids/daily-learning-backend/internal/services"
)

type ReportHandler struct {
	reports services.ReportService
}

func NewReportHandler(reports services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apperr.Auth("not authenticated"))
		return
	}

	query := services.ReportQuery{
		Period: c.DefaultQuery("period", "week"),
		From:   c.Query("from"),
		To:     c.Query("to"),
	}
	if raw := c.Query("student_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, apperr.Validation("student_id must be a uuid"))
			return
		}
		query.StudentID = &id
	}

	report, err := h.reports.GetReport(c.Request.Context(), rd.UserID, query)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, report)
}
