package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/haneulkids/daily-learning-backend/internal/apperr"
	"github.com/haneulkids/daily-learning-backend/internal/requestdata"
	"github.com/haneulkids/daily-learning-backend/internal/services"
)

type DailySetHandler struct {
	selector   services.SelectorService
	submission services.SubmissionService
}

func NewDailySetHandler(selector services.SelectorService, submission services.SubmissionService) *DailySetHandler {
	return &DailySetHandler{selector: selector, submission: submission}
}

// GetDailySet resolves today's set for the requested grade and semester.
// Authentication is optional: an authenticated student also gets their
// existing learning record for the set.
func (h *DailySetHandler) GetDailySet(c *gin.Context) {
	grade, err := strconv.Atoi(c.Query("grade"))
	if err != nil {
		RespondError(c, apperr.Validation("grade must be an integer"))
		return
	}
	semester, err := strconv.Atoi(c.Query("semester"))
	if err != nil {
		RespondError(c, apperr.Validation("semester must be an integer"))
		return
	}

	var dayOverride *int
	if raw := c.Query("day"); raw != "" {
		day, err := strconv.Atoi(raw)
		if err != nil {
			RespondError(c, apperr.Validation("day must be an integer"))
			return
		}
		dayOverride = &day
	}

	var studentID *uuid.UUID
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
		id := rd.UserID
		studentID = &id
	}

	result, err := h.selector.GetDailySet(c.Request.Context(), grade, semester, dayOverride, studentID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *DailySetHandler) Submit(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apperr.Auth("not authenticated"))
		return
	}

	var input services.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apperr.Validation("invalid request body"))
		return
	}

	result, err := h.submission.Submit(c.Request.Context(), rd.UserID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}
