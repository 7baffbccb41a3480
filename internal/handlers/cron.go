package handlers

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/haneulkids/daily-learning-backend/internal/apperr"
	"github.com/haneulkids/daily-learning-backend/internal/requestdata"
	"github.com/haneulkids/daily-learning-backend/internal/services"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

type CronHandler struct {
	assignments services.AssignmentService
	cronSecret  string
}

func NewCronHandler(assignments services.AssignmentService, cronSecret string) *CronHandler {
	return &CronHandler{assignments: assignments, cronSecret: cronSecret}
}

// AssignDailySets runs the daily assignment job. The scheduler calls it
// with X-Cron-Secret; teachers and admins may also trigger it manually
// with their own token.
func (h *CronHandler) AssignDailySets(c *gin.Context) {
	if !h.allowed(c) {
		RespondError(c, apperr.Forbidden("not allowed to run this job"))
		return
	}

	report, err := h.assignments.AssignDailySets(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, report)
}

func (h *CronHandler) allowed(c *gin.Context) bool {
	if secret := c.GetHeader("X-Cron-Secret"); secret != "" && h.cronSecret != "" {
		return subtle.ConstantTimeCompare([]byte(secret), []byte(h.cronSecret)) == 1
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		return false
	}
	return rd.Role == types.RoleAdmin || rd.Role == types.RoleTeacher
}
