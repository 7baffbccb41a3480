package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/haneulkids/daily-learning-backend/internal/apperr"
	"github.com/haneulkids/daily-learning-backend/internal/requestdata"
	"github.com/haneulkids/daily-learning-backend/internal/services"
)

type GenerateHandler struct {
	generation services.GenerationService
}

func NewGenerateHandler(generation services.GenerationService) *GenerateHandler {
	return &GenerateHandler{generation: generation}
}

func (h *GenerateHandler) GenerateSet(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apperr.Auth("not authenticated"))
		return
	}

	var input services.GenerateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apperr.Validation("invalid request body"))
		return
	}

	result, err := h.generation.GenerateSet(c.Request.Context(), rd.UserID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}
