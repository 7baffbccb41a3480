package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/haneulkids/daily-learning-backend/internal/apperr"
	"github.com/haneulkids/daily-learning-backend/internal/requestdata"
	"github.com/haneulkids/daily-learning-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var input services.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apperr.Validation("invalid request body"))
		return
	}
	result, err := h.authService.Signup(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input services.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apperr.Validation("invalid request body"))
		return
	}
	result, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apperr.Validation("invalid request body"))
		return
	}
	result, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apperr.Auth("not authenticated"))
		return
	}
	if err := h.authService.Logout(c.Request.Context(), rd.UserID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "logged out"})
}
