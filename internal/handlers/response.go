package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haneulkids/daily-learning-backend/internal/apperr"
)

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

// RespondError maps a service error onto the HTTP status and error
// envelope. Unknown errors come back as a generic 500 so internal detail
// never leaks to the client.
func RespondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	c.JSON(status, errorEnvelope{Error: apiError{
		Message: message,
		Code:    apperr.Code(err),
	}})
}

func RespondOK(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}
