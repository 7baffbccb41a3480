package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

type VersionHandler struct{}

func NewVersionHandler() *VersionHandler { return &VersionHandler{} }

func (h *VersionHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": Version})
}
