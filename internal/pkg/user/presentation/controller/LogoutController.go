package controller

import (
	"net/http"

	"go-parley/internal/pkg/auth"

	"github.com/gin-gonic/gin"
)

// LogoutController denylists the current token for its remaining lifetime.
type LogoutController struct {
	Auth *auth.Middleware
}

func NewLogoutController(mw *auth.Middleware) *LogoutController {
	return &LogoutController{Auth: mw}
}

func (h *LogoutController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.Auth.Revoke(c.Request.Context(), c); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
