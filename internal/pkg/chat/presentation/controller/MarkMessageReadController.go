package controller

import (
	"net/http"

	"go-parley/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// MarkMessageReadController handles the mark-as-read endpoint only (one controller per endpoint)
type MarkMessageReadController struct {
	UC *usecase.MarkMessageReadUseCase
}

func NewMarkMessageReadController(uc *usecase.MarkMessageReadUseCase) *MarkMessageReadController {
	return &MarkMessageReadController{UC: uc}
}

func (h *MarkMessageReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.UC.Execute(c.Request.Context(), c.Param("id"), c.Param("messageId")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
	}
}
