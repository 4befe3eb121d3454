package controller

import (
	"net/http"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// ListMessagesController handles the message-history endpoint only (one controller per endpoint)
type ListMessagesController struct {
	UC *usecase.ListMessagesUseCase
}

func NewListMessagesController(uc *usecase.ListMessagesUseCase) *ListMessagesController {
	return &ListMessagesController{UC: uc}
}

func (h *ListMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		msgs, err := h.UC.Execute(c.Request.Context(), c.Param("id"), auth.UserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toMessageResponses(msgs))
	}
}
