package controller

import (
	"net/http"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// DeleteChatRoomController handles the delete endpoint only (one controller per endpoint)
type DeleteChatRoomController struct {
	UC *usecase.DeleteRoomUseCase
}

func NewDeleteChatRoomController(uc *usecase.DeleteRoomUseCase) *DeleteChatRoomController {
	return &DeleteChatRoomController{UC: uc}
}

func (h *DeleteChatRoomController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.UC.Execute(c.Request.Context(), c.Param("id"), auth.UserID(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Chat room deleted"})
	}
}
