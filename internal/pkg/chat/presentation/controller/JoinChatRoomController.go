package controller

import (
	"net/http"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// JoinChatRoomController handles the join endpoint only (one controller per endpoint)
type JoinChatRoomController struct {
	UC *usecase.JoinRoomUseCase
}

func NewJoinChatRoomController(uc *usecase.JoinRoomUseCase) *JoinChatRoomController {
	return &JoinChatRoomController{UC: uc}
}

func (h *JoinChatRoomController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.UC.Execute(c.Request.Context(), c.Param("id"), auth.UserID(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Joined successfully"})
	}
}
