package controller

import (
	"net/http"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// LeaveChatRoomController handles the leave endpoint only (one controller per endpoint)
type LeaveChatRoomController struct {
	UC *usecase.LeaveRoomUseCase
}

func NewLeaveChatRoomController(uc *usecase.LeaveRoomUseCase) *LeaveChatRoomController {
	return &LeaveChatRoomController{UC: uc}
}

func (h *LeaveChatRoomController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.UC.Execute(c.Request.Context(), c.Param("id"), auth.UserID(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Left successfully"})
	}
}
