package controller

import (
	"net/http"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// ShowChatRoomController handles the room-detail endpoint only (one controller per endpoint)
type ShowChatRoomController struct {
	UC *usecase.GetRoomUseCase
}

func NewShowChatRoomController(uc *usecase.GetRoomUseCase) *ShowChatRoomController {
	return &ShowChatRoomController{UC: uc}
}

func (h *ShowChatRoomController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := h.UC.Execute(c.Request.Context(), c.Param("id"), auth.UserID(c))
		if err != nil {
			respondError(c, err)
			return
		}

		resp := gin.H{
			"id":         detail.Room.ID,
			"owner_id":   detail.Room.OwnerID,
			"name":       detail.Room.Name,
			"type":       string(detail.Room.Type),
			"created_at": detail.Room.CreatedAt,
			"members":    toMemberResponses(detail.Members),
			"messages":   toMessageResponses(detail.Messages),
		}
		c.JSON(http.StatusOK, resp)
	}
}
