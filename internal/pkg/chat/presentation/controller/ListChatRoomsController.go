package controller

import (
	"net/http"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// ListChatRoomsController handles the room-list endpoint only (one controller per endpoint)
type ListChatRoomsController struct {
	UC *usecase.ListRoomsUseCase
}

func NewListChatRoomsController(uc *usecase.ListRoomsUseCase) *ListChatRoomsController {
	return &ListChatRoomsController{UC: uc}
}

func (h *ListChatRoomsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := h.UC.Execute(c.Request.Context(), auth.UserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"owned_rooms":  toRoomResponses(out.OwnedRooms),
			"member_rooms": toRoomResponses(out.MemberRooms),
			"public_rooms": toRoomResponses(out.PublicRooms),
		})
	}
}
