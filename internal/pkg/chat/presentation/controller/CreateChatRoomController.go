package controller

import (
	"net/http"

	"go-parley/internal/pkg/auth"
	chat "go-parley/internal/pkg/chat/application/domain"
	"go-parley/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// CreateChatRoomController handles the create-room endpoint only (one controller per endpoint)
type CreateChatRoomController struct {
	UC *usecase.CreateRoomUseCase
}

func NewCreateChatRoomController(uc *usecase.CreateRoomUseCase) *CreateChatRoomController {
	return &CreateChatRoomController{UC: uc}
}

type createChatRoomRequest struct {
	Name      string   `json:"name" binding:"required"`
	Type      string   `json:"type" binding:"required"`
	MemberIDs []string `json:"member_ids"`
}

func (h *CreateChatRoomController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createChatRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		room, err := h.UC.Execute(c.Request.Context(), usecase.CreateRoomInput{
			CreatorID: auth.UserID(c),
			Name:      req.Name,
			Type:      chat.RoomType(req.Type),
			MemberIDs: req.MemberIDs,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toRoomResponse(*room))
	}
}
