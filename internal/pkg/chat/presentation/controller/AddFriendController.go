package controller

import (
	"net/http"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// AddFriendController creates the personal room between the caller and the
// target user.
type AddFriendController struct {
	UC *usecase.AddFriendUseCase
}

func NewAddFriendController(uc *usecase.AddFriendUseCase) *AddFriendController {
	return &AddFriendController{UC: uc}
}

func (h *AddFriendController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		room, err := h.UC.Execute(c.Request.Context(), auth.UserID(c), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toRoomResponse(*room))
	}
}
