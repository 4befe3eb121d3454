package controller

import (
	"net/http"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// BroadcastAuthController is the single endpoint the pub/sub transport calls
// to authorize a subscription attempt. Every attempt is checked fresh;
// a past grant is never honored on its own.
type BroadcastAuthController struct {
	UC *usecase.AuthorizeChannelUseCase
}

func NewBroadcastAuthController(uc *usecase.AuthorizeChannelUseCase) *BroadcastAuthController {
	return &BroadcastAuthController{UC: uc}
}

type broadcastAuthRequest struct {
	ChannelName string `json:"channel_name" binding:"required"`
}

func (h *BroadcastAuthController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req broadcastAuthRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		out, err := h.UC.Execute(c.Request.Context(), auth.UserID(c), req.ChannelName)
		if err != nil {
			respondError(c, err)
			return
		}
		if !out.Granted {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
			return
		}

		resp := gin.H{"granted": true}
		if out.Identity != nil {
			resp["identity"] = out.Identity
		}
		c.JSON(http.StatusOK, resp)
	}
}
