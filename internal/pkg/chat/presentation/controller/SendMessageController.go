package controller

import (
	"net/http"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/task"
	"go-parley/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// SendMessageController handles the send-message endpoint only (one controller per endpoint).
// It persists first, answers the sender, and hands delivery to the fan-out,
// which runs independently of this request.
type SendMessageController struct {
	UC     *usecase.SendMessageUseCase
	Fanout *task.Fanout
}

func NewSendMessageController(uc *usecase.SendMessageUseCase, fanout *task.Fanout) *SendMessageController {
	return &SendMessageController{UC: uc, Fanout: fanout}
}

type sendMessageRequest struct {
	Content        *string `json:"content"`
	AttachmentPath *string `json:"attachment_path"`
}

func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		out, err := h.UC.Execute(c.Request.Context(), usecase.SendMessageInput{
			RoomID:         c.Param("id"),
			SenderID:       auth.UserID(c),
			Content:        req.Content,
			AttachmentPath: req.AttachmentPath,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		// Durable write is done; delivery is best-effort from here on.
		h.Fanout.MessageCreated(c.Request.Context(), out.Room, out.Message)

		c.JSON(http.StatusCreated, toMessageResponse(out.Message))
	}
}
