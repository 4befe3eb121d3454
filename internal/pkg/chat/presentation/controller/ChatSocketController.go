package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go-parley/internal/infrastructure/realtime"
	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/task"
	"go-parley/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ChatSocketController handles the websocket endpoint for realtime chat traffic.
// Clients send subscribe/unsubscribe frames naming a channel; each subscribe
// attempt is authorized independently before the hub starts routing to it.
type ChatSocketController struct {
	hub             *realtime.Hub
	authorizeUC     *usecase.AuthorizeChannelUseCase
	fanout          *task.Fanout
	inflightTimeout time.Duration
}

func NewChatSocketController(hub *realtime.Hub, authorizeUC *usecase.AuthorizeChannelUseCase, fanout *task.Fanout) *ChatSocketController {
	return &ChatSocketController{
		hub:             hub,
		authorizeUC:     authorizeUC,
		fanout:          fanout,
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when deployed behind a known frontend.
		return true
	},
}

type inboundFrame struct {
	Type    string `json:"type"`
	Channel string `json:"channel,omitempty"`
}

type ackFrame struct {
	Type    string `json:"type"`
	Channel string `json:"channel,omitempty"`
}

type errorFrame struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Error   string `json:"error"`
	Channel string `json:"channel,omitempty"`
}

const defaultReadTimeout = 60 * time.Second

// Handle upgrades HTTP connections to websocket and processes frames until the client disconnects.
func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.UserID(c)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just return.
			return
		}

		conn := realtime.NewConnection(userID, ws)
		ctl.hub.Attach(conn)
		defer func() {
			ctl.hub.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 20) // 1MB payload cap
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		ctl.reply(conn, ackFrame{Type: "connected"})

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				ctl.replyError(conn, "read_error", "", err.Error())
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "", "invalid payload")
				continue
			}

			switch frame.Type {
			case "subscribe":
				ctl.handleSubscribe(c, conn, userID, frame)
			case "unsubscribe":
				ctl.handleUnsubscribe(conn, frame)
			case "ping":
				ctl.reply(conn, ackFrame{Type: "pong"})
			default:
				ctl.replyError(conn, "unsupported_type", frame.Channel, "unknown frame type")
			}
		}
	}
}

func (ctl *ChatSocketController) handleSubscribe(c *gin.Context, conn *realtime.Connection, userID string, frame inboundFrame) {
	if frame.Channel == "" {
		ctl.replyError(conn, "bad_request", "", "channel is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	out, err := ctl.authorizeUC.Execute(ctx, userID, frame.Channel)
	if err != nil {
		ctl.replyError(conn, "internal_error", frame.Channel, "authorization failed")
		return
	}
	if !out.Granted {
		ctl.replyError(conn, "forbidden", frame.Channel, "subscription denied")
		return
	}

	ctl.hub.Subscribe(frame.Channel, conn)
	ctl.reply(conn, ackFrame{Type: "subscribed", Channel: frame.Channel})

	// Presence channels announce the newcomer to everyone already listening.
	if out.Identity != nil {
		ctl.fanout.SubscriberJoined(ctx, frame.Channel, *out.Identity)
	}
}

func (ctl *ChatSocketController) handleUnsubscribe(conn *realtime.Connection, frame inboundFrame) {
	if frame.Channel == "" {
		ctl.replyError(conn, "bad_request", "", "channel is required")
		return
	}
	ctl.hub.Unsubscribe(frame.Channel, conn)
	ctl.reply(conn, ackFrame{Type: "unsubscribed", Channel: frame.Channel})
}

func (ctl *ChatSocketController) reply(conn *realtime.Connection, frame any) {
	if payload, err := json.Marshal(frame); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *ChatSocketController) replyError(conn *realtime.Connection, code, channel, message string) {
	ctl.reply(conn, errorFrame{Type: "error", Code: code, Error: message, Channel: channel})
}
