package http

import (
	"go-parley/internal/infrastructure/realtime"
	"go-parley/internal/pkg/chat/application/task"
	"go-parley/internal/pkg/chat/application/usecase"
	repoAdapter "go-parley/internal/pkg/chat/persistence/repository/adapter"
	"go-parley/internal/pkg/chat/presentation/controller"
	userAdapter "go-parley/internal/pkg/user/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes registers chat-related HTTP endpoints under the given router group.
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, hub *realtime.Hub, fanout *task.Fanout) {
	rooms := repoAdapter.NewPgRoomRepository(pool)
	messages := repoAdapter.NewPgMessageRepository(pool)
	users := userAdapter.NewPgUserRepository(pool)

	listCtl := controller.NewListChatRoomsController(usecase.NewListRoomsUseCase(rooms))
	createCtl := controller.NewCreateChatRoomController(usecase.NewCreateRoomUseCase(rooms))
	showCtl := controller.NewShowChatRoomController(usecase.NewGetRoomUseCase(rooms, messages))
	deleteCtl := controller.NewDeleteChatRoomController(usecase.NewDeleteRoomUseCase(rooms))
	joinCtl := controller.NewJoinChatRoomController(usecase.NewJoinRoomUseCase(rooms))
	leaveCtl := controller.NewLeaveChatRoomController(usecase.NewLeaveRoomUseCase(rooms))
	listMsgCtl := controller.NewListMessagesController(usecase.NewListMessagesUseCase(rooms, messages))
	sendMsgCtl := controller.NewSendMessageController(usecase.NewSendMessageUseCase(rooms, messages, users), fanout)
	readMsgCtl := controller.NewMarkMessageReadController(usecase.NewMarkMessageReadUseCase(messages))
	addFriendCtl := controller.NewAddFriendController(usecase.NewAddFriendUseCase(rooms, users))

	authorizeUC := usecase.NewAuthorizeChannelUseCase(rooms, users)
	broadcastAuthCtl := controller.NewBroadcastAuthController(authorizeUC)
	socketCtl := controller.NewChatSocketController(hub, authorizeUC, fanout)

	g.GET("/chat-rooms", listCtl.Handle())
	g.POST("/chat-rooms", createCtl.Handle())
	g.GET("/chat-rooms/:id", showCtl.Handle())
	g.DELETE("/chat-rooms/:id", deleteCtl.Handle())
	g.POST("/chat-rooms/:id/join", joinCtl.Handle())
	g.POST("/chat-rooms/:id/leave", leaveCtl.Handle())

	g.GET("/chat-rooms/:id/messages", listMsgCtl.Handle())
	g.POST("/chat-rooms/:id/messages", sendMsgCtl.Handle())
	g.POST("/chat-rooms/:id/messages/:messageId/read", readMsgCtl.Handle())

	// Creates the personal room between the caller and the target user.
	g.POST("/users/:id/add-friend", addFriendCtl.Handle())

	// The pub/sub transport calls this to authorize a channel subscription.
	g.POST("/broadcasting/auth", broadcastAuthCtl.Handle())

	// Websocket endpoint for realtime chat.
	g.GET("/ws", socketCtl.Handle())
}
