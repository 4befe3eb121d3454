package http

import (
	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/user/application/usecase"
	repository "go-parley/internal/pkg/user/persistence/repository/adapter"
	"go-parley/internal/pkg/user/presentation/controller"

	chatAdapter "go-parley/internal/pkg/chat/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterPublicRoutes registers the unauthenticated account endpoints.
func RegisterPublicRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, tokens *auth.TokenManager) {
	users := repository.NewPgUserRepository(pool)
	hasher := auth.NewPasswordHasher()

	registerCtl := controller.NewRegisterController(usecase.NewRegisterUseCase(users, hasher), tokens)
	loginCtl := controller.NewLoginController(usecase.NewLoginUseCase(users, hasher), tokens)

	g.POST("/auth/register", registerCtl.Handle())
	g.POST("/auth/login", loginCtl.Handle())
}

// RegisterRoutes registers the authenticated account endpoints under the
// given router group.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, mw *auth.Middleware) {
	users := repository.NewPgUserRepository(pool)
	rooms := chatAdapter.NewPgRoomRepository(pool)

	logoutCtl := controller.NewLogoutController(mw)
	authUserCtl := controller.NewGetAuthUserController(usecase.NewGetProfileUseCase(users))
	showProfileCtl := controller.NewShowProfileController(usecase.NewGetProfileUseCase(users))
	updateProfileCtl := controller.NewUpdateProfileController(usecase.NewUpdateProfileUseCase(users))
	listUsersCtl := controller.NewListUsersController(usecase.NewListStrangersUseCase(users, rooms))

	g.POST("/auth/logout", logoutCtl.Handle())
	g.GET("/auth/user", authUserCtl.Handle())
	g.GET("/profile", showProfileCtl.Handle())
	g.PUT("/profile", updateProfileCtl.Handle())
	g.GET("/users", listUsersCtl.Handle())
}
