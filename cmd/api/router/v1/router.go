package v1

import (
	"go-parley/internal/infrastructure/realtime"
	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/chat/application/task"
	chatHTTP "go-parley/internal/pkg/chat/presentation/http"
	userHTTP "go-parley/internal/pkg/user/presentation/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1. Everything
// except register and login sits behind the auth middleware.
func RegisterRoutes(r *gin.Engine, pool *pgxpool.Pool, mw *auth.Middleware, hub *realtime.Hub, fanout *task.Fanout) {
	v1 := r.Group("/api/v1")

	userHTTP.RegisterPublicRoutes(v1, pool, mw.Tokens)

	authed := v1.Group("")
	authed.Use(mw.Handler())
	userHTTP.RegisterRoutes(authed, pool, mw)
	chatHTTP.RegisterRoutes(authed, pool, hub, fanout)
}
