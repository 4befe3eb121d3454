package controller

import (
	"net/http"

	"go-parley/internal/pkg/auth"
	user "go-parley/internal/pkg/user/application/domain"
	"go-parley/internal/pkg/user/application/usecase"

	"github.com/gin-gonic/gin"
)

// ListUsersController lists accounts the caller has no personal room with yet,
// i.e. the candidates for add-friend.
type ListUsersController struct {
	UC *usecase.ListStrangersUseCase
}

func NewListUsersController(uc *usecase.ListStrangersUseCase) *ListUsersController {
	return &ListUsersController{UC: uc}
}

func (h *ListUsersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := h.UC.Execute(c.Request.Context(), auth.UserID(c))
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]user.Public, 0, len(users))
		for _, u := range users {
			out = append(out, u.Public())
		}
		c.JSON(http.StatusOK, out)
	}
}
