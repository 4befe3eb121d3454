package controller

import (
	"net/http"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/user/application/usecase"

	"github.com/gin-gonic/gin"
)

// GetAuthUserController returns the account behind the current token.
type GetAuthUserController struct {
	UC *usecase.GetProfileUseCase
}

func NewGetAuthUserController(uc *usecase.GetProfileUseCase) *GetAuthUserController {
	return &GetAuthUserController{UC: uc}
}

func (h *GetAuthUserController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := h.UC.Execute(c.Request.Context(), auth.UserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, u.Public())
	}
}
