package controller

import (
	"net/http"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/user/application/usecase"

	"github.com/gin-gonic/gin"
)

// ShowProfileController handles the profile read endpoint only (one controller per endpoint)
type ShowProfileController struct {
	UC *usecase.GetProfileUseCase
}

func NewShowProfileController(uc *usecase.GetProfileUseCase) *ShowProfileController {
	return &ShowProfileController{UC: uc}
}

func (h *ShowProfileController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := h.UC.Execute(c.Request.Context(), auth.UserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, u.Public())
	}
}
