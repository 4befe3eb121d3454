package controller

import (
	"net/http"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/user/application/usecase"

	"github.com/gin-gonic/gin"
)

// LoginController exchanges credentials for a bearer token.
type LoginController struct {
	UC     *usecase.LoginUseCase
	Tokens *auth.TokenManager
}

func NewLoginController(uc *usecase.LoginUseCase, tokens *auth.TokenManager) *LoginController {
	return &LoginController{UC: uc, Tokens: tokens}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *LoginController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		u, err := h.UC.Execute(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		token, err := h.Tokens.Issue(u.ID, u.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": u.Public(), "token": token})
	}
}
