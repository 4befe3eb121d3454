package controller

import (
	"net/http"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/user/application/usecase"

	"github.com/gin-gonic/gin"
)

// RegisterController handles account creation and answers with a fresh token
// so new users are signed in immediately.
type RegisterController struct {
	UC     *usecase.RegisterUseCase
	Tokens *auth.TokenManager
}

func NewRegisterController(uc *usecase.RegisterUseCase, tokens *auth.TokenManager) *RegisterController {
	return &RegisterController{UC: uc, Tokens: tokens}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *RegisterController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		u, err := h.UC.Execute(c.Request.Context(), usecase.RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		token, err := h.Tokens.Issue(u.ID, u.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"user": u.Public(), "token": token})
	}
}
