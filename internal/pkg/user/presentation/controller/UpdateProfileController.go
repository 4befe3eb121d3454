package controller

import (
	"net/http"

	"go-parley/internal/pkg/auth"
	"go-parley/internal/pkg/user/application/usecase"

	"github.com/gin-gonic/gin"
)

// UpdateProfileController handles partial profile updates. Absent fields are
// left untouched.
type UpdateProfileController struct {
	UC *usecase.UpdateProfileUseCase
}

func NewUpdateProfileController(uc *usecase.UpdateProfileUseCase) *UpdateProfileController {
	return &UpdateProfileController{UC: uc}
}

type updateProfileRequest struct {
	Name       *string `json:"name"`
	AvatarPath *string `json:"avatar_path"`
}

func (h *UpdateProfileController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		u, err := h.UC.Execute(c.Request.Context(), usecase.UpdateProfileInput{
			UserID:     auth.UserID(c),
			Name:       req.Name,
			AvatarPath: req.AvatarPath,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, u.Public())
	}
}
