package controller

import (
	"errors"
	"net/http"

	chat "go-parley/internal/pkg/chat/application/domain"
	"go-parley/internal/pkg/chat/application/usecase"
	user "go-parley/internal/pkg/user/application/domain"

	"github.com/gin-gonic/gin"
)

// respondError maps use case and domain errors onto the HTTP error taxonomy.
// Messages are short and stable; clients may match on them.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrRoomNotFound),
		errors.Is(err, chat.ErrMessageNotFound),
		errors.Is(err, user.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, chat.ErrForbidden), errors.Is(err, chat.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	case errors.Is(err, chat.ErrNotJoinable):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only public rooms can be joined"})
	case errors.Is(err, chat.ErrAlreadyMember):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already a member"})
	case errors.Is(err, chat.ErrNotMember):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not a member"})
	case errors.Is(err, chat.ErrPersonalRoom):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot leave personal room"})
	case errors.Is(err, chat.ErrAlreadyFriends):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Already friends"})
	case errors.Is(err, chat.ErrSelfFriend):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot add yourself as a friend"})
	case errors.Is(err, chat.ErrMessageMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message does not belong to this chat room"})
	case errors.Is(err, chat.ErrEmptyMessage):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Message must contain content or an attachment"})
	case errors.Is(err, chat.ErrInvalidRoomInput), errors.Is(err, chat.ErrInvalidRoomType):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid chat room input"})
	case errors.Is(err, usecase.ErrPersistence):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
