package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thereayou/studnet/internal/database"
	"github.com/thereayou/studnet/internal/handlers/dto"
	"github.com/thereayou/studnet/internal/middleware"
	"github.com/thereayou/studnet/internal/services"
)

type ProfileHandler struct {
	users services.UserStore
	log   *zap.Logger
}

func NewProfileHandler(users services.UserStore, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{users: users, log: logger}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	current, _ := middleware.GetCurrentUser(c)

	user, err := h.users.GetUserByID(c.Request.Context(), current.ID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Profile not found."})
			return
		}
		h.log.Error("get profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch profile."})
		return
	}

	c.JSON(http.StatusOK, dto.NewUserView(user))
}

// List отдаёт всех пользователей по алфавиту, без хеша пароля
func (h *ProfileHandler) List(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		h.log.Error("list profiles failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch profiles."})
		return
	}

	profiles := make([]dto.UserView, 0, len(users))
	for i := range users {
		profiles = append(profiles, dto.NewUserView(&users[i]))
	}

	c.JSON(http.StatusOK, profiles)
}
