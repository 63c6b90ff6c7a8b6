package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/studnet/internal/database"
	"github.com/thereayou/studnet/internal/services"
	"github.com/thereayou/studnet/pkg/auth"
)

const UserKey = "currentUser"

// CurrentUser — identity запроса без хеша пароля
type CurrentUser struct {
	ID       string
	Email    string
	FullName string
	Faculty  string
}

// AuthMiddleware проверяет bearer-токен и находит пользователя.
// Preflight-запросы (OPTIONS) пропускаются без проверки.
// Ровно один запрос к базе на вызов, результат нигде не кешируется.
func AuthMiddleware(jwtManager *auth.JWTManager, users services.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			if errors.Is(err, auth.ErrBadTokenFormat) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token format. Use: Bearer <token>"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No authentication token provided."})
			return
		}

		claims, err := jwtManager.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token."})
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found."})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token."})
			return
		}

		c.Set(UserKey, CurrentUser{
			ID:       user.ID.Hex(),
			Email:    user.Email,
			FullName: user.FullName,
			Faculty:  user.Faculty,
		})
		c.Next()
	}
}

// GetCurrentUser достаёт identity, положенную AuthMiddleware
func GetCurrentUser(c *gin.Context) (CurrentUser, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return CurrentUser{}, false
	}
	user, ok := v.(CurrentUser)
	return user, ok
}
