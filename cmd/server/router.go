package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thereayou/studnet/internal/config"
	"github.com/thereayou/studnet/internal/database"
	"github.com/thereayou/studnet/internal/handlers"
	"github.com/thereayou/studnet/internal/middleware"
	"github.com/thereayou/studnet/pkg/auth"
)

func APIEndpoints(r *gin.Engine, cfg *config.Config, db *database.Database, jwtMgr *auth.JWTManager, logger *zap.Logger) {
	authH := handlers.NewAuthHandler(db, jwtMgr, cfg, logger)
	groupH := handlers.NewGroupHandler(db, logger)
	messageH := handlers.NewMessageHandler(db, logger)
	profileH := handlers.NewProfileHandler(db, logger)
	storageH := handlers.NewStorageHandler(cfg.UploadDir, logger)

	guard := middleware.AuthMiddleware(jwtMgr, db)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Backend is running"})
	})

	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/logout", authH.Logout)
		authGroup.GET("/session", guard, authH.Session)
	}

	groups := r.Group("/groups", guard)
	{
		groups.GET("", groupH.List)
		groups.POST("", groupH.Create)
		groups.GET("/:id", groupH.Get)
		groups.DELETE("/:id", groupH.Delete)
		groups.POST("/:id/join", groupH.Join)
		groups.POST("/:id/leave", groupH.Leave)
	}

	messages := r.Group("/messages", guard)
	{
		messages.GET("/group/:groupId", messageH.ListByGroup)
		messages.POST("", messageH.Send)
	}

	profiles := r.Group("/profiles", guard)
	{
		profiles.GET("", profileH.List)
		profiles.GET("/me", profileH.Me)
	}

	r.POST("/storage/upload", guard, storageH.Upload)
}
