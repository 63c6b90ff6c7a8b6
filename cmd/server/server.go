package server

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thereayou/studnet/internal/config"
	"github.com/thereayou/studnet/internal/database"
	"github.com/thereayou/studnet/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	Cfg        *config.Config
	DB         *database.Database
	JWTManager *auth.JWTManager
	Log        *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap init failed: %v", err)
	}

	if cfg.JWTSecret == config.DefaultJWTSecret {
		logger.Warn("JWT_SECRET is not set, using insecure default; do not deploy like this")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		logger.Fatal("Mongo connect failed", zap.Error(err))
	}

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))
	router.Static("/uploads", cfg.UploadDir)

	APIEndpoints(router, cfg, db, jwtMgr, logger)

	return &Server{
		Router:     router,
		Cfg:        cfg,
		DB:         db,
		JWTManager: jwtMgr,
		Log:        logger,
	}
}

func (s *Server) Run() {
	s.Log.Info("server starting", zap.String("port", s.Cfg.Port))
	if err := s.Router.Run(":" + s.Cfg.Port); err != nil {
		s.Log.Fatal("server run error", zap.Error(err))
	}
}
