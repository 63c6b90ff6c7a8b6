package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/thereayou/studnet/internal/config"
	"github.com/thereayou/studnet/internal/database"
	"github.com/thereayou/studnet/internal/handlers/dto"
	"github.com/thereayou/studnet/internal/middleware"
	"github.com/thereayou/studnet/internal/models"
	"github.com/thereayou/studnet/internal/services"
	"github.com/thereayou/studnet/pkg/auth"
)

type AuthHandler struct {
	users      services.UserStore
	jwtManager *auth.JWTManager
	cfg        *config.Config
	log        *zap.Logger
}

func NewAuthHandler(users services.UserStore, jwtMgr *auth.JWTManager, cfg *config.Config, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, jwtManager: jwtMgr, cfg: cfg, log: logger}
}

// Register создаёт аккаунт и сразу логинит: токен выдаётся в том же ответе
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Complete all required fields."})
		return
	}

	if req.Email == "" || req.Password == "" || req.FullName == "" || req.Faculty == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Complete all required fields."})
		return
	}

	if !strings.HasSuffix(req.Email, h.cfg.InstitutionDomain) {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Email must be institutional (%s).", h.cfg.InstitutionDomain)})
		return
	}

	if _, err := h.users.GetUserByEmail(c.Request.Context(), req.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered."})
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		h.log.Error("register: email lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed."})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.log.Error("register: hash password failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed."})
		return
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Faculty:      req.Faculty,
	}
	if err := h.users.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered."})
			return
		}
		h.log.Error("register: create user failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed."})
		return
	}

	// Без отката: если выдача токена упала, аккаунт остаётся
	token, expiresAt, err := h.jwtManager.Generate(user.ID.Hex(), user.Email)
	if err != nil {
		h.log.Error("register: token generate failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed."})
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message: "Account created successfully.",
		User:    dto.NewUserView(user),
		Session: dto.SessionView{AccessToken: token, ExpiresAt: expiresAt.UnixMilli()},
	})
}

// Login выдаёт свежий токен, старые остаются валидными до истечения
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required."})
		return
	}

	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required."})
		return
	}

	user, err := h.users.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// тот же ответ, что и при неверном пароле
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email or password."})
			return
		}
		h.log.Error("login: email lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email or password."})
		return
	}

	token, expiresAt, err := h.jwtManager.Generate(user.ID.Hex(), user.Email)
	if err != nil {
		h.log.Error("login: token generate failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed."})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Message: "Login successful.",
		User:    dto.NewUserView(user),
		Session: dto.SessionView{AccessToken: token, ExpiresAt: expiresAt.UnixMilli()},
	})
}

// Logout ничего не делает на сервере: токены stateless, клиент просто забывает свой
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful."})
}

// Session перепроверяет токен и возвращает identity — клиент так решает,
// жив ли ещё сохранённый токен
func (h *AuthHandler) Session(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No authentication token provided."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.UserView{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Faculty:  user.Faculty,
	}})
}
