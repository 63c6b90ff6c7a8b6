package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/thereayou/studnet/internal/database"
	"github.com/thereayou/studnet/internal/handlers/dto"
	"github.com/thereayou/studnet/internal/middleware"
	"github.com/thereayou/studnet/internal/models"
	"github.com/thereayou/studnet/internal/services"
)

type MessageHandler struct {
	store services.Store
	log   *zap.Logger
}

func NewMessageHandler(store services.Store, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{store: store, log: logger}
}

// ListByGroup возвращает сообщения группы по возрастанию created_at.
// Профили авторов подтягиваются одним батч-запросом по уникальным id;
// исчезнувший автор рендерится заглушкой, запрос не падает.
func (h *MessageHandler) ListByGroup(c *gin.Context) {
	messages, err := h.store.ListMessagesByGroup(c.Request.Context(), c.Param("groupId"))
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		h.log.Error("list messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch messages."})
		return
	}

	seen := make(map[string]bool)
	authorIDs := make([]string, 0)
	for _, m := range messages {
		id := m.UserID.Hex()
		if !seen[id] {
			seen[id] = true
			authorIDs = append(authorIDs, id)
		}
	}

	authors, err := h.store.GetUsersByIDs(c.Request.Context(), authorIDs)
	if err != nil {
		h.log.Error("list messages: author lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch messages."})
		return
	}

	profileMap := make(map[string]dto.AuthorView, len(authors))
	for i := range authors {
		profileMap[authors[i].ID.Hex()] = dto.NewAuthorView(&authors[i])
	}

	views := make([]dto.MessageView, 0, len(messages))
	for i := range messages {
		author, ok := profileMap[messages[i].UserID.Hex()]
		if !ok {
			author = dto.PlaceholderAuthor()
		}
		views = append(views, dto.NewMessageView(&messages[i], author))
	}

	c.JSON(http.StatusOK, views)
}

// Send сохраняет сообщение от имени вызывающего. Членство в группе
// не проверяется: писать может любой аутентифицированный пользователь.
func (h *MessageHandler) Send(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Group ID is required."})
		return
	}

	if req.GroupID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Group ID is required."})
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" && req.FileURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Message text or file is required."})
		return
	}

	msgType := req.Type
	if msgType == "" {
		msgType = models.MessageTypeText
	}
	if msgType != models.MessageTypeText && msgType != models.MessageTypeImage && msgType != models.MessageTypeFile {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid message type."})
		return
	}

	groupOID, err := primitive.ObjectIDFromHex(req.GroupID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid group ID."})
		return
	}
	authorOID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found."})
		return
	}

	message := &models.Message{
		GroupID:  groupOID,
		UserID:   authorOID,
		Text:     text,
		FileURL:  req.FileURL,
		FileName: req.FileName,
		Type:     msgType,
	}
	if err := h.store.CreateMessage(c.Request.Context(), message); err != nil {
		h.log.Error("send message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send message."})
		return
	}

	author := dto.AuthorView{ID: user.ID, FullName: user.FullName, Email: user.Email}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent successfully.",
		"data":    dto.NewMessageView(message, author),
	})
}
