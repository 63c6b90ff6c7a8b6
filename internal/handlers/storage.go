package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thereayou/studnet/internal/handlers/dto"
)

type StorageHandler struct {
	uploadDir string
	log       *zap.Logger
}

func NewStorageHandler(uploadDir string, logger *zap.Logger) *StorageHandler {
	return &StorageHandler{uploadDir: uploadDir, log: logger}
}

// Upload принимает multipart-файл и кладёт его в uploadDir под случайным
// именем, оригинальное имя возвращается клиенту для подписи вложения
func (h *StorageHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File is required."})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.log.Error("upload: mkdir failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Upload failed."})
		return
	}

	stored := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, stored)); err != nil {
		h.log.Error("upload: save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Upload failed."})
		return
	}

	c.JSON(http.StatusOK, dto.UploadView{
		URL:  "/uploads/" + stored,
		Name: file.Filename,
	})
}
