package dto

import (
	"time"

	"github.com/thereayou/studnet/internal/models"
)

type SendMessageRequest struct {
	GroupID  string `json:"group_id"`
	Text     string `json:"text"`
	FileURL  string `json:"file_url"`
	FileName string `json:"file_name"`
	Type     string `json:"type"`
}

type MessageView struct {
	ID        string     `json:"id"`
	GroupID   string     `json:"group_id"`
	UserID    string     `json:"user_id"`
	Text      string     `json:"text,omitempty"`
	FileURL   string     `json:"file_url,omitempty"`
	FileName  string     `json:"file_name,omitempty"`
	Type      string     `json:"type"`
	CreatedAt time.Time  `json:"created_at"`
	Profiles  AuthorView `json:"profiles"`
}

func NewMessageView(m *models.Message, author AuthorView) MessageView {
	return MessageView{
		ID:        m.ID.Hex(),
		GroupID:   m.GroupID.Hex(),
		UserID:    m.UserID.Hex(),
		Text:      m.Text,
		FileURL:   m.FileURL,
		FileName:  m.FileName,
		Type:      m.Type,
		CreatedAt: m.CreatedAt,
		Profiles:  author,
	}
}
