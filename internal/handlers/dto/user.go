package dto

import "github.com/thereayou/studnet/internal/models"

// UserView — публичное представление пользователя.
// Единственный путь сериализации User наружу: хеш пароля сюда не попадает.
type UserView struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Faculty  string `json:"faculty"`
}

func NewUserView(u *models.User) UserView {
	return UserView{
		ID:       u.ID.Hex(),
		Email:    u.Email,
		FullName: u.FullName,
		Faculty:  u.Faculty,
	}
}

// AuthorView — профиль автора внутри сообщения
type AuthorView struct {
	ID       string `json:"id,omitempty"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

func NewAuthorView(u *models.User) AuthorView {
	return AuthorView{
		ID:       u.ID.Hex(),
		FullName: u.FullName,
		Email:    u.Email,
	}
}

// PlaceholderAuthor подставляется, когда автор сообщения больше не существует
func PlaceholderAuthor() AuthorView {
	return AuthorView{FullName: "Utilizator", Email: ""}
}
