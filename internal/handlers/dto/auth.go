package dto

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Faculty  string `json:"faculty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionView — выданный токен и абсолютный момент истечения (unix-миллисекунды)
type SessionView struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

type AuthResponse struct {
	Message string      `json:"message"`
	User    UserView    `json:"user"`
	Session SessionView `json:"session"`
}
