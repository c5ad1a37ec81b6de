package api

import "time"

// TokenType тип токена в AuthResponse
const TokenType = "Bearer"

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio,omitempty"`
}

// LoginRequest представляет запрос на аутентификацию.
// UsernameOrEmail принимает username или email.
type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

// AuthResponse представляет ответ с токеном доступа
type AuthResponse struct {
	ExpiresAt time.Time    `json:"expires_at"` // момент истечения токена
	Token     string       `json:"token"`      // JWT access token
	Type      string       `json:"type"`       // всегда "Bearer"
	User      UserResponse `json:"user"`
}

// ValidateRequest запрос на проверку токена
type ValidateRequest struct {
	Token string `json:"token"`
}

// ValidateResponse результат проверки токена
type ValidateResponse struct {
	Username string `json:"username,omitempty"`
	Valid    bool   `json:"valid"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
