package models

import "time"

// User представляет аккаунт пользователя в системе
type User struct {
	CreatedAt    time.Time `db:"created_at" json:"created_at"`       // время создания
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`       // время последнего обновления
	ID           string    `db:"id" json:"id"`                       // UUID пользователя
	Username     string    `db:"username" json:"username"`           // уникальный username
	Email        string    `db:"email" json:"email"`                 // уникальный email (lower-case)
	PasswordHash string    `db:"password_hash" json:"-"`             // bcrypt digest, наружу не отдается
	FirstName    string    `db:"first_name" json:"first_name"`       // имя
	LastName     string    `db:"last_name" json:"last_name"`         // фамилия
	Bio          string    `db:"bio" json:"bio,omitempty"`           // пустая строка = нет bio
}

// Summary returns the public projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// UserSummary is the author block embedded in posts, comments and likes.
type UserSummary struct {
	ID        string `db:"id" json:"id"`
	Username  string `db:"username" json:"username"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
}

// Identity is the authenticated caller attached to a request context.
type Identity struct {
	UserID   string
	Username string
}
