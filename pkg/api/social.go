package api

import "time"

// UserResponse публичное представление пользователя. Хеш пароля не передается.
type UserResponse struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Bio       string    `json:"bio"`
}

// UserSummary автор поста или комментария
type UserSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UpdateUserRequest частичное обновление профиля, отсутствующие поля не меняются
type UpdateUserRequest struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

// ContentRequest тело создания/редактирования поста или комментария
type ContentRequest struct {
	Content string `json:"content"`
}

// PostResponse пост с автором и счетчиками
type PostResponse struct {
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	User         UserSummary `json:"user"`
	ID           string      `json:"id"`
	Content      string      `json:"content"`
	LikeCount    int64       `json:"like_count"`
	CommentCount int64       `json:"comment_count"`
}

// CommentResponse комментарий с автором
type CommentResponse struct {
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	User      UserSummary `json:"user"`
	ID        string      `json:"id"`
	PostID    string      `json:"post_id"`
	Content   string      `json:"content"`
}

// LikeResponse отметка "нравится"
type LikeResponse struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
}

// FollowResponse ребро графа подписок
type FollowResponse struct {
	CreatedAt   time.Time `json:"created_at"`
	ID          string    `json:"id"`
	FollowerID  string    `json:"follower_id"`
	FollowingID string    `json:"following_id"`
}

// Page страница упорядоченного списка
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"total_elements"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"total_pages"`
}

// CountResponse ответ со счетчиком
type CountResponse struct {
	Count int64 `json:"count"`
}

// ExistsResponse ответ проверки занятости username/email
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// FollowingResponse ответ проверки подписки
type FollowingResponse struct {
	Following bool `json:"following"`
}

// LikedResponse текущее состояние лайка
type LikedResponse struct {
	Liked bool `json:"liked"`
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version,omitempty"`
	Database string `json:"database,omitempty"`
}
