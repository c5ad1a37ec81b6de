package models

import "time"

// Like отметка "нравится" пользователя на пост
type Like struct {
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	PostID    string    `db:"post_id" json:"post_id"`
}

// LikeView is a like joined with the liking user.
type LikeView struct {
	CreatedAt time.Time `db:"created_at"`
	ID        string    `db:"id"`
	PostID    string    `db:"post_id"`
	UserID    string    `db:"user_id"`
	Username  string    `db:"username"`
}
