package models

import "time"

// Post представляет публикацию пользователя
type Post struct {
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"` // автор
	Content   string    `db:"content" json:"content"`
}

// PostView is a post joined with its author and counters.
type PostView struct {
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
	ID              string    `db:"id"`
	Content         string    `db:"content"`
	AuthorID        string    `db:"author_id"`
	AuthorUsername  string    `db:"author_username"`
	AuthorFirstName string    `db:"author_first_name"`
	AuthorLastName  string    `db:"author_last_name"`
	LikeCount       int64     `db:"like_count"`
	CommentCount    int64     `db:"comment_count"`
}

// Author returns the author block of the view.
func (p *PostView) Author() UserSummary {
	return UserSummary{
		ID:        p.AuthorID,
		Username:  p.AuthorUsername,
		FirstName: p.AuthorFirstName,
		LastName:  p.AuthorLastName,
	}
}
