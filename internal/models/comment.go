package models

import "time"

// Comment комментарий к посту
type Comment struct {
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	PostID    string    `db:"post_id" json:"post_id"`
	Content   string    `db:"content" json:"content"`
}

// CommentView is a comment joined with its author.
type CommentView struct {
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
	ID              string    `db:"id"`
	PostID          string    `db:"post_id"`
	Content         string    `db:"content"`
	AuthorID        string    `db:"author_id"`
	AuthorUsername  string    `db:"author_username"`
	AuthorFirstName string    `db:"author_first_name"`
	AuthorLastName  string    `db:"author_last_name"`
}

// Author returns the author block of the view.
func (c *CommentView) Author() UserSummary {
	return UserSummary{
		ID:        c.AuthorID,
		Username:  c.AuthorUsername,
		FirstName: c.AuthorFirstName,
		LastName:  c.AuthorLastName,
	}
}
