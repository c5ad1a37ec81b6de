package storage

import "context"

// Storage объединяет все хранилища сервера
type Storage interface {
	UserStorage
	FollowStorage
	PostStorage
	LikeStorage
	CommentStorage

	// Ping checks the database connection
	Ping(ctx context.Context) error
	Close() error
}
