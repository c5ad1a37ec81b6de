package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrEmailAlreadyExists indicates that the email is bound to another account
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrFollowExists indicates a duplicate follower/following pair
	ErrFollowExists = errors.New("follow already exists")

	// ErrFollowNotFound indicates that the follow edge does not exist
	ErrFollowNotFound = errors.New("follow not found")

	// ErrSelfFollow indicates an attempt to store a follower == following edge
	ErrSelfFollow = errors.New("user cannot follow itself")

	// ErrPostNotFound indicates that post was not found in storage
	ErrPostNotFound = errors.New("post not found")

	// ErrLikeExists indicates a duplicate like on the same post
	ErrLikeExists = errors.New("like already exists")

	// ErrLikeNotFound indicates that the like does not exist
	ErrLikeNotFound = errors.New("like not found")

	// ErrCommentNotFound indicates that comment was not found in storage
	ErrCommentNotFound = errors.New("comment not found")

	// ErrReferenceNotFound indicates a foreign key pointing at a missing row
	ErrReferenceNotFound = errors.New("referenced entity not found")
)
