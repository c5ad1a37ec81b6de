package service

import (
	"errors"
	"fmt"

	"github.com/iudanet/gophsocial/internal/validation"
)

// Kind classifies service failures. Handlers map kinds to HTTP statuses.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	}
	return "internal"
}

// Error is the typed result of a failed service operation.
// Message is safe to show to the client; Err is for logs only.
type Error struct {
	Err     error
	Message string
	Kind    Kind
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind and message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// Ошибки, которые сервисы возвращают напрямую
var (
	// ErrInvalidCredentials не различает неизвестного пользователя и неверный пароль
	ErrInvalidCredentials = &Error{Kind: KindUnauthenticated, Message: "invalid credentials"}
	ErrForbidden          = &Error{Kind: KindForbidden, Message: "not allowed"}

	ErrUserNotFound    = &Error{Kind: KindNotFound, Message: "user not found"}
	ErrPostNotFound    = &Error{Kind: KindNotFound, Message: "post not found"}
	ErrCommentNotFound = &Error{Kind: KindNotFound, Message: "comment not found"}

	ErrUsernameTaken    = &Error{Kind: KindConflict, Message: "username already taken"}
	ErrEmailTaken       = &Error{Kind: KindConflict, Message: "email already in use"}
	ErrAlreadyFollowing = &Error{Kind: KindConflict, Message: "already following this user"}
	ErrAlreadyLiked     = &Error{Kind: KindConflict, Message: "post already liked"}

	ErrSelfFollow   = &Error{Kind: KindInvalid, Message: "cannot follow yourself"}
	ErrNotFollowing = &Error{Kind: KindInvalid, Message: "not following this user"}
	ErrOwnPostLike  = &Error{Kind: KindInvalid, Message: "cannot like your own post"}
	ErrNotLiked     = &Error{Kind: KindInvalid, Message: "post is not liked"}
)

func invalid(message string) *Error {
	return &Error{Kind: KindInvalid, Message: message}
}

// internal wraps an unexpected failure; its detail never reaches the client.
func internal(op string, err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: fmt.Errorf("%s: %w", op, err)}
}

// validate runs struct validation and converts violations into KindInvalid.
func validate(input any) error {
	err := validation.Struct(input)
	if err == nil {
		return nil
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		return &Error{Kind: KindInvalid, Message: verr.Error(), Err: err}
	}
	return internal("validate", err)
}

// KindOf returns the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
