// Package service holds the business rules of the social backend.
// Every operation returns either a value or a *Error with a Kind.
package service

import (
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/gophsocial/internal/crypto"
	"github.com/iudanet/gophsocial/internal/models"
	"github.com/iudanet/gophsocial/internal/server/storage"
)

const (
	// DefaultSuggestionLimit сколько пользователей предлагать для подписки
	DefaultSuggestionLimit = 20
	// DefaultTopLimit размер выборок "most liked" и "recent"
	DefaultTopLimit = 10
)

// TokenService выпускает и проверяет session tokens
type TokenService interface {
	Issue(subject string) (string, time.Time, error)
	Validate(token string) (string, bool)
}

// Clock returns the current time; injected so tests control timestamps.
type Clock func() time.Time

// Services bundles every service of the application.
type Services struct {
	Auth     *AuthService
	Users    *UserService
	Follows  *FollowService
	Posts    *PostService
	Likes    *LikeService
	Comments *CommentService
}

// Option настраивает Services
type Option func(*config)

type config struct {
	now   Clock
	newID func() string
}

// WithClock подменяет источник времени
func WithClock(now Clock) Option {
	return func(c *config) {
		c.now = now
	}
}

// WithIDGenerator подменяет генератор идентификаторов
func WithIDGenerator(gen func() string) Option {
	return func(c *config) {
		c.newID = gen
	}
}

// New wires all services on top of one storage.
// Fails if the hasher cannot produce the digest used for unknown-user logins.
func New(store storage.Storage, hasher crypto.PasswordHasher, tokens TokenService, logger *slog.Logger, opts ...Option) (*Services, error) {
	cfg := &config{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(cfg)
	}

	auth, err := newAuthService(store, hasher, tokens, logger, cfg)
	if err != nil {
		return nil, err
	}

	return &Services{
		Auth:     auth,
		Users:    &UserService{users: store, hasher: hasher, cfg: cfg},
		Follows:  &FollowService{users: store, follows: store, cfg: cfg},
		Posts:    &PostService{posts: store, users: store, cfg: cfg},
		Likes:    &LikeService{likes: store, posts: store, users: store, cfg: cfg},
		Comments: &CommentService{comments: store, posts: store, users: store, cfg: cfg},
	}, nil
}

func (c *config) timestamp() time.Time {
	return c.now().UTC().Truncate(time.Microsecond)
}

// pageOf builds a models.Page from a storage result.
// For a nil request the whole list is one page.
func pageOf[T any](items []T, total int64, req *models.PageRequest) *models.Page[T] {
	if req == nil {
		return &models.Page[T]{Items: items, Page: 0, Size: len(items), Total: total}
	}
	return &models.Page[T]{Items: items, Page: req.Page, Size: req.Size, Total: total}
}

// checkPage rejects negative or overflowing pages and out-of-range sizes.
func checkPage(req *models.PageRequest) error {
	if req == nil {
		return nil
	}
	if req.Page < 0 {
		return invalid("page must not be negative")
	}
	if req.Size < 1 || req.Size > models.MaxPageSize {
		return invalid("size must be between 1 and 100")
	}
	// Page*Size не должен переполнять int: отрицательный OFFSET sqlite читает как 0
	if req.Page > math.MaxInt/req.Size {
		return invalid("page is out of range")
	}
	return nil
}
