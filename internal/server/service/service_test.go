package service

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/gophsocial/internal/crypto"
	"github.com/iudanet/gophsocial/internal/models"
	"github.com/iudanet/gophsocial/internal/server/jwt"
	"github.com/iudanet/gophsocial/internal/server/storage/sqldb"
)

// countingHasher считает вызовы Hash и Verify
type countingHasher struct {
	inner   crypto.PasswordHasher
	hashes  atomic.Int32
	verifys atomic.Int32
}

func (h *countingHasher) Hash(plaintext string) (string, error) {
	h.hashes.Add(1)
	return h.inner.Hash(plaintext)
}

func (h *countingHasher) Verify(plaintext, digest string) bool {
	h.verifys.Add(1)
	return h.inner.Verify(plaintext, digest)
}

// stepClock каждый вызов сдвигает время на секунду
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type testEnv struct {
	svc    *Services
	store  *sqldb.Storage
	hasher *countingHasher
	tokens *jwt.Service
	clock  *stepClock
}

func setupServices(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqldb.New(context.Background(), sqldb.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	clock := &stepClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	tokens, err := jwt.NewService("test-secret", jwt.DefaultTTL, jwt.WithClock(clock.Now))
	require.NoError(t, err)

	hasher := &countingHasher{inner: crypto.NewBcryptHasher(bcrypt.MinCost)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := New(store, hasher, tokens, logger, WithClock(clock.Now))
	require.NoError(t, err)
	// конструктор хеширует dummy-пароль, счетчики считают только операции теста
	hasher.hashes.Store(0)

	return &testEnv{
		svc:    svc,
		store:  store,
		hasher: hasher,
		tokens: tokens,
		clock:  clock,
	}
}

func (e *testEnv) register(t *testing.T, username string) models.Identity {
	t.Helper()

	res, err := e.svc.Auth.Register(context.Background(), RegisterInput{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "password123",
		FirstName: "First",
		LastName:  "Last",
	})
	require.NoError(t, err)
	return models.Identity{UserID: res.User.ID, Username: res.User.Username}
}

func (e *testEnv) post(t *testing.T, author models.Identity, content string) *models.PostView {
	t.Helper()

	post, err := e.svc.Posts.Create(context.Background(), author, PostInput{Content: content})
	require.NoError(t, err)
	return post
}

func assertKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, KindOf(err), "unexpected kind for %v", err)
}

func TestCheckPage(t *testing.T) {
	tests := []struct {
		req     *models.PageRequest
		name    string
		wantErr bool
	}{
		{name: "nil means whole list", req: nil},
		{name: "first page", req: &models.PageRequest{Page: 0, Size: 20}},
		{name: "max size", req: &models.PageRequest{Page: 3, Size: models.MaxPageSize}},
		{name: "negative page", req: &models.PageRequest{Page: -1, Size: 10}, wantErr: true},
		{name: "zero size", req: &models.PageRequest{Page: 0, Size: 0}, wantErr: true},
		{name: "too large", req: &models.PageRequest{Page: 0, Size: models.MaxPageSize + 1}, wantErr: true},
		{name: "offset overflow", req: &models.PageRequest{Page: math.MaxInt/20 + 1, Size: 20}, wantErr: true},
		{name: "max page", req: &models.PageRequest{Page: math.MaxInt, Size: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkPage(tt.req)
			if tt.wantErr {
				assertKind(t, err, KindInvalid)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPageOf(t *testing.T) {
	page := pageOf([]int{1, 2}, 5, &models.PageRequest{Page: 1, Size: 2})
	assert.Equal(t, []int{1, 2}, page.Items)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.Size)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages())

	whole := pageOf([]int{1, 2, 3}, 3, nil)
	assert.Equal(t, 3, whole.Size)
	assert.Equal(t, 1, whole.TotalPages())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(ErrPostNotFound))
	assert.Equal(t, KindInternal, KindOf(io.EOF))
	assert.Equal(t, KindInvalid, KindOf(invalid("bad")))

	err := internal("op", io.EOF)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "internal server error", err.Message)
	assert.ErrorIs(t, err, io.EOF)
}

func TestError_Is(t *testing.T) {
	assert.ErrorIs(t, &Error{Kind: KindConflict, Message: "username already taken"}, ErrUsernameTaken)
	assert.NotErrorIs(t, ErrEmailTaken, ErrUsernameTaken)
	assert.Equal(t, "conflict", KindConflict.String())
	assert.Equal(t, "internal", KindInternal.String())
}
