package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeService_LikeUnlike(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	post := env.post(t, alice, "like me")

	like, err := env.svc.Likes.Like(ctx, bob, post.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.UserID, like.UserID)
	assert.Equal(t, post.ID, like.PostID)

	_, err = env.svc.Likes.Like(ctx, bob, post.ID)
	assert.ErrorIs(t, err, ErrAlreadyLiked)

	_, err = env.svc.Likes.Like(ctx, alice, post.ID)
	assert.ErrorIs(t, err, ErrOwnPostLike)

	_, err = env.svc.Likes.Like(ctx, bob, "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)

	view, err := env.svc.Posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.LikeCount)

	liked, err := env.svc.Likes.HasLiked(ctx, bob, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	require.NoError(t, env.svc.Likes.Unlike(ctx, bob, post.ID))
	assert.ErrorIs(t, env.svc.Likes.Unlike(ctx, bob, post.ID), ErrNotLiked)

	n, err := env.svc.Likes.CountForPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLikeService_Toggle(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	post := env.post(t, alice, "toggle")

	liked, err := env.svc.Likes.Toggle(ctx, bob, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = env.svc.Likes.Toggle(ctx, bob, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	_, err = env.svc.Likes.Toggle(ctx, alice, post.ID)
	assert.ErrorIs(t, err, ErrOwnPostLike)
}

func TestLikeService_Listings(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	carol := env.register(t, "carol")

	popular := env.post(t, alice, "popular")
	quiet := env.post(t, alice, "quiet")
	env.post(t, alice, "ignored")

	for _, id := range []string{popular.ID, quiet.ID} {
		_, err := env.svc.Likes.Like(ctx, bob, id)
		require.NoError(t, err)
	}
	_, err := env.svc.Likes.Like(ctx, carol, popular.ID)
	require.NoError(t, err)

	likes, err := env.svc.Likes.ForPost(ctx, popular.ID)
	require.NoError(t, err)
	require.Len(t, likes, 2)
	// новые сверху
	assert.Equal(t, "carol", likes[0].Username)

	byBob, err := env.svc.Likes.ByUser(ctx, bob.UserID)
	require.NoError(t, err)
	assert.Len(t, byBob, 2)

	n, err := env.svc.Likes.CountByUser(ctx, bob.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	top, err := env.svc.Likes.MostLiked(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"popular", "quiet"}, contents(top))
	assert.Equal(t, int64(2), top[0].LikeCount)

	_, err = env.svc.Likes.ByUser(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
