package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophsocial/internal/models"
)

func TestCommentService(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	post := env.post(t, alice, "discuss")

	first, err := env.svc.Comments.Create(ctx, bob, post.ID, CommentInput{Content: "first!"})
	require.NoError(t, err)
	assert.Equal(t, "bob", first.AuthorUsername)
	assert.Equal(t, post.ID, first.PostID)

	_, err = env.svc.Comments.Create(ctx, alice, post.ID, CommentInput{Content: "Thanks"})
	require.NoError(t, err)

	t.Run("validation", func(t *testing.T) {
		_, err := env.svc.Comments.Create(ctx, bob, post.ID, CommentInput{Content: ""})
		assertKind(t, err, KindInvalid)

		_, err = env.svc.Comments.Create(ctx, bob, "missing", CommentInput{Content: "hi"})
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("for post oldest first", func(t *testing.T) {
		page, err := env.svc.Comments.ForPost(ctx, post.ID, nil)
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.Equal(t, "first!", page.Items[0].Content)
		assert.Equal(t, "Thanks", page.Items[1].Content)

		n, err := env.svc.Comments.CountForPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		view, err := env.svc.Posts.Get(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), view.CommentCount)
	})

	t.Run("by user and search", func(t *testing.T) {
		page, err := env.svc.Comments.ByUser(ctx, bob.UserID, &models.PageRequest{Page: 0, Size: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)

		found, err := env.svc.Comments.Search(ctx, "thanks")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "alice", found[0].AuthorUsername)

		recent, err := env.svc.Comments.Recent(ctx, 1)
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, "Thanks", recent[0].Content)
	})

	t.Run("author only edits", func(t *testing.T) {
		_, err := env.svc.Comments.Update(ctx, alice, first.ID, CommentInput{Content: "edited"})
		assertKind(t, err, KindForbidden)

		updated, err := env.svc.Comments.Update(ctx, bob, first.ID, CommentInput{Content: "edited"})
		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Content)

		assertKind(t, env.svc.Comments.Delete(ctx, alice, first.ID), KindForbidden)
		require.NoError(t, env.svc.Comments.Delete(ctx, bob, first.ID))

		_, err = env.svc.Comments.Get(ctx, first.ID)
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})

	t.Run("post delete cascades", func(t *testing.T) {
		require.NoError(t, env.svc.Posts.Delete(ctx, alice, post.ID))

		recent, err := env.svc.Comments.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, recent)
	})
}
