package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iudanet/gophsocial/internal/models"
	"github.com/iudanet/gophsocial/internal/server/storage"
)

// PostInput текст поста для создания и редактирования
type PostInput struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// PostService управляет постами и собирает ленту
type PostService struct {
	posts storage.PostStorage
	users storage.UserStorage
	cfg   *config
}

func mapPostErr(op string, err error) error {
	if errors.Is(err, storage.ErrPostNotFound) {
		return ErrPostNotFound
	}
	return internal(op, err)
}

func (s *PostService) ensureUser(ctx context.Context, userID string) error {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return mapUserErr("get user", err)
	}
	return nil
}

// Create publishes a post on behalf of the caller.
func (s *PostService) Create(ctx context.Context, caller models.Identity, in PostInput) (*models.PostView, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := validate(in); err != nil {
		return nil, err
	}

	now := s.cfg.timestamp()
	post := &models.Post{
		ID:        s.cfg.newID(),
		UserID:    caller.UserID,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		if errors.Is(err, storage.ErrReferenceNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, internal("create post", err)
	}

	return s.Get(ctx, post.ID)
}

// Get returns one post with author and counters.
func (s *PostService) Get(ctx context.Context, postID string) (*models.PostView, error) {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return nil, mapPostErr("get post", err)
	}
	return post, nil
}

// Update edits the content; only the author may do it.
func (s *PostService) Update(ctx context.Context, caller models.Identity, postID string, in PostInput) (*models.PostView, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := validate(in); err != nil {
		return nil, err
	}

	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != caller.UserID {
		return nil, ErrForbidden
	}

	if err := s.posts.UpdatePostContent(ctx, postID, in.Content, s.cfg.timestamp()); err != nil {
		return nil, mapPostErr("update post", err)
	}

	return s.Get(ctx, postID)
}

// Delete removes the post; only the author may do it.
func (s *PostService) Delete(ctx context.Context, caller models.Identity, postID string) error {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != caller.UserID {
		return ErrForbidden
	}

	if err := s.posts.DeletePost(ctx, postID); err != nil {
		return mapPostErr("delete post", err)
	}
	return nil
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context, page *models.PageRequest) (*models.Page[*models.PostView], error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}
	posts, total, err := s.posts.ListPosts(ctx, page)
	if err != nil {
		return nil, internal("list posts", err)
	}
	return pageOf(posts, total, page), nil
}

// ListByUser returns posts of one author, newest first.
func (s *PostService) ListByUser(ctx context.Context, userID string, page *models.PageRequest) (*models.Page[*models.PostView], error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	posts, total, err := s.posts.ListPostsByUser(ctx, userID, page)
	if err != nil {
		return nil, internal("list user posts", err)
	}
	return pageOf(posts, total, page), nil
}

// CountByUser returns the number of posts of one author.
func (s *PostService) CountByUser(ctx context.Context, userID string) (int64, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return 0, err
	}
	n, err := s.posts.CountPostsByUser(ctx, userID)
	if err != nil {
		return 0, internal("count posts", err)
	}
	return n, nil
}

// Search returns posts whose content contains query, ignoring case.
func (s *PostService) Search(ctx context.Context, query string, page *models.PageRequest) (*models.Page[*models.PostView], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid("q is required")
	}
	if err := checkPage(page); err != nil {
		return nil, err
	}
	posts, total, err := s.posts.SearchPosts(ctx, query, page)
	if err != nil {
		return nil, internal("search posts", err)
	}
	return pageOf(posts, total, page), nil
}

// Between returns posts created in [from, to], newest first.
func (s *PostService) Between(ctx context.Context, from, to time.Time) ([]*models.PostView, error) {
	if to.Before(from) {
		return nil, invalid("from must not be after to")
	}
	posts, err := s.posts.ListPostsBetween(ctx, from, to)
	if err != nil {
		return nil, internal("list posts by date", err)
	}
	return posts, nil
}

// Feed собирает ленту: посты тех, на кого подписан userID, от новых к старым.
// Без подписок лента пустая, это не ошибка.
func (s *PostService) Feed(ctx context.Context, userID string, page *models.PageRequest) (*models.Page[*models.PostView], error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}
	posts, total, err := s.posts.ListFeed(ctx, userID, page)
	if err != nil {
		return nil, internal("list feed", err)
	}
	return pageOf(posts, total, page), nil
}
