package service

import (
	"context"
	"errors"
	"strings"

	"github.com/iudanet/gophsocial/internal/models"
	"github.com/iudanet/gophsocial/internal/server/storage"
)

// CommentInput текст комментария
type CommentInput struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// CommentService управляет комментариями
type CommentService struct {
	comments storage.CommentStorage
	posts    storage.PostStorage
	users    storage.UserStorage
	cfg      *config
}

func mapCommentErr(op string, err error) error {
	if errors.Is(err, storage.ErrCommentNotFound) {
		return ErrCommentNotFound
	}
	return internal(op, err)
}

func (s *CommentService) ensurePost(ctx context.Context, postID string) error {
	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		return mapPostErr("get post", err)
	}
	return nil
}

// Create adds the caller's comment to a post.
func (s *CommentService) Create(ctx context.Context, caller models.Identity, postID string, in CommentInput) (*models.CommentView, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := validate(in); err != nil {
		return nil, err
	}
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}

	now := s.cfg.timestamp()
	comment := &models.Comment{
		ID:        s.cfg.newID(),
		UserID:    caller.UserID,
		PostID:    postID,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.comments.CreateComment(ctx, comment); err != nil {
		if errors.Is(err, storage.ErrReferenceNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, internal("create comment", err)
	}

	return s.Get(ctx, comment.ID)
}

// Get returns one comment with its author.
func (s *CommentService) Get(ctx context.Context, commentID string) (*models.CommentView, error) {
	comment, err := s.comments.GetComment(ctx, commentID)
	if err != nil {
		return nil, mapCommentErr("get comment", err)
	}
	return comment, nil
}

// Update edits the content; only the author may do it.
func (s *CommentService) Update(ctx context.Context, caller models.Identity, commentID string, in CommentInput) (*models.CommentView, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := validate(in); err != nil {
		return nil, err
	}

	comment, err := s.Get(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != caller.UserID {
		return nil, ErrForbidden
	}

	if err := s.comments.UpdateCommentContent(ctx, commentID, in.Content, s.cfg.timestamp()); err != nil {
		return nil, mapCommentErr("update comment", err)
	}
	return s.Get(ctx, commentID)
}

// Delete removes the comment; only the author may do it.
func (s *CommentService) Delete(ctx context.Context, caller models.Identity, commentID string) error {
	comment, err := s.Get(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != caller.UserID {
		return ErrForbidden
	}

	if err := s.comments.DeleteComment(ctx, commentID); err != nil {
		return mapCommentErr("delete comment", err)
	}
	return nil
}

// ForPost returns the comments of a post, oldest first.
func (s *CommentService) ForPost(ctx context.Context, postID string, page *models.PageRequest) (*models.Page[*models.CommentView], error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}
	comments, total, err := s.comments.ListCommentsForPost(ctx, postID, page)
	if err != nil {
		return nil, internal("list post comments", err)
	}
	return pageOf(comments, total, page), nil
}

// ByUser returns the comments written by a user, newest first.
func (s *CommentService) ByUser(ctx context.Context, userID string, page *models.PageRequest) (*models.Page[*models.CommentView], error) {
	if err := checkPage(page); err != nil {
		return nil, err
	}
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, mapUserErr("get user", err)
	}
	comments, total, err := s.comments.ListCommentsByUser(ctx, userID, page)
	if err != nil {
		return nil, internal("list user comments", err)
	}
	return pageOf(comments, total, page), nil
}

// CountForPost returns the number of comments on a post.
func (s *CommentService) CountForPost(ctx context.Context, postID string) (int64, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return 0, err
	}
	n, err := s.comments.CountCommentsForPost(ctx, postID)
	if err != nil {
		return 0, internal("count comments", err)
	}
	return n, nil
}

// Search returns comments containing query, ignoring case.
func (s *CommentService) Search(ctx context.Context, query string) ([]*models.CommentView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid("q is required")
	}
	comments, err := s.comments.SearchComments(ctx, query)
	if err != nil {
		return nil, internal("search comments", err)
	}
	return comments, nil
}

// Recent returns the newest comments across all posts.
func (s *CommentService) Recent(ctx context.Context, limit int) ([]*models.CommentView, error) {
	if limit <= 0 || limit > models.MaxPageSize {
		limit = DefaultTopLimit
	}
	comments, err := s.comments.ListRecentComments(ctx, limit)
	if err != nil {
		return nil, internal("list recent comments", err)
	}
	return comments, nil
}
