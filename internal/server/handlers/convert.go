package handlers

import (
	"github.com/iudanet/gophsocial/internal/models"
	"github.com/iudanet/gophsocial/pkg/api"
)

func toUserResponse(u *models.User) api.UserResponse {
	return api.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserSummary(s models.UserSummary) api.UserSummary {
	return api.UserSummary{
		ID:        s.ID,
		Username:  s.Username,
		FirstName: s.FirstName,
		LastName:  s.LastName,
	}
}

func toPostResponse(p *models.PostView) api.PostResponse {
	return api.PostResponse{
		ID:           p.ID,
		Content:      p.Content,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		User:         toUserSummary(p.Author()),
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
	}
}

func toCommentResponse(c *models.CommentView) api.CommentResponse {
	return api.CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		User:      toUserSummary(c.Author()),
	}
}

func toLikeResponse(l *models.LikeView) api.LikeResponse {
	return api.LikeResponse{
		ID:        l.ID,
		PostID:    l.PostID,
		UserID:    l.UserID,
		Username:  l.Username,
		CreatedAt: l.CreatedAt,
	}
}

func toFollowResponse(f *models.Follow) api.FollowResponse {
	return api.FollowResponse{
		ID:          f.ID,
		FollowerID:  f.FollowerID,
		FollowingID: f.FollowingID,
		CreatedAt:   f.CreatedAt,
	}
}
