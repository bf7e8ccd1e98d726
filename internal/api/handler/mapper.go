package handler

import (
	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Image:     u.Image,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserSummaryResponse(s ports.UserSummary) userResponse {
	resp := toUserResponse(s.User)
	count := s.PostCount
	resp.PostCount = &count
	return resp
}

func toUserDetailResponse(d *ports.UserDetail) userResponse {
	resp := toUserResponse(d.User)
	resp.Posts = toPostResponses(d.Posts)
	return resp
}

func toPostResponse(p *domain.Post) postResponse {
	resp := postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Published: p.Published,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Author != nil {
		resp.Author = &authorResponse{
			ID:    p.Author.ID,
			Name:  p.Author.Name,
			Email: p.Author.Email,
			Image: p.Author.Image,
		}
	}
	return resp
}

func toPostResponses(posts []*domain.Post) []postResponse {
	out := make([]postResponse, len(posts))
	for i, p := range posts {
		out[i] = toPostResponse(p)
	}
	return out
}

func toActivityResponse(a *domain.Activity) activityResponse {
	return activityResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Action:      string(a.Action),
		Entity:      a.Entity,
		EntityID:    a.EntityID,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
	}
}

func toPostStatsResponse(s domain.PostStats) postStatsResponse {
	return postStatsResponse{
		Total:               s.Total,
		Published:           s.Published,
		Unpublished:         s.Unpublished,
		PublishedPercentage: s.PublishedPercentage,
	}
}

func toPagination(total int64, page, limit, pages int) paginationResponse {
	return paginationResponse{Total: total, Page: page, Limit: limit, Pages: pages}
}

// toUserPatch converts the request into a domain patch. String enums are
// passed through unchecked; UserPatch.Validate rejects unknown values.
func toUserPatch(req updateUserRequest) domain.UserPatch {
	patch := domain.UserPatch{
		Name:  req.Name,
		Email: req.Email,
		Image: req.Image,
	}
	if req.Status != nil {
		s := domain.UserStatus(*req.Status)
		patch.Status = &s
	}
	if req.Role != nil {
		r := domain.Role(*req.Role)
		patch.Role = &r
	}
	return patch
}
