package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

type PostService struct {
	posts    ports.PostRepository
	users    ports.UserRepository
	activity ports.ActivityRecorder
	logger   zerolog.Logger
	now      func() time.Time
}

func NewPostService(
	posts ports.PostRepository,
	users ports.UserRepository,
	activity ports.ActivityRecorder,
	logger zerolog.Logger,
) *PostService {
	return &PostService{
		posts:    posts,
		users:    users,
		activity: activityOrNop(activity),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ListPosts returns one page of posts, newest first, with their authors attached.
func (s *PostService) ListPosts(ctx context.Context, input ports.ListPostsInput) (*ports.ListPostsResult, error) {
	posts, total, err := s.posts.List(ctx, ports.PostFilter{
		Published: input.Published,
		AuthorID:  strings.TrimSpace(input.AuthorID),
		Search:    strings.TrimSpace(input.Search),
		Page:      input.Page,
		Limit:     input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if err := s.attachAuthors(ctx, posts...); err != nil {
		return nil, err
	}

	return &ports.ListPostsResult{
		Items:      posts,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: domain.PageCount(total, input.Limit),
	}, nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachAuthors(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePost persists a post for an existing author.
func (s *PostService) CreatePost(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
	title := strings.TrimSpace(input.Title)
	authorID := strings.TrimSpace(input.AuthorID)
	if title == "" || authorID == "" {
		return nil, domain.NewValidationError("title and author ID are required")
	}

	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author: %w", err)
	}

	now := s.now()
	created, err := s.posts.Create(ctx, &domain.Post{
		Title:     title,
		Content:   input.Content,
		Published: input.Published,
		AuthorID:  author.ID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("author_id", authorID).Msg("failed to create post")
		return nil, err
	}
	created.Author = domain.AuthorOf(author)

	s.logger.Info().Str("post_id", created.ID).Str("author_id", author.ID).Msg("post created")
	s.activity.Record(domain.Activity{
		UserID:      actorOr(input.ActorID, author.ID),
		Action:      domain.ActionCreate,
		Entity:      domain.EntityPost,
		EntityID:    created.ID,
		Description: "Created post " + created.Title,
		CreatedAt:   now,
	})
	return created, nil
}

// UpdatePost applies the fields present in the patch.
func (s *PostService) UpdatePost(ctx context.Context, input ports.UpdatePostInput) (*domain.Post, error) {
	if err := input.Patch.Validate(); err != nil {
		return nil, err
	}
	if input.Patch.IsEmpty() {
		return s.GetPost(ctx, input.ID)
	}

	now := s.now()
	updated, err := s.posts.Update(ctx, input.ID, input.Patch, now)
	if err != nil {
		return nil, err
	}
	if err := s.attachAuthors(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.Info().Str("post_id", updated.ID).Str("actor_id", input.ActorID).Msg("post updated")
	s.activity.Record(domain.Activity{
		UserID:      input.ActorID,
		Action:      domain.ActionUpdate,
		Entity:      domain.EntityPost,
		EntityID:    updated.ID,
		Description: "Updated post " + updated.Title,
		CreatedAt:   now,
	})
	return updated, nil
}

func (s *PostService) DeletePost(ctx context.Context, id, actorID string) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("post_id", id).Str("actor_id", actorID).Msg("post deleted")
	s.activity.Record(domain.Activity{
		UserID:      actorID,
		Action:      domain.ActionDelete,
		Entity:      domain.EntityPost,
		EntityID:    id,
		Description: "Deleted post",
		CreatedAt:   s.now(),
	})
	return nil
}

// Stats counts all, published and unpublished posts.
func (s *PostService) Stats(ctx context.Context) (domain.PostStats, error) {
	published, unpublished := true, false

	total, err := s.posts.Count(ctx, nil)
	if err != nil {
		return domain.PostStats{}, fmt.Errorf("count posts: %w", err)
	}
	pub, err := s.posts.Count(ctx, &published)
	if err != nil {
		return domain.PostStats{}, fmt.Errorf("count published posts: %w", err)
	}
	unpub, err := s.posts.Count(ctx, &unpublished)
	if err != nil {
		return domain.PostStats{}, fmt.Errorf("count unpublished posts: %w", err)
	}
	return domain.NewPostStats(total, pub, unpub), nil
}

// attachAuthors resolves the author projection of each post with a single lookup.
func (s *PostService) attachAuthors(ctx context.Context, posts ...*domain.Post) error {
	if len(posts) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(posts))
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.AuthorID]; ok {
			continue
		}
		seen[p.AuthorID] = struct{}{}
		ids = append(ids, p.AuthorID)
	}

	authors, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load post authors: %w", err)
	}
	byID := make(map[string]*domain.User, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}
	for _, p := range posts {
		p.Author = domain.AuthorOf(byID[p.AuthorID])
	}
	return nil
}

func actorOr(actorID, fallback string) string {
	if actorID != "" {
		return actorID
	}
	return fallback
}
