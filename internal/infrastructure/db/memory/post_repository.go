package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

// PostRepository implements ports.PostRepository over a Store.
type PostRepository struct {
	s *Store
}

func (r *PostRepository) List(ctx context.Context, filter ports.PostFilter) ([]*domain.Post, int64, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, 0, err
	}
	defer r.s.rlock(ctx)()

	matched := make([]postRecord, 0, len(r.s.posts))
	for _, rec := range r.s.posts {
		if filter.Published != nil && rec.Published != *filter.Published {
			continue
		}
		if filter.AuthorID != "" && rec.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Search != "" && !containsFold(rec.Title, filter.Search) && !containsFold(rec.Content, filter.Search) {
			continue
		}
		matched = append(matched, rec)
	}
	newestFirst(matched, func(r postRecord) (time.Time, int64) { return r.CreatedAt, r.seq })

	return clonePosts(page(matched, filter.Page, filter.Limit)), int64(len(matched)), nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	defer r.s.rlock(ctx)()

	rec, ok := r.s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	p := rec.Post
	return &p, nil
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	posts, _, err := r.List(ctx, ports.PostFilter{AuthorID: authorID})
	return posts, err
}

func (r *PostRepository) CountByAuthors(ctx context.Context, authorIDs []string) (map[string]int64, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	defer r.s.rlock(ctx)()

	wanted := make(map[string]struct{}, len(authorIDs))
	for _, id := range authorIDs {
		wanted[id] = struct{}{}
	}
	counts := make(map[string]int64)
	for _, rec := range r.s.posts {
		if _, ok := wanted[rec.AuthorID]; ok {
			counts[rec.AuthorID]++
		}
	}
	return counts, nil
}

func (r *PostRepository) Count(ctx context.Context, published *bool) (int64, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	defer r.s.rlock(ctx)()

	if published == nil {
		return int64(len(r.s.posts)), nil
	}
	var n int64
	for _, rec := range r.s.posts {
		if rec.Published == *published {
			n++
		}
	}
	return n, nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	defer r.s.lock(ctx)()

	if _, ok := r.s.users[post.AuthorID]; !ok {
		return nil, domain.ErrAuthorNotFound
	}

	rec := postRecord{Post: *post, seq: r.s.nextSeq()}
	rec.Author = nil
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	r.s.posts[rec.ID] = rec
	r.s.remember(ctx, func() { delete(r.s.posts, rec.ID) })

	p := rec.Post
	return &p, nil
}

func (r *PostRepository) Update(ctx context.Context, id string, patch domain.PostPatch, updatedAt time.Time) (*domain.Post, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	defer r.s.lock(ctx)()

	before, ok := r.s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	after := before
	if patch.Title != nil {
		after.Title = *patch.Title
	}
	if patch.Content != nil {
		after.Content = *patch.Content
	}
	if patch.Published != nil {
		after.Published = *patch.Published
	}
	after.UpdatedAt = updatedAt
	r.s.posts[id] = after
	r.s.remember(ctx, func() { r.s.posts[id] = before })

	p := after.Post
	return &p, nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	defer r.s.lock(ctx)()

	rec, ok := r.s.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	delete(r.s.posts, id)
	r.s.remember(ctx, func() { r.s.posts[id] = rec })
	return nil
}

func (r *PostRepository) DeleteByAuthor(ctx context.Context, authorID string) (int64, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	defer r.s.lock(ctx)()

	var removed []postRecord
	for id, rec := range r.s.posts {
		if rec.AuthorID == authorID {
			removed = append(removed, rec)
			delete(r.s.posts, id)
		}
	}
	r.s.remember(ctx, func() {
		for _, rec := range removed {
			r.s.posts[rec.ID] = rec
		}
	})
	return int64(len(removed)), nil
}

func clonePosts(recs []postRecord) []*domain.Post {
	out := make([]*domain.Post, len(recs))
	for i, rec := range recs {
		p := rec.Post
		out[i] = &p
	}
	return out
}
