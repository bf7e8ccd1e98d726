package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

const postColumns = `id, title, content, published, author_id, created_at, updated_at`

// PostRepository implements ports.PostRepository on PostgreSQL.
type PostRepository struct {
	store *Store
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	p := &domain.Post{}
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Published, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func postConditions(a *args, f ports.PostFilter) []string {
	var clauses []string
	if f.Published != nil {
		clauses = append(clauses, "published = "+a.add(*f.Published))
	}
	if f.AuthorID != "" {
		clauses = append(clauses, "author_id = "+a.add(f.AuthorID))
	}
	if f.Search != "" {
		p := a.add(containsPattern(f.Search))
		clauses = append(clauses, fmt.Sprintf(`(title ILIKE %s ESCAPE '\' OR content ILIKE %s ESCAPE '\')`, p, p))
	}
	return clauses
}

func (r *PostRepository) List(ctx context.Context, filter ports.PostFilter) ([]*domain.Post, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	db := r.store.conn(ctx)

	var countArgs args
	var total int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`+where(postConditions(&countArgs, filter)), countArgs.values...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	var a args
	query := `SELECT ` + postColumns + ` FROM posts` + where(postConditions(&a, filter)) + pageClause(&a, filter.Page, filter.Limit)
	rows, err := db.Query(ctx, query, a.values...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []*domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	return posts, total, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	p, err := scanPost(r.store.conn(ctx).QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return p, nil
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	posts, _, err := r.List(ctx, ports.PostFilter{AuthorID: authorID})
	return posts, err
}

func (r *PostRepository) CountByAuthors(ctx context.Context, authorIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return counts, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.store.conn(ctx).Query(ctx,
		`SELECT author_id, COUNT(*) FROM posts WHERE author_id = ANY($1) GROUP BY author_id`, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("count posts by author: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan post count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

func (r *PostRepository) Count(ctx context.Context, published *bool) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a args
	var clauses []string
	if published != nil {
		clauses = append(clauses, "published = "+a.add(*published))
	}
	var n int64
	if err := r.store.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM posts`+where(clauses), a.values...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.store.conn(ctx).QueryRow(ctx,
		`INSERT INTO posts (id, title, content, published, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+postColumns,
		uuid.NewString(),
		post.Title,
		post.Content,
		post.Published,
		post.AuthorID,
		post.CreatedAt,
		post.UpdatedAt,
	)
	created, err := scanPost(row)
	if err != nil {
		if pgErrorCode(err) == codeForeignKeyViolation {
			return nil, domain.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return created, nil
}

func (r *PostRepository) Update(ctx context.Context, id string, patch domain.PostPatch, updatedAt time.Time) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var cols []string
	var vals []any
	if patch.Title != nil {
		cols, vals = append(cols, "title"), append(vals, *patch.Title)
	}
	if patch.Content != nil {
		cols, vals = append(cols, "content"), append(vals, *patch.Content)
	}
	if patch.Published != nil {
		cols, vals = append(cols, "published"), append(vals, *patch.Published)
	}
	cols, vals = append(cols, "updated_at"), append(vals, updatedAt)

	var a args
	query := `UPDATE posts SET ` + setList(&a, cols, vals) + ` WHERE id = ` + a.add(id) + ` RETURNING ` + postColumns
	updated, err := scanPost(r.store.conn(ctx).QueryRow(ctx, query, a.values...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return updated, nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.store.conn(ctx).Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) DeleteByAuthor(ctx context.Context, authorID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.store.conn(ctx).Exec(ctx, `DELETE FROM posts WHERE author_id = $1`, authorID)
	if err != nil {
		return 0, fmt.Errorf("delete posts by author: %w", err)
	}
	return tag.RowsAffected(), nil
}
