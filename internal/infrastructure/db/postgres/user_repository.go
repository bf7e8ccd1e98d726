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

const userColumns = `id, name, email, image, password_hash, role, status, created_at, updated_at`

// UserRepository implements ports.UserRepository on PostgreSQL.
type UserRepository struct {
	store *Store
}

func scanUser(row pgx.Row) (*domain.User, error) {
	u := &domain.User{}
	var role, status string
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Image,
		&u.PasswordHash,
		&role,
		&status,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	u.Status = domain.UserStatus(status)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

func userSearch(a *args, search string) []string {
	if search == "" {
		return nil
	}
	p := a.add(containsPattern(search))
	return []string{fmt.Sprintf(`(name ILIKE %s ESCAPE '\' OR email ILIKE %s ESCAPE '\')`, p, p)}
}

func (r *UserRepository) List(ctx context.Context, filter ports.UserFilter) ([]*domain.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	db := r.store.conn(ctx)

	var countArgs args
	var total int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where(userSearch(&countArgs, filter.Search)), countArgs.values...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	var a args
	query := `SELECT ` + userColumns + ` FROM users` + where(userSearch(&a, filter.Search)) + pageClause(&a, filter.Page, filter.Limit)
	users, err := r.query(ctx, db, query, a.values...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	if len(ids) == 0 {
		return []*domain.User{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	users, err := r.query(ctx, r.store.conn(ctx), `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("find users by id: %w", err)
	}
	return users, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	u, err := scanUser(r.store.conn(ctx).QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) query(ctx context.Context, db querier, query string, values ...any) ([]*domain.User, error) {
	rows, err := db.Query(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.store.conn(ctx).QueryRow(ctx,
		`INSERT INTO users (id, name, email, image, password_hash, role, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+userColumns,
		uuid.NewString(),
		user.Name,
		user.Email,
		user.Image,
		user.PasswordHash,
		string(user.Role),
		string(user.Status),
		user.CreatedAt,
		user.UpdatedAt,
	)
	created, err := scanUser(row)
	if err != nil {
		if pgErrorCode(err) == codeUniqueViolation {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, patch domain.UserPatch, updatedAt time.Time) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cols, vals := userChanges(patch)
	cols = append(cols, "updated_at")
	vals = append(vals, updatedAt)

	var a args
	query := `UPDATE users SET ` + setList(&a, cols, vals) + ` WHERE id = ` + a.add(id) + ` RETURNING ` + userColumns
	updated, err := scanUser(r.store.conn(ctx).QueryRow(ctx, query, a.values...))
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, domain.ErrUserNotFound
	case pgErrorCode(err) == codeUniqueViolation:
		return nil, domain.ErrDuplicateEmail
	case err != nil:
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

func userChanges(patch domain.UserPatch) ([]string, []any) {
	var cols []string
	var vals []any
	if patch.Name != nil {
		cols, vals = append(cols, "name"), append(vals, *patch.Name)
	}
	if patch.Email != nil {
		cols, vals = append(cols, "email"), append(vals, *patch.Email)
	}
	if patch.Image != nil {
		cols, vals = append(cols, "image"), append(vals, *patch.Image)
	}
	if patch.Status != nil {
		cols, vals = append(cols, "status"), append(vals, string(*patch.Status))
	}
	if patch.Role != nil {
		cols, vals = append(cols, "role"), append(vals, string(*patch.Role))
	}
	return cols, vals
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.store.conn(ctx).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int64
	if err := r.store.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
