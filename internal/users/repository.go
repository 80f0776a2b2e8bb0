package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rsrinivasan18/agentic-ai-platform/pkg/pagination"
	"github.com/rsrinivasan18/agentic-ai-platform/pkg/query"
	"github.com/rsrinivasan18/agentic-ai-platform/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a user repository with the given dependencies.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "users"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[User], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Username", "Email")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	list, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanUser)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}

	result := pagination.NewPageResult(list, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*User, error) {
	q, args := query.
		NewBuilder(projection).
		BuildSingle("ID", id)

	u, err := repository.QueryOne(ctx, r.db, q, args, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*User, error) {
	if cmd.Password == "" {
		return nil, ErrInvalidPassword
	}

	hash, err := HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	q := `INSERT INTO users (username, email, full_name, hashed_password)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, email, full_name, disabled, hashed_password, created_at, updated_at`

	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (User, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			cmd.Username, cmd.Email, cmd.FullName, hash,
		}, scanUser)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user created", "id", u.ID, "username", u.Username)
	return &u, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*User, error) {
	var hash *string
	if cmd.Password != nil {
		if *cmd.Password == "" {
			return nil, ErrInvalidPassword
		}
		h, err := HashPassword(*cmd.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hash = &h
	}

	q := `UPDATE users
		SET email = $1,
			full_name = $2,
			hashed_password = COALESCE($3, hashed_password),
			updated_at = NOW()
		WHERE id = $4
		RETURNING id, username, email, full_name, disabled, hashed_password, created_at, updated_at`

	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (User, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.Email, cmd.FullName, hash, id}, scanUser)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user updated", "id", u.ID, "username", u.Username)
	return &u, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := `DELETE FROM users WHERE id = $1`
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, id)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user deleted", "id", id)
	return nil
}

func (r *repo) Authenticate(ctx context.Context, login, password string) (*User, error) {
	u, err := r.findByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPassword(u.HashedPassword, password) {
		return nil, ErrInvalidCredentials
	}
	if u.Disabled {
		return nil, ErrDisabled
	}

	return u, nil
}

// findByLogin resolves a login by username first, then by email.
func (r *repo) findByLogin(ctx context.Context, login string) (*User, error) {
	for _, field := range []string{"Username", "Email"} {
		qb := query.NewBuilder(projection).WhereEquals(field, login)
		pageSQL, args := qb.BuildPage(1, 1)

		matches, err := repository.QueryMany(ctx, r.db, pageSQL, args, scanUser)
		if err != nil {
			return nil, fmt.Errorf("query user by %s: %w", field, err)
		}
		if len(matches) > 0 {
			return &matches[0], nil
		}
	}
	return nil, ErrNotFound
}
