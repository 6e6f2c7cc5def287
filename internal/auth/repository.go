package auth

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/JaimeStill/ems-backend/pkg/query"
	"github.com/JaimeStill/ems-backend/pkg/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type repo struct {
	db     *sql.DB
	tokens *Tokens
	logger *slog.Logger
}

// New creates an auth system backed by the users table.
func New(db *sql.DB, tokens *Tokens, logger *slog.Logger) System {
	return &repo{
		db:     db,
		tokens: tokens,
		logger: logger.With("system", "auth"),
	}
}

func (r *repo) Register(ctx context.Context, cmd RegisterCommand) (*User, error) {
	email, err := cmd.validate()
	if err != nil {
		return nil, err
	}

	hash, err := HashPassword(cmd.Password)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO users (email, full_name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, full_name, created_at, updated_at`

	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (User, error) {
		return repository.QueryOne(ctx, tx, q, []any{email, strings.TrimSpace(cmd.FullName), hash}, scanUser)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("user registered", "id", u.ID, "email", u.Email)
	return &u, nil
}

func (r *repo) Authenticate(ctx context.Context, email, password string) (*Token, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	q := `
		SELECT id, email, full_name, created_at, updated_at, password_hash
		FROM users
		WHERE email = $1`

	c, err := repository.QueryOne(ctx, r.db, q, []any{email}, scanCredential)
	if errors.Is(err, sql.ErrNoRows) {
		bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !CheckPassword(c.hash, password) {
		r.logger.Warn("login failed", "email", email)
		return nil, ErrInvalidCredentials
	}

	token, err := r.tokens.Issue(c.user)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*User, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	u, err := repository.QueryOne(ctx, r.db, q, args, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}
