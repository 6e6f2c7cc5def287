package repository_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/JaimeStill/ems-backend/pkg/repository"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

func TestMapError(t *testing.T) {
	otherPg := &pgconn.PgError{Code: "12345"}
	other := errors.New("some other error")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, errNotFound},
		{"wrapped no rows", fmt.Errorf("query: %w", sql.ErrNoRows), errNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, errDuplicate},
		{"wrapped unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), errDuplicate},
		{"other pg error", otherPg, otherPg},
		{"other error", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.MapError(tt.err, errNotFound, errDuplicate)
			if got != tt.want {
				t.Errorf("MapError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"fk violation", &pgconn.PgError{Code: "23503"}, true},
		{"wrapped fk violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"plain error", errors.New("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repository.IsForeignKeyViolation(tt.err); got != tt.want {
				t.Errorf("IsForeignKeyViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
