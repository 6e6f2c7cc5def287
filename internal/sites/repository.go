package sites

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/ems-backend/pkg/pagination"
	"github.com/JaimeStill/ems-backend/pkg/query"
	"github.com/JaimeStill/ems-backend/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a sites repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "sites"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Site], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Location")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	if !page.Paged {
		q, args := qb.Build()
		sites, err := repository.QueryMany(ctx, r.db, q, args, scanSite)
		if err != nil {
			return nil, fmt.Errorf("query sites: %w", err)
		}
		result := pagination.NewPageResult(sites, len(sites), 1, len(sites))
		return &result, nil
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count sites: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	sites, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSite)
	if err != nil {
		return nil, fmt.Errorf("query sites: %w", err)
	}

	result := pagination.NewPageResult(sites, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Site, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	s, err := repository.QueryOne(ctx, r.db, q, args, scanSite)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &s, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Site, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO sites (name, location, capacity_kw, battery_capacity_kwh)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + returning

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Site, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.Name, cmd.Location, cmd.CapacityKw, cmd.BatteryCapacityKwh}, scanSite)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("site created", "id", s.ID, "name", s.Name)
	return &s, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Site, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		UPDATE sites
		SET name = $1, location = $2, capacity_kw = $3, battery_capacity_kwh = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING ` + returning

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Site, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.Name, cmd.Location, cmd.CapacityKw, cmd.BatteryCapacityKwh, id}, scanSite)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("site updated", "id", s.ID, "name", s.Name)
	return &s, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, "DELETE FROM sites WHERE id = $1", id)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("site deleted", "id", id)
	return nil
}
