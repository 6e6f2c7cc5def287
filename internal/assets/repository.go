package assets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/ems-backend/pkg/query"
	"github.com/JaimeStill/ems-backend/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// New creates an assets repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "assets"),
		now:    time.Now,
	}
}

func (r *repo) ListBySite(ctx context.Context, siteID uuid.UUID) ([]Asset, error) {
	if err := r.requireSite(ctx, siteID); err != nil {
		return nil, err
	}

	q, args := query.
		NewBuilder(projection).
		WhereEquals("SiteID", siteID).
		Build()

	assets, err := repository.QueryMany(ctx, r.db, q, args, scanAsset)
	if err != nil {
		return nil, fmt.Errorf("query assets: %w", err)
	}
	return Rank(assets), nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Asset, error) {
	a, err := repository.QueryOne(ctx, r.db, rankedSelect, []any{id}, scanRankedAsset)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Asset, error) {
	if err := cmd.Validate(r.now()); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO assets (site_id, name, type, model, install_date, failure_probability)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Asset, error) {
		var id uuid.UUID
		args := []any{cmd.SiteID, cmd.Name, string(cmd.Type), cmd.Model, cmd.installTime(), *cmd.FailureProbability}
		if err := tx.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
			return Asset{}, err
		}
		return repository.QueryOne(ctx, tx, rankedSelect, []any{id}, scanRankedAsset)
	})
	if err != nil {
		return nil, r.mapWriteError(err)
	}

	r.logger.Info("asset created", "id", a.ID, "site_id", a.SiteID, "name", a.Name)
	return &a, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Asset, error) {
	if err := cmd.Validate(r.now()); err != nil {
		return nil, err
	}

	q := `
		UPDATE assets
		SET site_id = $1, name = $2, type = $3, model = $4, install_date = $5,
			failure_probability = $6, updated_at = NOW()
		WHERE id = $7`

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Asset, error) {
		args := []any{cmd.SiteID, cmd.Name, string(cmd.Type), cmd.Model, cmd.installTime(), *cmd.FailureProbability, id}
		if err := repository.ExecExpectOne(ctx, tx, q, args...); err != nil {
			return Asset{}, err
		}
		return repository.QueryOne(ctx, tx, rankedSelect, []any{id}, scanRankedAsset)
	})
	if err != nil {
		return nil, r.mapWriteError(err)
	}

	r.logger.Info("asset updated", "id", a.ID, "failure_probability", a.FailureProbability)
	return &a, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, "DELETE FROM assets WHERE id = $1", id)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("asset deleted", "id", id)
	return nil
}

func (r *repo) DigitalTwin(ctx context.Context, id uuid.UUID) (*DigitalTwin, error) {
	var capacity float64
	err := r.db.QueryRowContext(ctx, `
		SELECT s.capacity_kw
		FROM assets a
		JOIN sites s ON s.id = a.site_id
		WHERE a.id = $1`, id).Scan(&capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query site capacity: %w", err)
	}

	q := `
		SELECT t.recorded_at, t.pv_generation
		FROM telemetry t
		JOIN assets a ON a.site_id = t.site_id
		WHERE a.id = $1 AND t.recorded_at >= $2
		ORDER BY t.recorded_at`

	since := r.now().Add(-TwinWindow)
	samples, err := repository.QueryMany(ctx, r.db, q, []any{id, since}, scanSample)
	if err != nil {
		return nil, fmt.Errorf("query telemetry: %w", err)
	}

	twin := BuildDigitalTwin(samples, capacity)
	twin.AssetID = id.String()
	return &twin, nil
}

func (r *repo) requireSite(ctx context.Context, siteID uuid.UUID) error {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM sites WHERE id = $1)", siteID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check site: %w", err)
	}
	if !exists {
		return ErrSiteNotFound
	}
	return nil
}

func (r *repo) mapWriteError(err error) error {
	if repository.IsForeignKeyViolation(err) {
		return ErrSiteNotFound
	}
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}
