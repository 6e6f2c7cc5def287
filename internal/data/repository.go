package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/ems-backend/internal/assets"
	"github.com/JaimeStill/ems-backend/pkg/metrics"
	"github.com/JaimeStill/ems-backend/pkg/query"
	"github.com/JaimeStill/ems-backend/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	db        *sql.DB
	logger    *slog.Logger
	publisher Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

// New creates a telemetry repository implementing the System interface.
// publisher and m may be nil.
func New(db *sql.DB, logger *slog.Logger, publisher Publisher, m *metrics.Metrics) System {
	return &repo{
		db:        db,
		logger:    logger.With("system", "data"),
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
	}
}

func (r *repo) Ingest(ctx context.Context, siteID uuid.UUID, cmd IngestCommand) (*IngestResult, error) {
	if err := cmd.Validate(r.now()); err != nil {
		return nil, err
	}

	result, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (IngestResult, error) {
		var capacity float64
		err := tx.QueryRowContext(ctx, "SELECT capacity_kw FROM sites WHERE id = $1", siteID).Scan(&capacity)
		if errors.Is(err, sql.ErrNoRows) {
			return IngestResult{}, ErrSiteNotFound
		}
		if err != nil {
			return IngestResult{}, fmt.Errorf("query site: %w", err)
		}

		reading, err := r.insertReading(ctx, tx, siteID, cmd)
		if err != nil {
			return IngestResult{}, err
		}

		res := IngestResult{Reading: reading, Alerts: make([]Alert, 0)}

		for _, draft := range EvaluateAlerts(cmd.Metrics, capacity) {
			alert, err := repository.QueryOne(ctx, tx, `
				INSERT INTO alerts (site_id, severity, metric, message, value)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING `+alertReturning,
				[]any{siteID, string(draft.Severity), draft.Metric, draft.Message, draft.Value},
				scanAlert,
			)
			if err != nil {
				return IngestResult{}, fmt.Errorf("insert alert: %w", err)
			}
			res.Alerts = append(res.Alerts, alert)
		}

		if draft := EvaluateSurplus(cmd.Metrics, reading.RecordedAt); draft != nil {
			sg, err := r.proposeSuggestion(ctx, tx, siteID, draft)
			if err != nil {
				return IngestResult{}, err
			}
			res.Suggestion = sg
		}

		return res, nil
	})
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrSiteNotFound
		}
		return nil, err
	}

	r.observe(&result)

	r.logger.Debug(
		"telemetry ingested",
		"site_id", siteID,
		"reading_id", result.ID,
		"alerts", len(result.Alerts),
	)
	return &result, nil
}

func (r *repo) insertReading(ctx context.Context, tx *sql.Tx, siteID uuid.UUID, cmd IngestCommand) (Reading, error) {
	q := `
		INSERT INTO telemetry (site_id, recorded_at, pv_generation, net_load, battery_discharge, battery_soc, grid_draw)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, site_id, recorded_at, pv_generation, net_load, battery_discharge, battery_soc, grid_draw`

	m := cmd.Metrics
	args := []any{siteID, cmd.RecordedAt.UTC(), m.PVGeneration, m.NetLoad, m.BatteryDischarge, m.BatterySoC, m.GridDraw}

	reading, err := repository.QueryOne(ctx, tx, q, args, scanReading)
	if err != nil {
		return Reading{}, fmt.Errorf("insert telemetry: %w", err)
	}
	return reading, nil
}

// proposeSuggestion stores draft unless an equivalent suggestion is already
// pending for the site.
func (r *repo) proposeSuggestion(ctx context.Context, tx *sql.Tx, siteID uuid.UUID, draft *SuggestionDraft) (*Suggestion, error) {
	q := `
		INSERT INTO suggestions (site_id, title, description, action, schedule, estimated_savings)
		SELECT $1, $2, $3, $4, $5, $6
		WHERE NOT EXISTS (
			SELECT 1 FROM suggestions
			WHERE site_id = $1 AND action = $4 AND status = 'pending'
		)
		RETURNING ` + suggestionReturning

	args := []any{siteID, draft.Title, draft.Description, draft.Action, draft.Schedule, draft.EstimatedSavings}

	sg, err := repository.QueryOne(ctx, tx, q, args, scanSuggestion)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("insert suggestion: %w", err)
	}
	return &sg, nil
}

func (r *repo) observe(res *IngestResult) {
	if r.metrics != nil {
		r.metrics.TelemetryIngested.Inc()
		for _, a := range res.Alerts {
			r.metrics.AlertsRaised.WithLabelValues(string(a.Severity)).Inc()
		}
	}
	if r.publisher != nil {
		r.publisher.Publish(res.SiteID, Event{Type: EventTelemetry, Data: res})
	}
}

func (r *repo) HealthStatus(ctx context.Context, siteID uuid.UUID) (*HealthStatus, error) {
	if err := r.requireSite(ctx, siteID); err != nil {
		return nil, err
	}

	now := r.now()
	in := HealthInput{
		Failure: make(map[assets.Type][]float64),
		Now:     now,
	}

	latestQ, latestArgs := query.
		NewBuilder(telemetryProjection).
		WhereEquals("SiteID", siteID).
		OrderBy("RecordedAt", true).
		BuildPage(1, 1)

	latest, err := repository.QueryOne(ctx, r.db, latestQ, latestArgs, scanReading)
	switch {
	case err == nil:
		in.Latest = &latest
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("query latest reading: %w", err)
	}

	failures, err := repository.QueryMany(
		ctx, r.db,
		"SELECT type, failure_probability FROM assets WHERE site_id = $1",
		[]any{siteID},
		scanFailure,
	)
	if err != nil {
		return nil, fmt.Errorf("query assets: %w", err)
	}
	for _, f := range failures {
		t := assets.Type(f.Type)
		in.Failure[t] = append(in.Failure[t], f.Probability)
	}

	in.PVToday, err = repository.QueryMany(ctx, r.db, `
		SELECT recorded_at, pv_generation
		FROM telemetry
		WHERE site_id = $1 AND recorded_at >= $2
		ORDER BY recorded_at`,
		[]any{siteID, StartOfDay(now)},
		scanPVSample,
	)
	if err != nil {
		return nil, fmt.Errorf("query pv generation: %w", err)
	}

	status := ComputeHealth(in)
	return &status, nil
}

func (r *repo) Alerts(ctx context.Context, siteID uuid.UUID, status string) ([]Alert, error) {
	if err := r.requireSite(ctx, siteID); err != nil {
		return nil, err
	}

	b := query.NewBuilder(alertProjection, newestFirst).WhereEquals("SiteID", siteID)
	if status != "" {
		b.WhereEquals("Status", status)
	}
	q, args := b.BuildPage(1, ListLimit)

	alerts, err := repository.QueryMany(ctx, r.db, q, args, scanAlert)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	return alerts, nil
}

func (r *repo) Timeseries(ctx context.Context, siteID uuid.UUID, rng Range) (*Timeseries, error) {
	if err := r.requireSite(ctx, siteID); err != nil {
		return nil, err
	}

	q, args := query.
		NewBuilder(telemetryProjection, byRecordedAt).
		WhereEquals("SiteID", siteID).
		WhereSince("RecordedAt", r.now().Add(-rng.Window)).
		Build()

	readings, err := repository.QueryMany(ctx, r.db, q, args, scanReading)
	if err != nil {
		return nil, fmt.Errorf("query telemetry: %w", err)
	}

	return &Timeseries{
		Range:  rng.Name,
		Bucket: rng.Bucket.String(),
		Points: Aggregate(readings, rng.Bucket),
	}, nil
}

func (r *repo) Suggestions(ctx context.Context, siteID uuid.UUID, status string) ([]Suggestion, error) {
	if err := r.requireSite(ctx, siteID); err != nil {
		return nil, err
	}

	b := query.NewBuilder(suggestionProjection, newestFirst).WhereEquals("SiteID", siteID)
	if status != "" {
		b.WhereEquals("Status", status)
	}
	q, args := b.BuildPage(1, ListLimit)

	suggestions, err := repository.QueryMany(ctx, r.db, q, args, scanSuggestion)
	if err != nil {
		return nil, fmt.Errorf("query suggestions: %w", err)
	}
	return suggestions, nil
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
