package actions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/ems-backend/internal/assistant"
	"github.com/JaimeStill/ems-backend/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	db        *sql.DB
	assistant assistant.System
	logger    *slog.Logger
	now       func() time.Time
}

// New creates an actions repository implementing the System interface.
// A nil assistant disables ask-ai and makes root cause analysis rule based.
func New(db *sql.DB, asst assistant.System, logger *slog.Logger) System {
	return &repo{
		db:        db,
		assistant: asst,
		logger:    logger.With("system", "actions"),
		now:       time.Now,
	}
}

func (r *repo) AcknowledgeAlert(ctx context.Context, siteID, alertID uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, `
			UPDATE alerts SET status = 'acknowledged', acknowledged_at = NOW()
			WHERE id = $1 AND site_id = $2 AND status = 'active'`,
			alertID, siteID,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return struct{}{}, r.conflictOrMissing(ctx, tx, "alerts", alertID, siteID, ErrAlertNotFound, ErrAlreadyAcknowledged)
		}
		return struct{}{}, err
	})
	if err != nil {
		return err
	}

	r.logger.Info("alert acknowledged", "site_id", siteID, "alert_id", alertID)
	return nil
}

func (r *repo) AcceptSuggestion(ctx context.Context, siteID, suggestionID uuid.UUID) (string, error) {
	schedule, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (string, error) {
		var schedule string
		err := tx.QueryRowContext(ctx, `
			UPDATE suggestions SET status = 'accepted', decided_at = NOW()
			WHERE id = $1 AND site_id = $2 AND status = 'pending'
			RETURNING schedule`,
			suggestionID, siteID,
		).Scan(&schedule)
		if errors.Is(err, sql.ErrNoRows) {
			return "", r.conflictOrMissing(ctx, tx, "suggestions", suggestionID, siteID, ErrSuggestionNotFound, ErrNotPending)
		}
		return schedule, err
	})
	if err != nil {
		return "", err
	}

	r.logger.Info("suggestion accepted", "site_id", siteID, "suggestion_id", suggestionID, "schedule", schedule)
	return schedule, nil
}

func (r *repo) RejectSuggestion(ctx context.Context, siteID, suggestionID uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, `
			UPDATE suggestions SET status = 'rejected', decided_at = NOW()
			WHERE id = $1 AND site_id = $2 AND status = 'pending'`,
			suggestionID, siteID,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return struct{}{}, r.conflictOrMissing(ctx, tx, "suggestions", suggestionID, siteID, ErrSuggestionNotFound, ErrNotPending)
		}
		return struct{}{}, err
	})
	if err != nil {
		return err
	}

	r.logger.Info("suggestion rejected", "site_id", siteID, "suggestion_id", suggestionID)
	return nil
}

// conflictOrMissing distinguishes a row that exists in another state from
// one that does not exist for the site.
func (r *repo) conflictOrMissing(ctx context.Context, tx *sql.Tx, table string, id, siteID uuid.UUID, missing, conflict error) error {
	var exists bool
	q := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1 AND site_id = $2)", table)
	if err := tx.QueryRowContext(ctx, q, id, siteID).Scan(&exists); err != nil {
		return fmt.Errorf("check %s: %w", table, err)
	}
	if exists {
		return conflict
	}
	return missing
}

func (r *repo) ScheduleMaintenance(ctx context.Context, siteID, assetID uuid.UUID) (*Maintenance, error) {
	m, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Maintenance, error) {
		m := Maintenance{Success: true, AssetID: assetID}

		err := tx.QueryRowContext(ctx,
			"SELECT failure_probability FROM assets WHERE id = $1 AND site_id = $2",
			assetID, siteID,
		).Scan(&m.FailureProbability)
		if errors.Is(err, sql.ErrNoRows) {
			return Maintenance{}, ErrAssetNotFound
		}
		if err != nil {
			return Maintenance{}, fmt.Errorf("query asset: %w", err)
		}

		m.ScheduledFor = ScheduleFor(m.FailureProbability, r.now())

		err = tx.QueryRowContext(ctx, `
			INSERT INTO maintenance (site_id, asset_id, scheduled_for)
			VALUES ($1, $2, $3)
			RETURNING id`,
			siteID, assetID, m.ScheduledFor,
		).Scan(&m.ID)
		if err != nil {
			return Maintenance{}, fmt.Errorf("insert maintenance: %w", err)
		}
		return m, nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info(
		"maintenance scheduled",
		"site_id", siteID,
		"asset_id", assetID,
		"scheduled_for", m.ScheduledFor,
	)
	return &m, nil
}

func (r *repo) SaveStrategy(ctx context.Context, siteID uuid.UUID, s Strategy) error {
	if err := s.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO rl_strategies (site_id, cost_weight, emissions_weight, battery_wear_weight)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (site_id) DO UPDATE
		SET cost_weight = EXCLUDED.cost_weight,
			emissions_weight = EXCLUDED.emissions_weight,
			battery_wear_weight = EXCLUDED.battery_wear_weight,
			updated_at = NOW()`,
		siteID, s.CostWeight, s.EmissionsWeight, s.BatteryWearWeight,
	)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return ErrSiteNotFound
		}
		return fmt.Errorf("save strategy: %w", err)
	}

	r.logger.Info("strategy saved", "site_id", siteID)
	return nil
}

func (r *repo) AnalyzeRootCause(ctx context.Context, incident assistant.Incident) (string, error) {
	return analyze(ctx, r.assistant, r.logger, incident), nil
}

func (r *repo) Ask(ctx context.Context, question string) (string, error) {
	return ask(ctx, r.assistant, question)
}

// analyze prefers the assistant and falls back to the rule based analysis
// when it is absent or fails.
func analyze(ctx context.Context, asst assistant.System, logger *slog.Logger, incident assistant.Incident) string {
	if asst == nil {
		return RuleBasedAnalysis(incident)
	}
	out, err := asst.AnalyzeRootCause(ctx, incident)
	if err != nil {
		logger.Warn("assistant root cause failed, using rules", "error", err)
		return RuleBasedAnalysis(incident)
	}
	return out
}

func ask(ctx context.Context, asst assistant.System, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrQuestionRequired
	}
	if asst == nil {
		return "", ErrAssistantUnavailable
	}
	answer, err := asst.Ask(ctx, question)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssistantFailed, err)
	}
	return answer, nil
}
