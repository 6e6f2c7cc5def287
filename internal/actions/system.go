package actions

import (
	"context"

	"github.com/JaimeStill/ems-backend/internal/assistant"
	"github.com/google/uuid"
)

// System defines the operator actions taken on alerts, suggestions and assets.
type System interface {
	AcknowledgeAlert(ctx context.Context, siteID, alertID uuid.UUID) error
	AcceptSuggestion(ctx context.Context, siteID, suggestionID uuid.UUID) (string, error)
	RejectSuggestion(ctx context.Context, siteID, suggestionID uuid.UUID) error
	ScheduleMaintenance(ctx context.Context, siteID, assetID uuid.UUID) (*Maintenance, error)
	SaveStrategy(ctx context.Context, siteID uuid.UUID, s Strategy) error
	AnalyzeRootCause(ctx context.Context, incident assistant.Incident) (string, error)
	Ask(ctx context.Context, question string) (string, error)
}
