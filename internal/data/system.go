package data

import (
	"context"

	"github.com/google/uuid"
)

// System defines the interface for telemetry ingest and site analytics.
type System interface {
	Ingest(ctx context.Context, siteID uuid.UUID, cmd IngestCommand) (*IngestResult, error)
	HealthStatus(ctx context.Context, siteID uuid.UUID) (*HealthStatus, error)
	Alerts(ctx context.Context, siteID uuid.UUID, status string) ([]Alert, error)
	Timeseries(ctx context.Context, siteID uuid.UUID, r Range) (*Timeseries, error)
	Suggestions(ctx context.Context, siteID uuid.UUID, status string) ([]Suggestion, error)
}

// EventTelemetry is the live stream event type for an ingested reading.
const EventTelemetry = "telemetry"

// Event is pushed to live subscribers of a site.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Publisher fans events out to live subscribers of a site.
type Publisher interface {
	Publish(siteID uuid.UUID, event any)
}
