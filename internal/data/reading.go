package data

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Metrics is one telemetry sample. Power values are kW; battery_soc is a
// percentage.
type Metrics struct {
	PVGeneration     float64 `json:"pv_generation"`
	NetLoad          float64 `json:"net_load"`
	BatteryDischarge float64 `json:"battery_discharge"`
	BatterySoC       float64 `json:"battery_soc"`
	GridDraw         float64 `json:"grid_draw"`
}

// Reading is a persisted telemetry sample.
type Reading struct {
	ID         uuid.UUID `json:"id"`
	SiteID     uuid.UUID `json:"site_id"`
	RecordedAt time.Time `json:"recorded_at"`
	Metrics    Metrics   `json:"metrics"`
}

// IngestCommand carries a telemetry sample posted by a site gateway.
type IngestCommand struct {
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
	Metrics    Metrics    `json:"metrics"`
}

// MaxClockSkew bounds how far in the future a reading may be stamped.
const MaxClockSkew = 5 * time.Minute

// Validate checks metric ranges and defaults RecordedAt to now.
func (c *IngestCommand) Validate(now time.Time) error {
	m := c.Metrics
	for _, v := range []float64{m.PVGeneration, m.NetLoad, m.BatteryDischarge, m.BatterySoC, m.GridDraw} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidMetric
		}
	}
	if m.PVGeneration < 0 {
		return ErrInvalidMetric
	}
	if m.BatterySoC < 0 || m.BatterySoC > 100 {
		return ErrInvalidSoC
	}

	if c.RecordedAt == nil || c.RecordedAt.IsZero() {
		t := now.UTC()
		c.RecordedAt = &t
		return nil
	}
	if c.RecordedAt.After(now.Add(MaxClockSkew)) {
		return ErrFutureReading
	}
	return nil
}

// IngestResult is the reading together with what it triggered.
type IngestResult struct {
	Reading
	Alerts     []Alert     `json:"alerts"`
	Suggestion *Suggestion `json:"suggestion,omitempty"`
}

// Severity grades an alert.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Alert statuses.
const (
	AlertActive       = "active"
	AlertAcknowledged = "acknowledged"
)

// Alert is a threshold violation raised during ingest.
type Alert struct {
	ID             uuid.UUID  `json:"id"`
	SiteID         uuid.UUID  `json:"site_id"`
	Severity       Severity   `json:"severity"`
	Metric         string     `json:"metric"`
	Message        string     `json:"message"`
	Value          float64    `json:"value"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"timestamp"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
}

// Suggestion statuses.
const (
	SuggestionPending  = "pending"
	SuggestionAccepted = "accepted"
	SuggestionRejected = "rejected"
)

// Suggestion is a proposed dispatch change awaiting an operator decision.
type Suggestion struct {
	ID               uuid.UUID  `json:"id"`
	SiteID           uuid.UUID  `json:"site_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Action           string     `json:"action"`
	Schedule         string     `json:"schedule"`
	EstimatedSavings float64    `json:"estimated_savings"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	DecidedAt        *time.Time `json:"decided_at,omitempty"`
}
