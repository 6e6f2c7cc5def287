package data

import (
	"github.com/JaimeStill/ems-backend/internal/energy"
	"github.com/JaimeStill/ems-backend/pkg/query"
	"github.com/JaimeStill/ems-backend/pkg/repository"
)

// ListLimit caps alert and suggestion listings.
const ListLimit = 100

var telemetryProjection = query.
	NewProjectionMap("public", "telemetry", "t").
	Project("id", "ID").
	Project("site_id", "SiteID").
	Project("recorded_at", "RecordedAt").
	Project("pv_generation", "PVGeneration").
	Project("net_load", "NetLoad").
	Project("battery_discharge", "BatteryDischarge").
	Project("battery_soc", "BatterySoC").
	Project("grid_draw", "GridDraw")

var alertProjection = query.
	NewProjectionMap("public", "alerts", "al").
	Project("id", "ID").
	Project("site_id", "SiteID").
	Project("severity", "Severity").
	Project("metric", "Metric").
	Project("message", "Message").
	Project("value", "Value").
	Project("status", "Status").
	Project("created_at", "CreatedAt").
	Project("acknowledged_at", "AcknowledgedAt")

var suggestionProjection = query.
	NewProjectionMap("public", "suggestions", "sg").
	Project("id", "ID").
	Project("site_id", "SiteID").
	Project("title", "Title").
	Project("description", "Description").
	Project("action", "Action").
	Project("schedule", "Schedule").
	Project("estimated_savings", "EstimatedSavings").
	Project("status", "Status").
	Project("created_at", "CreatedAt").
	Project("decided_at", "DecidedAt")

var (
	byRecordedAt = query.SortField{Field: "RecordedAt"}
	newestFirst  = query.SortField{Field: "CreatedAt", Descending: true}
)

const (
	alertReturning      = "id, site_id, severity, metric, message, value, status, created_at, acknowledged_at"
	suggestionReturning = "id, site_id, title, description, action, schedule, estimated_savings, status, created_at, decided_at"
)

func scanReading(s repository.Scanner) (Reading, error) {
	var r Reading
	err := s.Scan(
		&r.ID,
		&r.SiteID,
		&r.RecordedAt,
		&r.Metrics.PVGeneration,
		&r.Metrics.NetLoad,
		&r.Metrics.BatteryDischarge,
		&r.Metrics.BatterySoC,
		&r.Metrics.GridDraw,
	)
	return r, err
}

func scanAlert(s repository.Scanner) (Alert, error) {
	var a Alert
	err := s.Scan(
		&a.ID,
		&a.SiteID,
		&a.Severity,
		&a.Metric,
		&a.Message,
		&a.Value,
		&a.Status,
		&a.CreatedAt,
		&a.AcknowledgedAt,
	)
	return a, err
}

func scanSuggestion(s repository.Scanner) (Suggestion, error) {
	var sg Suggestion
	err := s.Scan(
		&sg.ID,
		&sg.SiteID,
		&sg.Title,
		&sg.Description,
		&sg.Action,
		&sg.Schedule,
		&sg.EstimatedSavings,
		&sg.Status,
		&sg.CreatedAt,
		&sg.DecidedAt,
	)
	return sg, err
}

func scanPVSample(s repository.Scanner) (energy.Sample, error) {
	var sample energy.Sample
	err := s.Scan(&sample.At, &sample.Power)
	return sample, err
}

type failure struct {
	Type        string
	Probability float64
}

func scanFailure(s repository.Scanner) (failure, error) {
	var f failure
	err := s.Scan(&f.Type, &f.Probability)
	return f, err
}
