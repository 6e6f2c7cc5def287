package data

import (
	"fmt"
	"time"

	"github.com/JaimeStill/ems-backend/internal/energy"
)

// Threshold rules applied to every ingested reading.
const (
	SoCWarning  = 15.0
	SoCCritical = 5.0

	// MinSurplusKw is the smallest PV surplus worth a suggestion.
	MinSurplusKw = 1.0
	// SoCFull is the state of charge above which surplus is exported instead of stored.
	SoCFull = 90.0
	// SurplusValue is the assumed value of shifted PV energy in currency per kWh.
	SurplusValue = 0.12
)

// Suggestion actions.
const (
	ActionChargeBattery = "charge_battery"
	ActionExportGrid    = "export_to_grid"
)

// AlertDraft is an alert not yet persisted.
type AlertDraft struct {
	Severity Severity
	Metric   string
	Message  string
	Value    float64
}

// SuggestionDraft is a suggestion not yet persisted.
type SuggestionDraft struct {
	Title            string
	Description      string
	Action           string
	Schedule         string
	EstimatedSavings float64
}

// EvaluateAlerts returns the threshold violations of m. A zero capacityKw
// disables the grid draw check.
func EvaluateAlerts(m Metrics, capacityKw float64) []AlertDraft {
	var drafts []AlertDraft

	switch {
	case m.BatterySoC < SoCCritical:
		drafts = append(drafts, AlertDraft{
			Severity: SeverityCritical,
			Metric:   "battery_soc",
			Message:  fmt.Sprintf("Battery state of charge critically low at %.1f%%", m.BatterySoC),
			Value:    m.BatterySoC,
		})
	case m.BatterySoC < SoCWarning:
		drafts = append(drafts, AlertDraft{
			Severity: SeverityWarning,
			Metric:   "battery_soc",
			Message:  fmt.Sprintf("Battery state of charge low at %.1f%%", m.BatterySoC),
			Value:    m.BatterySoC,
		})
	}

	if capacityKw > 0 && m.GridDraw > capacityKw {
		drafts = append(drafts, AlertDraft{
			Severity: SeverityWarning,
			Metric:   "grid_draw",
			Message:  fmt.Sprintf("Grid draw %.1f kW exceeds site capacity %.1f kW", m.GridDraw, capacityKw),
			Value:    m.GridDraw,
		})
	}

	return drafts
}

// EvaluateSurplus proposes storing or exporting PV generation that exceeds
// the load. It returns nil when the surplus is below MinSurplusKw.
func EvaluateSurplus(m Metrics, at time.Time) *SuggestionDraft {
	surplus := m.PVGeneration - m.NetLoad
	if surplus < MinSurplusKw {
		return nil
	}

	start := at.UTC().Truncate(time.Hour).Add(time.Hour)
	schedule := fmt.Sprintf("%s-%s UTC", start.Format("15:04"), start.Add(time.Hour).Format("15:04"))
	savings := energy.Round(surplus*SurplusValue, 2)

	if m.BatterySoC >= SoCFull {
		return &SuggestionDraft{
			Title:            "Export PV surplus",
			Description:      fmt.Sprintf("Battery is at %.0f%%. Export the %.1f kW PV surplus to the grid.", m.BatterySoC, surplus),
			Action:           ActionExportGrid,
			Schedule:         schedule,
			EstimatedSavings: savings,
		}
	}

	return &SuggestionDraft{
		Title:            "Store PV surplus",
		Description:      fmt.Sprintf("PV generation exceeds load by %.1f kW. Charge the battery instead of curtailing.", surplus),
		Action:           ActionChargeBattery,
		Schedule:         schedule,
		EstimatedSavings: savings,
	}
}
