package actions

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Decision is the response to accepting a suggestion.
type Decision struct {
	Success  bool   `json:"success"`
	Schedule string `json:"schedule"`
}

// Maintenance is a scheduled service visit for an asset.
type Maintenance struct {
	Success            bool      `json:"success"`
	ID                 uuid.UUID `json:"id"`
	AssetID            uuid.UUID `json:"asset_id"`
	FailureProbability float64   `json:"failure_probability"`
	ScheduledFor       time.Time `json:"scheduled_for"`
}

// LeadTime returns how soon an asset with failure probability p should be
// serviced.
func LeadTime(p float64) time.Duration {
	switch {
	case p >= 0.7:
		return 24 * time.Hour
	case p >= 0.4:
		return 7 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}

// ScheduleFor returns the start of the UTC day LeadTime(p) after now.
func ScheduleFor(p float64, now time.Time) time.Time {
	y, m, d := now.UTC().Add(LeadTime(p)).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Strategy weights the objectives of the dispatch optimizer for a site.
type Strategy struct {
	CostWeight        float64 `json:"cost_weight"`
	EmissionsWeight   float64 `json:"emissions_weight"`
	BatteryWearWeight float64 `json:"battery_wear_weight"`
}

// Validate requires each weight in [0,1] and a positive total.
func (s Strategy) Validate() error {
	var sum float64
	for _, w := range []float64{s.CostWeight, s.EmissionsWeight, s.BatteryWearWeight} {
		if math.IsNaN(w) || w < 0 || w > 1 {
			return ErrInvalidWeights
		}
		sum += w
	}
	if sum <= 0 {
		return ErrInvalidWeights
	}
	return nil
}

// Question is the body of an ask-ai request.
type Question struct {
	Question string `json:"question"`
}
