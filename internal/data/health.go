package data

import (
	"time"

	"github.com/JaimeStill/ems-backend/internal/assets"
	"github.com/JaimeStill/ems-backend/internal/energy"
)

// HealthStatus summarizes the current condition of a site.
type HealthStatus struct {
	SiteHealth        float64   `json:"site_health"`
	GridDraw          float64   `json:"grid_draw"`
	BatterySoC        float64   `json:"battery_soc"`
	PVGenerationToday float64   `json:"pv_generation_today"`
	PVHealth          float64   `json:"pv_health"`
	BatterySoH        float64   `json:"battery_soh"`
	InverterHealth    float64   `json:"inverter_health"`
	EVChargerHealth   float64   `json:"ev_charger_health"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// HealthInput gathers what ComputeHealth needs from storage.
type HealthInput struct {
	Latest  *Reading
	Failure map[assets.Type][]float64
	PVToday []energy.Sample
	Now     time.Time
}

// ComputeHealth derives the site health summary. Subsystem health is
// 100 * (1 - mean failure probability) of the matching assets, or 100 when
// the site has none.
func ComputeHealth(in HealthInput) HealthStatus {
	h := HealthStatus{
		PVHealth:          subsystemHealth(in.Failure[assets.TypePV]),
		BatterySoH:        subsystemHealth(in.Failure[assets.TypeBattery]),
		InverterHealth:    subsystemHealth(in.Failure[assets.TypeInverter]),
		EVChargerHealth:   subsystemHealth(in.Failure[assets.TypeEVCharger]),
		PVGenerationToday: energy.Round(energy.Integrate(in.PVToday), 2),
		UpdatedAt:         in.Now.UTC(),
	}
	h.SiteHealth = energy.Round((h.PVHealth+h.BatterySoH+h.InverterHealth+h.EVChargerHealth)/4, 1)

	if in.Latest != nil {
		h.GridDraw = in.Latest.Metrics.GridDraw
		h.BatterySoC = in.Latest.Metrics.BatterySoC
		h.UpdatedAt = in.Latest.RecordedAt.UTC()
	}

	return h
}

// StartOfDay returns UTC midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func subsystemHealth(probabilities []float64) float64 {
	if len(probabilities) == 0 {
		return 100
	}
	var sum float64
	for _, p := range probabilities {
		sum += p
	}
	return energy.Round(100*(1-sum/float64(len(probabilities))), 1)
}
