package assets

import (
	"math"
	"time"

	"github.com/JaimeStill/ems-backend/internal/energy"
)

// Anomaly thresholds on relative deviation from the clear-sky expectation.
const (
	WarningDeviation  = 0.25
	CriticalDeviation = 0.50

	// expectations below this fraction of capacity are too small to judge
	minExpectedFraction = 0.05

	// TwinWindow is how far back the digital twin looks.
	TwinWindow = 24 * time.Hour
)

// DataPoint pairs modelled and measured PV output in kW.
type DataPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Expected  float64   `json:"expected"`
	Actual    float64   `json:"actual"`
}

// Anomaly is a data point whose measurement strays from the model.
type Anomaly struct {
	Timestamp time.Time `json:"timestamp"`
	Expected  float64   `json:"expected"`
	Actual    float64   `json:"actual"`
	Deviation float64   `json:"deviation"`
	Severity  string    `json:"severity"`
}

// DigitalTwin is the modelled-versus-measured view of an asset's site output.
type DigitalTwin struct {
	AssetID    string      `json:"asset_id"`
	DataPoints []DataPoint `json:"dataPoints"`
	Anomalies  []Anomaly   `json:"anomalies"`
}

// BuildDigitalTwin compares PV samples against a clear-sky model scaled to capacityKw.
func BuildDigitalTwin(samples []energy.Sample, capacityKw float64) DigitalTwin {
	twin := DigitalTwin{
		DataPoints: make([]DataPoint, 0, len(samples)),
		Anomalies:  make([]Anomaly, 0),
	}

	for _, s := range samples {
		expected := energy.Round(capacityKw*energy.ClearSkyAt(s.At), 3)
		dp := DataPoint{Timestamp: s.At, Expected: expected, Actual: s.Power}
		twin.DataPoints = append(twin.DataPoints, dp)

		if capacityKw <= 0 || expected < capacityKw*minExpectedFraction {
			continue
		}

		deviation := math.Abs(s.Power-expected) / expected
		severity := ""
		switch {
		case deviation > CriticalDeviation:
			severity = "critical"
		case deviation > WarningDeviation:
			severity = "warning"
		default:
			continue
		}

		twin.Anomalies = append(twin.Anomalies, Anomaly{
			Timestamp: s.At,
			Expected:  expected,
			Actual:    s.Power,
			Deviation: energy.Round(deviation, 3),
			Severity:  severity,
		})
	}

	return twin
}
