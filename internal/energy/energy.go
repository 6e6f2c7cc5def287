// Package energy holds the small physical models shared by the telemetry,
// digital twin, and simulation domains.
package energy

import (
	"math"
	"time"
)

const (
	// Sunrise and Sunset bound the clear-sky curve, in UTC hours.
	Sunrise = 6.0
	Sunset  = 18.0
)

// Sample is a single power reading in kW.
type Sample struct {
	At    time.Time
	Power float64
}

// ClearSky returns the fraction of rated PV output available at hour h (0..24, UTC)
// under a cloudless sky. It is a half-sine between Sunrise and Sunset and zero outside.
func ClearSky(h float64) float64 {
	if h <= Sunrise || h >= Sunset {
		return 0
	}
	return math.Sin(math.Pi * (h - Sunrise) / (Sunset - Sunrise))
}

// ClearSkyAt evaluates ClearSky at the UTC time of day of t.
func ClearSkyAt(t time.Time) float64 {
	t = t.UTC()
	h := float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
	return ClearSky(h)
}

// Integrate returns the energy in kWh of a power series using the trapezoidal rule.
// Samples must be ordered by time; fewer than two samples integrate to zero.
func Integrate(samples []Sample) float64 {
	var kwh float64
	for i := 1; i < len(samples); i++ {
		dt := samples[i].At.Sub(samples[i-1].At).Hours()
		if dt <= 0 {
			continue
		}
		kwh += (samples[i].Power + samples[i-1].Power) / 2 * dt
	}
	return kwh
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
