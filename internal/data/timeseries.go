package data

import (
	"slices"
	"time"

	"github.com/JaimeStill/ems-backend/internal/energy"
)

// Range is a timeseries window and its bucket width.
type Range struct {
	Name   string
	Window time.Duration
	Bucket time.Duration
}

var ranges = map[string]Range{
	"24h": {Name: "24h", Window: 24 * time.Hour, Bucket: time.Hour},
	"7d":  {Name: "7d", Window: 7 * 24 * time.Hour, Bucket: 6 * time.Hour},
	"30d": {Name: "30d", Window: 30 * 24 * time.Hour, Bucket: 24 * time.Hour},
}

// ParseRange resolves a range query value. Empty selects 24h.
func ParseRange(s string) (Range, error) {
	if s == "" {
		s = "24h"
	}
	r, ok := ranges[s]
	if !ok {
		return Range{}, ErrInvalidRange
	}
	return r, nil
}

// Point is the average of the readings in one bucket.
type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Samples   int       `json:"samples"`
	Metrics
}

// Timeseries is the bucketed history of a site.
type Timeseries struct {
	Range  string  `json:"range"`
	Bucket string  `json:"bucket"`
	Points []Point `json:"points"`
}

// Aggregate averages readings into UTC-aligned buckets of width bucket.
// Buckets without readings are omitted; points are in ascending time order.
func Aggregate(readings []Reading, bucket time.Duration) []Point {
	sums := make(map[time.Time]*Point)
	for _, r := range readings {
		key := r.RecordedAt.UTC().Truncate(bucket)
		p, ok := sums[key]
		if !ok {
			p = &Point{Timestamp: key}
			sums[key] = p
		}
		p.Samples++
		p.PVGeneration += r.Metrics.PVGeneration
		p.NetLoad += r.Metrics.NetLoad
		p.BatteryDischarge += r.Metrics.BatteryDischarge
		p.BatterySoC += r.Metrics.BatterySoC
		p.GridDraw += r.Metrics.GridDraw
	}

	points := make([]Point, 0, len(sums))
	for _, p := range sums {
		n := float64(p.Samples)
		p.PVGeneration = energy.Round(p.PVGeneration/n, 2)
		p.NetLoad = energy.Round(p.NetLoad/n, 2)
		p.BatteryDischarge = energy.Round(p.BatteryDischarge/n, 2)
		p.BatterySoC = energy.Round(p.BatterySoC/n, 2)
		p.GridDraw = energy.Round(p.GridDraw/n, 2)
		points = append(points, *p)
	}

	slices.SortFunc(points, func(a, b Point) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return points
}
