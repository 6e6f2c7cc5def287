package simulations_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/JaimeStill/ems-backend/internal/simulations"
)

func total(values []float64) float64 {
	var t float64
	for _, v := range values {
		t += v
	}
	return t
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       simulations.Params
		wantErr bool
	}{
		{"defaults", simulations.Params{}, false},
		{"typical", simulations.Params{PVCurtail: 10, BatteryTarget: 30, GridPrice: 0.25}, false},
		{"bounds", simulations.Params{PVCurtail: 100, BatteryTarget: 100}, false},
		{"curtail over", simulations.Params{PVCurtail: 101}, true},
		{"target negative", simulations.Params{BatteryTarget: -1}, true},
		{"negative price", simulations.Params{GridPrice: -0.1}, true},
		{"nan price", simulations.Params{GridPrice: math.NaN()}, true},
		{"max price", simulations.Params{GridPrice: simulations.MaxGridPrice}, false},
		{"price over", simulations.Params{GridPrice: 1e307}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr != errors.Is(err, simulations.ErrInvalidParams) {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSimulate_Shape(t *testing.T) {
	cost, emissions := simulations.Simulate(simulations.Params{PVCurtail: 0, BatteryTarget: 20, GridPrice: 0.2})

	if len(cost) != 24 || len(emissions) != 24 {
		t.Fatalf("len(cost) = %d, len(emissions) = %d, want 24", len(cost), len(emissions))
	}
	for h := range 24 {
		if cost[h] < 0 || emissions[h] < 0 {
			t.Errorf("hour %d: cost %v emissions %v must not be negative", h, cost[h], emissions[h])
		}
	}
}

func TestSimulate_Deterministic(t *testing.T) {
	p := simulations.Params{PVCurtail: 25, BatteryTarget: 40, GridPrice: 0.3}
	c1, e1 := simulations.Simulate(p)
	c2, e2 := simulations.Simulate(p)

	if !slices.Equal(c1, c2) || !slices.Equal(e1, e2) {
		t.Error("identical params produced different output")
	}
}

func TestSimulate_ZeroPrice(t *testing.T) {
	cost, emissions := simulations.Simulate(simulations.Params{BatteryTarget: 50})

	if total(cost) != 0 {
		t.Errorf("cost total = %v, want 0", total(cost))
	}
	if total(emissions) <= 0 {
		t.Errorf("emissions total = %v, want positive", total(emissions))
	}
}

func TestSimulate_CurtailmentRaisesGridUse(t *testing.T) {
	_, low := simulations.Simulate(simulations.Params{PVCurtail: 0, BatteryTarget: 20, GridPrice: 0.2})
	_, high := simulations.Simulate(simulations.Params{PVCurtail: 100, BatteryTarget: 20, GridPrice: 0.2})

	if total(high) <= total(low) {
		t.Errorf("full curtailment emissions %v should exceed no curtailment %v", total(high), total(low))
	}
}

func TestSimulate_PeakPricing(t *testing.T) {
	// With all PV curtailed and a full reserve the battery never discharges,
	// so peak hours pay the multiplied tariff on the full load.
	cost, _ := simulations.Simulate(simulations.Params{PVCurtail: 100, BatteryTarget: 100, GridPrice: 1})

	if cost[18] != 95*simulations.PeakMultiplier {
		t.Errorf("cost[18] = %v, want %v", cost[18], 95*simulations.PeakMultiplier)
	}
	if cost[12] != 80 {
		t.Errorf("cost[12] = %v, want 80", cost[12])
	}
}
