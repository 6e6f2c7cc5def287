package simulations

import (
	"math"
	"time"

	"github.com/JaimeStill/ems-backend/internal/energy"
	"github.com/google/uuid"
)

// Reference plant used by the dispatch model.
const (
	PVCapacityKw       = 100.0
	BatteryCapacityKwh = 200.0
	BatteryPowerKw     = 50.0
	InitialSoC         = 0.5

	// PeakStart and PeakEnd bound the evening tariff peak, in hours.
	PeakStart = 17
	PeakEnd   = 21
	// PeakMultiplier scales the grid price during the peak.
	PeakMultiplier = 1.5

	// Grid emission factors in kg CO2 per kWh.
	BaseEmissions = 0.40
	PeakEmissions = 0.55

	// GridChargeEnd is the hour before which the battery may be charged from
	// the grid up to its reserve.
	GridChargeEnd = 6
)

// loadProfile is the hourly site demand in kW.
var loadProfile = [24]float64{
	32, 30, 29, 29, 30, 34, 42, 55, 66, 72, 75, 78,
	80, 79, 76, 74, 78, 88, 95, 92, 80, 62, 46, 36,
}

// MaxGridPrice bounds the tariff per kWh.
const MaxGridPrice = 1000.0

// Params are the operator controls of a simulation run.
type Params struct {
	PVCurtail     float64 `json:"pvCurtail"`
	BatteryTarget float64 `json:"batteryTarget"`
	GridPrice     float64 `json:"gridPrice"`
}

// Validate checks that the percentages are in [0,100] and the price is in [0,MaxGridPrice].
func (p Params) Validate() error {
	for _, v := range []float64{p.PVCurtail, p.BatteryTarget, p.GridPrice} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidParams
		}
	}
	if p.PVCurtail < 0 || p.PVCurtail > 100 {
		return ErrInvalidParams
	}
	if p.BatteryTarget < 0 || p.BatteryTarget > 100 {
		return ErrInvalidParams
	}
	if p.GridPrice < 0 || p.GridPrice > MaxGridPrice {
		return ErrInvalidParams
	}
	return nil
}

// Result is one archived simulation run.
type Result struct {
	ID             uuid.UUID `json:"id"`
	Params         Params    `json:"params"`
	Cost           []float64 `json:"cost"`
	Emissions      []float64 `json:"emissions"`
	TotalCost      float64   `json:"total_cost"`
	TotalEmissions float64   `json:"total_emissions"`
	CreatedAt      time.Time `json:"created_at"`
}

func peak(h int) bool {
	return h >= PeakStart && h < PeakEnd
}

// Simulate dispatches the reference plant over one day and returns the hourly
// grid cost and emissions. The battery covers deficits down to the reserve
// set by BatteryTarget, absorbs PV surplus, and tops up to the reserve from
// the grid before GridChargeEnd. Identical params always produce identical output.
func Simulate(p Params) (cost, emissions []float64) {
	cost = make([]float64, 24)
	emissions = make([]float64, 24)

	soc := BatteryCapacityKwh * InitialSoC
	reserve := BatteryCapacityKwh * p.BatteryTarget / 100
	pvScale := PVCapacityKw * (1 - p.PVCurtail/100)

	for h := range 24 {
		pv := energy.ClearSky(float64(h)+0.5) * pvScale
		net := loadProfile[h] - pv

		var grid float64
		if net < 0 {
			soc += math.Min(math.Min(-net, BatteryPowerKw), BatteryCapacityKwh-soc)
		} else {
			discharge := math.Min(math.Min(net, BatteryPowerKw), math.Max(0, soc-reserve))
			soc -= discharge
			grid = net - discharge
		}

		if h < GridChargeEnd && soc < reserve {
			charge := math.Min(BatteryPowerKw, reserve-soc)
			soc += charge
			grid += charge
		}

		price, factor := p.GridPrice, BaseEmissions
		if peak(h) {
			price *= PeakMultiplier
			factor = PeakEmissions
		}

		cost[h] = energy.Round(grid*price, 2)
		emissions[h] = energy.Round(grid*factor, 2)
	}

	return cost, emissions
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return energy.Round(total, 2)
}
