package simulations

import (
	"math"

	"github.com/JaimeStill/ems-backend/internal/energy"
)

// Diagnosis is the output of a condition monitoring classifier.
type Diagnosis struct {
	Prediction string             `json:"prediction"`
	Confidence float64            `json:"confidence"`
	Features   map[string]float64 `json:"features,omitempty"`
}

// confidence maps a relative margin from the decision boundary onto [0.5, 0.99].
func confidence(margin float64) float64 {
	return energy.Round(energy.Clamp(0.5+math.Abs(margin)/2, 0.5, 0.99), 2)
}

// Vibration thresholds for acceleration samples in g.
const (
	RMSAlarm   = 0.7
	CrestAlarm = 3.0
	// MaxAcceleration is beyond any accelerometer range.
	MaxAcceleration = 1000.0
)

// VibrationRequest carries raw acceleration samples.
type VibrationRequest struct {
	Samples []float64 `json:"samples,omitempty"`
}

// nominalVibration is a clean 0.5 g sine used when no samples are posted.
func nominalVibration() []float64 {
	samples := make([]float64, 200)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*float64(i)/20)
	}
	return samples
}

// DiagnoseVibration classifies a vibration signal by RMS level and crest factor.
// A high crest factor indicates impulsive bearing defects; a high RMS with a
// low crest factor indicates imbalance or misalignment.
func DiagnoseVibration(samples []float64) (Diagnosis, error) {
	if len(samples) < 2 {
		return Diagnosis{}, ErrTooFewSamples
	}

	var sq, peakAbs float64
	for _, s := range samples {
		if math.IsNaN(s) || math.Abs(s) > MaxAcceleration {
			return Diagnosis{}, ErrInvalidSamples
		}
		sq += s * s
		peakAbs = math.Max(peakAbs, math.Abs(s))
	}
	rms := math.Sqrt(sq / float64(len(samples)))

	var crest float64
	if rms > 0 {
		crest = peakAbs / rms
	}

	d := Diagnosis{
		Features: map[string]float64{
			"rms":          energy.Round(rms, 3),
			"crest_factor": energy.Round(crest, 3),
		},
	}

	switch {
	case crest >= CrestAlarm:
		d.Prediction = "Bearing fault"
		d.Confidence = confidence((crest - CrestAlarm) / CrestAlarm)
	case rms >= RMSAlarm:
		d.Prediction = "Imbalance"
		d.Confidence = confidence((rms - RMSAlarm) / RMSAlarm)
	default:
		d.Prediction = "Normal"
		d.Confidence = confidence(math.Min((RMSAlarm-rms)/RMSAlarm, (CrestAlarm-crest)/CrestAlarm))
	}

	return d, nil
}

// Solar forecast defaults.
const (
	DefaultCloudCover = 0.3
	// MaxCapacityKw is 10 GW, larger than any single PV plant.
	MaxCapacityKw = 1e7
)

// SolarRequest parameterizes the day-ahead PV forecast.
type SolarRequest struct {
	CapacityKw *float64 `json:"capacity_kw,omitempty"`
	CloudCover *float64 `json:"cloud_cover,omitempty"`
}

// Forecast is an hourly PV output forecast in kW.
type Forecast struct {
	Prediction []float64 `json:"prediction"`
}

// ForecastSolar predicts hourly PV output with the clear-sky curve attenuated
// by the Kasten-Czeplak cloud model, G = Gclear * (1 - 0.75 * C^3.4).
func ForecastSolar(req SolarRequest) (Forecast, error) {
	capacity, cloud := PVCapacityKw, DefaultCloudCover
	if req.CapacityKw != nil {
		capacity = *req.CapacityKw
	}
	if req.CloudCover != nil {
		cloud = *req.CloudCover
	}
	if math.IsNaN(capacity) || math.IsNaN(cloud) || capacity < 0 || capacity > MaxCapacityKw || cloud < 0 || cloud > 1 {
		return Forecast{}, ErrInvalidForecast
	}

	attenuation := 1 - 0.75*math.Pow(cloud, 3.4)
	f := Forecast{Prediction: make([]float64, 24)}
	for h := range 24 {
		f.Prediction[h] = energy.Round(energy.ClearSky(float64(h)+0.5)*capacity*attenuation, 2)
	}
	return f, nil
}

// Motor fault thresholds.
const (
	// ImbalanceAlarm is the phase current imbalance in percent.
	ImbalanceAlarm = 10.0
	// TemperatureAlarm is the winding temperature in degrees Celsius.
	TemperatureAlarm = 90.0
	// VibrationAlarm is the ISO 10816 zone C boundary in mm/s RMS.
	VibrationAlarm = 7.1
)

// MotorRequest carries motor condition readings. Omitted readings default to
// healthy values.
type MotorRequest struct {
	CurrentImbalance *float64 `json:"current_imbalance,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
	VibrationRMS     *float64 `json:"vibration_rms,omitempty"`
}

// DiagnoseMotor reports the fault whose reading exceeds its alarm level by
// the largest ratio, or Normal when none does.
func DiagnoseMotor(req MotorRequest) (Diagnosis, error) {
	readings := []struct {
		fault string
		name  string
		value *float64
		def   float64
		alarm float64
	}{
		{"Stator winding fault", "current_imbalance", req.CurrentImbalance, 2, ImbalanceAlarm},
		{"Overheating", "temperature", req.Temperature, 65, TemperatureAlarm},
		{"Bearing wear", "vibration_rms", req.VibrationRMS, 2, VibrationAlarm},
	}

	d := Diagnosis{Prediction: "Normal", Features: make(map[string]float64)}
	worst := 0.0

	for _, r := range readings {
		v := r.def
		if r.value != nil {
			v = *r.value
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return Diagnosis{}, ErrInvalidMotorData
		}
		d.Features[r.name] = v

		ratio := v / r.alarm
		if ratio > worst {
			worst = ratio
			if ratio >= 1 {
				d.Prediction = r.fault
			}
		}
	}

	d.Confidence = confidence(worst - 1)
	return d, nil
}
