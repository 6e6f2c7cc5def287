package actions

import (
	"fmt"

	"github.com/JaimeStill/ems-backend/internal/assistant"
)

// RuleBasedAnalysis explains an alert without a language model.
func RuleBasedAnalysis(in assistant.Incident) string {
	switch in.Metric {
	case "battery_soc":
		return fmt.Sprintf(
			"Battery state of charge fell to %.1f%%. Likely causes: evening load exceeding the stored PV surplus, "+
				"a charge schedule that missed the midday PV peak, or reduced battery capacity from ageing. "+
				"Recommended action: charge from PV surplus earlier in the day and check battery state of health.",
			in.Value,
		)
	case "grid_draw":
		return fmt.Sprintf(
			"Grid import reached %.1f kW, above the site capacity. Likely causes: simultaneous EV charging sessions, "+
				"low PV output, or the battery not discharging during the peak. "+
				"Recommended action: stagger EV charging and enable peak shaving from the battery.",
			in.Value,
		)
	default:
		return fmt.Sprintf(
			"%s alert on %s at value %.2f: %s. No rule matches this metric. "+
				"Recommended action: inspect the affected asset and review recent telemetry.",
			in.Severity, in.Metric, in.Value, in.Message,
		)
	}
}
