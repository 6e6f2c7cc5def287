package assistant

import (
	"fmt"
	"strings"
	"time"
)

// Incident is the alert an operator asks to have explained.
type Incident struct {
	ID        string    `json:"id"`
	SiteID    string    `json:"site_id"`
	Severity  string    `json:"severity"`
	Metric    string    `json:"metric"`
	Message   string    `json:"message"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

const systemPrompt = "You are an energy management assistant for sites with PV generation, battery storage, " +
	"inverters and EV chargers. Answer concisely for a site operator."

func askPrompt(question string) string {
	return systemPrompt + "\n\nQuestion: " + strings.TrimSpace(question)
}

func rootCausePrompt(in Incident) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nIdentify the most likely root cause of the following alert and recommend one corrective action.\n")
	fmt.Fprintf(&b, "Severity: %s\n", in.Severity)
	fmt.Fprintf(&b, "Metric: %s\n", in.Metric)
	fmt.Fprintf(&b, "Value: %.2f\n", in.Value)
	fmt.Fprintf(&b, "Message: %s\n", in.Message)
	if !in.Timestamp.IsZero() {
		fmt.Fprintf(&b, "Raised at: %s\n", in.Timestamp.UTC().Format(time.RFC3339))
	}
	return b.String()
}
