package assistant_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/ems-backend/internal/assistant"
	"github.com/JaimeStill/ems-backend/internal/config"
)

type fakeCompleter struct {
	prompt string
	out    string
	err    error
	block  bool
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.out, f.err
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAsk(t *testing.T) {
	c := &fakeCompleter{out: "  Shift EV charging to midday.\n"}
	sys := assistant.NewWithCompleter(c, time.Second, discard())

	got, err := sys.Ask(context.Background(), "When should I charge the fleet?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Shift EV charging to midday." {
		t.Errorf("answer = %q", got)
	}
	if !strings.Contains(c.prompt, "When should I charge the fleet?") {
		t.Errorf("prompt missing question: %q", c.prompt)
	}
}

func TestAnalyzeRootCause_Prompt(t *testing.T) {
	c := &fakeCompleter{out: "Inverter trip."}
	sys := assistant.NewWithCompleter(c, 0, discard())

	_, err := sys.AnalyzeRootCause(context.Background(), assistant.Incident{
		Severity: "critical",
		Metric:   "battery_soc",
		Value:    3.5,
		Message:  "Battery state of charge critically low at 3.5%",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"critical", "battery_soc", "3.50", "critically low"} {
		if !strings.Contains(c.prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestComplete_Errors(t *testing.T) {
	upstream := errors.New("connection refused")

	tests := []struct {
		name    string
		c       *fakeCompleter
		timeout time.Duration
		wantErr error
	}{
		{"upstream", &fakeCompleter{err: upstream}, 0, upstream},
		{"empty", &fakeCompleter{out: "   "}, 0, assistant.ErrEmptyResponse},
		{"timeout", &fakeCompleter{block: true}, 10 * time.Millisecond, context.DeadlineExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := assistant.NewWithCompleter(tt.c, tt.timeout, discard())
			_, err := sys.Ask(context.Background(), "status?")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_ConfigErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		file string
	}{
		{"missing file", filepath.Join(dir, "missing.json")},
		{"malformed json", bad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.AssistantConfig{Enabled: true, ConfigFile: tt.file, Timeout: "1s"}
			if _, err := assistant.New(cfg, discard()); !errors.Is(err, assistant.ErrConfig) {
				t.Errorf("err = %v, want ErrConfig", err)
			}
		})
	}
}
