// Package assistant wraps a go-agents language model agent for operator
// questions and alert root cause analysis.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/JaimeStill/ems-backend/internal/config"
	"github.com/JaimeStill/go-agents/pkg/agent"
	agtconfig "github.com/JaimeStill/go-agents/pkg/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// System answers operator questions using a language model.
type System interface {
	Ask(ctx context.Context, question string) (string, error)
	AnalyzeRootCause(ctx context.Context, incident Incident) (string, error)
}

// Completer turns a prompt into model output.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type agentCompleter struct {
	agent agent.Agent
}

func (c agentCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.agent.Chat(ctx, prompt)
	if err != nil {
		return "", err
	}
	return resp.Content(), nil
}

type assistant struct {
	completer Completer
	timeout   time.Duration
	logger    *slog.Logger
}

// New loads the agent configuration named by cfg and creates the assistant.
// The file holds a go-agents AgentConfig as JSON, merged over the library defaults.
func New(cfg *config.AssistantConfig, logger *slog.Logger) (System, error) {
	raw, err := os.ReadFile(cfg.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	agentCfg, err := parseAgentConfig(raw)
	if err != nil {
		return nil, err
	}

	agt, err := agent.New(agentCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	return NewWithCompleter(agentCompleter{agent: agt}, cfg.TimeoutDuration(), logger), nil
}

// NewWithCompleter creates the assistant over an arbitrary Completer.
// A zero timeout leaves request deadlines to the caller.
func NewWithCompleter(c Completer, timeout time.Duration, logger *slog.Logger) System {
	return &assistant{
		completer: c,
		timeout:   timeout,
		logger:    logger.With("system", "assistant"),
	}
}

func parseAgentConfig(raw []byte) (*agtconfig.AgentConfig, error) {
	cfg := agtconfig.DefaultAgentConfig()

	var userCfg agtconfig.AgentConfig
	if err := json.Unmarshal(raw, &userCfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	cfg.Merge(&userCfg)
	return &cfg, nil
}

func (a *assistant) Ask(ctx context.Context, question string) (string, error) {
	return a.complete(ctx, "ask", askPrompt(question))
}

func (a *assistant) AnalyzeRootCause(ctx context.Context, incident Incident) (string, error) {
	return a.complete(ctx, "root_cause", rootCausePrompt(incident))
}

func (a *assistant) complete(ctx context.Context, kind, prompt string) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	ctx, span := otel.Tracer("ems/assistant").Start(ctx, "assistant."+kind)
	defer span.End()
	span.SetAttributes(attribute.Int("assistant.prompt_bytes", len(prompt)))

	start := time.Now()
	out, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		a.logger.Error("completion failed", "kind", kind, "error", err)
		return "", fmt.Errorf("assistant %s: %w", kind, err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", ErrEmptyResponse
	}

	a.logger.Info("completion", "kind", kind, "duration", time.Since(start))
	return out, nil
}
