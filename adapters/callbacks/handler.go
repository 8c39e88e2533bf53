// Package callbacks adapts agent-framework lifecycle notifications into
// ledger events. A Handler is meant to be registered with a framework's
// callback hooks: each lifecycle method maps to exactly one event
// submission, and every failure is absorbed so instrumentation can never
// break the run being observed.
package callbacks

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/action-ledger/sdk-go/ledger"
)

// Handler translates framework lifecycle events into ledger submissions
// for one agent. Safe for concurrent use.
type Handler struct {
	client      *ledger.Client
	agentID     string
	environment string
	log         *zap.Logger
}

// Option configures a Handler at creation time.
type Option func(*Handler)

// WithEnvironment tags every event with an environment label.
func WithEnvironment(env string) Option {
	return func(h *Handler) { h.environment = env }
}

// WithLogger sets the zap logger for absorbed-failure warnings.
func WithLogger(log *zap.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// New creates a Handler bound to agentID.
func New(client *ledger.Client, agentID string, opts ...Option) *Handler {
	h := &Handler{
		client:  client,
		agentID: agentID,
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// OnLLMStart records an LLM invocation with its prompts. name is the
// framework's label for the model or runnable, if it has one.
func (h *Handler) OnLLMStart(ctx context.Context, name string, prompts []string) {
	h.safeLog(ctx, ledger.Submission{
		ActionType: "llm_start",
		ToolName:   name,
		InputHash:  hashOrZero(strings.Join(prompts, "\n")),
		OutputHash: ledger.ZeroDigest,
	})
}

// OnLLMEnd records an LLM completion.
func (h *Handler) OnLLMEnd(ctx context.Context, output string) {
	h.safeLog(ctx, ledger.Submission{
		ActionType: "llm_end",
		InputHash:  ledger.ZeroDigest,
		OutputHash: hashOrZero(output),
	})
}

// OnLLMError records an LLM failure.
func (h *Handler) OnLLMError(ctx context.Context, err error) {
	h.safeLog(ctx, ledger.Submission{
		ActionType: "llm_error",
		InputHash:  ledger.ZeroDigest,
		OutputHash: hashOrZero(errString(err)),
	})
}

// OnToolStart records a tool call.
func (h *Handler) OnToolStart(ctx context.Context, tool, input string) {
	h.safeLog(ctx, ledger.Submission{
		ActionType: "tool_start",
		ToolName:   tool,
		InputHash:  hashOrZero(input),
		OutputHash: ledger.ZeroDigest,
	})
}

// OnToolEnd records a tool result.
func (h *Handler) OnToolEnd(ctx context.Context, output string) {
	h.safeLog(ctx, ledger.Submission{
		ActionType: "tool_end",
		InputHash:  ledger.ZeroDigest,
		OutputHash: hashOrZero(output),
	})
}

// OnToolError records a tool failure.
func (h *Handler) OnToolError(ctx context.Context, err error) {
	h.safeLog(ctx, ledger.Submission{
		ActionType: "tool_error",
		InputHash:  ledger.ZeroDigest,
		OutputHash: hashOrZero(errString(err)),
	})
}

// OnChainStart records the start of a chain or workflow step.
func (h *Handler) OnChainStart(ctx context.Context, name, input string) {
	h.safeLog(ctx, ledger.Submission{
		ActionType: "chain_start",
		ToolName:   name,
		InputHash:  hashOrZero(input),
		OutputHash: ledger.ZeroDigest,
	})
}

// OnChainEnd records the end of a chain or workflow step.
func (h *Handler) OnChainEnd(ctx context.Context, output string) {
	h.safeLog(ctx, ledger.Submission{
		ActionType: "chain_end",
		InputHash:  ledger.ZeroDigest,
		OutputHash: hashOrZero(output),
	})
}

// OnChainError records a chain failure.
func (h *Handler) OnChainError(ctx context.Context, err error) {
	h.safeLog(ctx, ledger.Submission{
		ActionType: "chain_error",
		InputHash:  ledger.ZeroDigest,
		OutputHash: hashOrZero(errString(err)),
	})
}

// safeLog submits one event and absorbs any failure. Instrumentation must
// never abort the framework's run.
func (h *Handler) safeLog(ctx context.Context, sub ledger.Submission) {
	sub.AgentID = h.agentID
	sub.Environment = h.environment
	if _, err := h.client.LogEvent(ctx, sub); err != nil {
		h.log.Warn("callback event not logged",
			zap.String("action_type", sub.ActionType),
			zap.Error(err),
		)
	}
}

func hashOrZero(content string) string {
	if content == "" {
		return ledger.ZeroDigest
	}
	return ledger.HashContent(content)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
