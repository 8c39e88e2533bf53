// Package actionlog is the high-level, framework-agnostic action logger.
// A Logger is bound to one agent, pairs content hashing with submission so
// callers never handle raw digests, and by default absorbs logging failures
// so the host application's primary work is never disrupted by the ledger
// being slow, misconfigured, or down.
package actionlog

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/action-ledger/sdk-go/internal/chain"
	"github.com/action-ledger/sdk-go/internal/spool"
	"github.com/action-ledger/sdk-go/ledger"
)

// Logger records agent actions against a fixed agent ID.
// Safe for concurrent use.
type Logger struct {
	client      *ledger.Client
	agentID     string
	environment string
	log         *zap.Logger
	failFast    bool
	mirror      *chain.Log
	spool       *spool.Spool
}

// Record describes one action to log. Input and Output carry raw content;
// the Logger hashes them before anything leaves the process. Empty content
// maps to ledger.ZeroDigest.
type Record struct {
	ActionType   string
	Input        string
	Output       string
	ToolName     string
	ModelVersion string
}

// New creates a Logger bound to agentID. Opening a configured mirror or
// spool can fail; everything after New is best-effort by default.
func New(client *ledger.Client, agentID string, opts ...Option) (*Logger, error) {
	if client == nil {
		return nil, errors.New("actionlog: client is required")
	}
	if agentID == "" {
		return nil, errors.New("actionlog: agent ID is required")
	}

	cfg := loggerConfig{log: zap.NewNop()}
	for _, o := range opts {
		o(&cfg)
	}

	l := &Logger{
		client:      client,
		agentID:     agentID,
		environment: cfg.environment,
		log:         cfg.log,
		failFast:    cfg.failFast,
	}

	if cfg.mirrorPath != "" {
		m, err := chain.Open(cfg.mirrorPath)
		if err != nil {
			return nil, err
		}
		l.mirror = m
	}
	if cfg.spoolDir != "" {
		s, err := spool.Open(cfg.spoolDir)
		if err != nil {
			return nil, err
		}
		l.spool = s
	}
	return l, nil
}

// Log hashes the record's content and submits one event. In the default
// absorb mode a failed submission is logged, spooled when the failure was
// transport-level and a spool is configured, and reported as (nil, nil);
// the caller's own work continues. With FailFast the error propagates.
func (l *Logger) Log(ctx context.Context, rec Record) (*ledger.Event, error) {
	sub := ledger.Submission{
		AgentID:      l.agentID,
		ActionType:   rec.ActionType,
		InputHash:    hashOrZero(rec.Input),
		OutputHash:   hashOrZero(rec.Output),
		ToolName:     rec.ToolName,
		Environment:  l.environment,
		ModelVersion: rec.ModelVersion,
	}

	event, err := l.client.LogEvent(ctx, sub)
	if err != nil {
		if l.failFast {
			return nil, err
		}
		l.log.Warn("action not logged",
			zap.String("agent_id", l.agentID),
			zap.String("action_type", rec.ActionType),
			zap.Error(err),
		)
		var transportErr *ledger.TransportError
		if l.spool != nil && errors.As(err, &transportErr) {
			if _, serr := l.spool.Put(sub); serr != nil {
				l.log.Warn("spool write failed", zap.Error(serr))
			}
		}
		return nil, nil
	}

	if l.mirror != nil {
		if merr := l.mirror.Record(chain.FromEvent(event)); merr != nil {
			// Mirror trouble never surfaces to the host either.
			l.log.Warn("mirror write failed", zap.Error(merr))
		}
	}
	return event, nil
}

// LLMStart logs the prompt side of an LLM call.
func (l *Logger) LLMStart(ctx context.Context, input, model string) (*ledger.Event, error) {
	return l.Log(ctx, Record{ActionType: "llm_start", Input: input, ModelVersion: model})
}

// LLMEnd logs the completion side of an LLM call.
func (l *Logger) LLMEnd(ctx context.Context, output string) (*ledger.Event, error) {
	return l.Log(ctx, Record{ActionType: "llm_end", Output: output})
}

// LLMError logs an LLM failure.
func (l *Logger) LLMError(ctx context.Context, err error) (*ledger.Event, error) {
	return l.Log(ctx, Record{ActionType: "llm_error", Output: errString(err)})
}

// ToolStart logs a tool invocation.
func (l *Logger) ToolStart(ctx context.Context, tool, input string) (*ledger.Event, error) {
	return l.Log(ctx, Record{ActionType: "tool_start", Input: input, ToolName: tool})
}

// ToolEnd logs a tool result.
func (l *Logger) ToolEnd(ctx context.Context, output string) (*ledger.Event, error) {
	return l.Log(ctx, Record{ActionType: "tool_end", Output: output})
}

// ToolError logs a tool failure.
func (l *Logger) ToolError(ctx context.Context, err error) (*ledger.Event, error) {
	return l.Log(ctx, Record{ActionType: "tool_error", Output: errString(err)})
}

// ChainStart logs the start of a chain/workflow step.
func (l *Logger) ChainStart(ctx context.Context, name, input string) (*ledger.Event, error) {
	return l.Log(ctx, Record{ActionType: "chain_start", Input: input, ToolName: name})
}

// ChainEnd logs the end of a chain/workflow step.
func (l *Logger) ChainEnd(ctx context.Context, output string) (*ledger.Event, error) {
	return l.Log(ctx, Record{ActionType: "chain_end", Output: output})
}

// Verify asks the service to validate this agent's chain. Errors propagate:
// verification is an explicit operator question, not a best-effort side effect.
func (l *Logger) Verify(ctx context.Context) (*ledger.VerifyResult, error) {
	return l.client.VerifyChain(ctx, l.agentID)
}

// Close releases the mirror file, if one is configured.
func (l *Logger) Close() error {
	if l.mirror != nil {
		return l.mirror.Close()
	}
	return nil
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
