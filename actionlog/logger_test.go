package actionlog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/action-ledger/sdk-go/actionlog"
	"github.com/action-ledger/sdk-go/internal/ledgertest"
	"github.com/action-ledger/sdk-go/ledger"
)

const testKey = "dev-api-key"

func newTestLogger(t *testing.T, url string, opts ...actionlog.Option) *actionlog.Logger {
	t.Helper()
	client, err := ledger.New(url, testKey)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	l, err := actionlog.New(client, "agent-1", opts...)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func TestNewValidation(t *testing.T) {
	client, _ := ledger.New("http://localhost:8000", testKey)
	if _, err := actionlog.New(nil, "agent-1"); err == nil {
		t.Error("expected error for nil client")
	}
	if _, err := actionlog.New(client, ""); err == nil {
		t.Error("expected error for empty agent ID")
	}
}

func TestWorkflowProducesValidChain(t *testing.T) {
	fake := ledgertest.New(testKey)
	defer fake.Close()
	l := newTestLogger(t, fake.URL(), actionlog.WithEnvironment("test"))
	ctx := context.Background()

	l.LLMStart(ctx, "What is the capital of France?", "gpt-test")
	l.LLMEnd(ctx, "The capital of France is Paris.")
	l.ToolStart(ctx, "web_search", "Paris weather")
	l.ToolEnd(ctx, "72F and sunny")
	l.ChainStart(ctx, "summarize", `{"text":"..."}`)
	l.ChainEnd(ctx, `{"summary":"..."}`)

	result, err := l.Verify(ctx)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !result.IsValid {
		t.Errorf("chain invalid after workflow: %s", result.Details)
	}
	if result.EventsChecked != 6 {
		t.Errorf("events_checked = %d, want 6", result.EventsChecked)
	}
}

func TestLogAbsorbsCommunicationFailure(t *testing.T) {
	fake := ledgertest.New(testKey)
	url := fake.URL()
	fake.Close() // service unreachable

	l := newTestLogger(t, url)

	event, err := l.Log(context.Background(), actionlog.Record{
		ActionType: "llm_call",
		Input:      "prompt",
		Output:     "completion",
	})
	if err != nil {
		t.Fatalf("absorb mode must not propagate: %v", err)
	}
	if event != nil {
		t.Error("expected nil event on absorbed failure")
	}

	// Helpers share the same boundary.
	if _, err := l.LLMStart(context.Background(), "prompt", "model"); err != nil {
		t.Errorf("LLMStart propagated: %v", err)
	}
	if _, err := l.ToolError(context.Background(), errors.New("boom")); err != nil {
		t.Errorf("ToolError propagated: %v", err)
	}
}

func TestFailFastPropagates(t *testing.T) {
	fake := ledgertest.New(testKey)
	url := fake.URL()
	fake.Close()

	l := newTestLogger(t, url, actionlog.WithFailFast())

	_, err := l.Log(context.Background(), actionlog.Record{ActionType: "llm_call"})
	var transportErr *ledger.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError in fail-fast mode, got %T: %v", err, err)
	}
}

func TestEmptyContentUsesZeroDigest(t *testing.T) {
	fake := ledgertest.New(testKey)
	defer fake.Close()
	l := newTestLogger(t, fake.URL())

	event, err := l.Log(context.Background(), actionlog.Record{
		ActionType: "tool_start",
		Input:      "query",
		ToolName:   "search",
	})
	if err != nil || event == nil {
		t.Fatalf("log: event=%v err=%v", event, err)
	}
	if event.OutputHash != ledger.ZeroDigest {
		t.Errorf("absent output should use zero digest, got %s", event.OutputHash)
	}
	if event.InputHash != ledger.HashContent("query") {
		t.Errorf("input hash mismatch: %s", event.InputHash)
	}
}

func TestMirrorRecordsAcknowledgedEvents(t *testing.T) {
	fake := ledgertest.New(testKey)
	defer fake.Close()

	mirrorPath := filepath.Join(t.TempDir(), "mirror.jsonl")
	l := newTestLogger(t, fake.URL(), actionlog.WithMirror(mirrorPath))
	ctx := context.Background()

	l.LLMStart(ctx, "prompt", "gpt-test")
	l.LLMEnd(ctx, "completion")
	l.Close()

	data, err := os.ReadFile(mirrorPath)
	if err != nil {
		t.Fatalf("mirror not written: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("mirror is empty")
	}
}

func TestSpoolCapturesTransportFailures(t *testing.T) {
	fake := ledgertest.New(testKey)
	url := fake.URL()
	fake.Close()

	spoolDir := filepath.Join(t.TempDir(), "spool")
	l := newTestLogger(t, url, actionlog.WithSpool(spoolDir))

	if _, err := l.Log(context.Background(), actionlog.Record{
		ActionType: "llm_call",
		Input:      "prompt",
	}); err != nil {
		t.Fatalf("absorb mode must not propagate: %v", err)
	}

	entries, err := os.ReadDir(spoolDir)
	if err != nil {
		t.Fatalf("read spool: %v", err)
	}
	var files int
	for _, e := range entries {
		if !e.IsDir() {
			files++
		}
	}
	if files != 1 {
		t.Errorf("expected 1 spooled submission, got %d", files)
	}
}

func TestRejectionIsNotSpooled(t *testing.T) {
	fake := ledgertest.New(testKey)
	defer fake.Close()

	client, err := ledger.New(fake.URL(), "wrong-key")
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	spoolDir := filepath.Join(t.TempDir(), "spool")
	l, err := actionlog.New(client, "agent-1", actionlog.WithSpool(spoolDir))
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	if _, err := l.Log(context.Background(), actionlog.Record{ActionType: "llm_call"}); err != nil {
		t.Fatalf("absorb mode must not propagate: %v", err)
	}

	entries, _ := os.ReadDir(spoolDir)
	for _, e := range entries {
		if !e.IsDir() {
			t.Errorf("rejected submission was spooled: %s", e.Name())
		}
	}
}
