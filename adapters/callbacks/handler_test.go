package callbacks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/action-ledger/sdk-go/adapters/callbacks"
	"github.com/action-ledger/sdk-go/internal/ledgertest"
	"github.com/action-ledger/sdk-go/ledger"
)

const testKey = "dev-api-key"

func newTestHandler(t *testing.T, url string) *callbacks.Handler {
	t.Helper()
	client, err := ledger.New(url, testKey)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return callbacks.New(client, "agent-1", callbacks.WithEnvironment("test"))
}

func TestLifecycleEventsFormValidChain(t *testing.T) {
	fake := ledgertest.New(testKey)
	defer fake.Close()
	h := newTestHandler(t, fake.URL())
	ctx := context.Background()

	h.OnChainStart(ctx, "qa", `{"question":"2+2?"}`)
	h.OnLLMStart(ctx, "gpt-test", []string{"What is 2+2?"})
	h.OnLLMEnd(ctx, "4")
	h.OnToolStart(ctx, "calculator", "2+2")
	h.OnToolEnd(ctx, "4")
	h.OnChainEnd(ctx, `{"answer":"4"}`)

	if got := fake.EventCount("agent-1"); got != 6 {
		t.Fatalf("expected 6 events, got %d", got)
	}

	client, _ := ledger.New(fake.URL(), testKey)
	result, err := client.VerifyChain(ctx, "agent-1")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !result.IsValid {
		t.Errorf("chain invalid: %s", result.Details)
	}
}

func TestErrorEventsHashTheMessage(t *testing.T) {
	fake := ledgertest.New(testKey)
	defer fake.Close()
	h := newTestHandler(t, fake.URL())
	ctx := context.Background()

	h.OnLLMError(ctx, errors.New("rate limited"))
	h.OnToolError(ctx, errors.New("timeout"))
	h.OnChainError(ctx, errors.New("aborted"))

	if got := fake.EventCount("agent-1"); got != 3 {
		t.Fatalf("expected 3 events, got %d", got)
	}
}

func TestHandlerNeverPanicsOrPropagates(t *testing.T) {
	fake := ledgertest.New(testKey)
	url := fake.URL()
	fake.Close() // all calls will fail at transport level

	h := newTestHandler(t, url)
	ctx := context.Background()

	// Every hook must return normally with the service down.
	h.OnLLMStart(ctx, "gpt-test", []string{"prompt"})
	h.OnLLMEnd(ctx, "output")
	h.OnLLMError(ctx, errors.New("boom"))
	h.OnToolStart(ctx, "search", "query")
	h.OnToolEnd(ctx, "result")
	h.OnToolError(ctx, nil)
	h.OnChainStart(ctx, "flow", "in")
	h.OnChainEnd(ctx, "out")
	h.OnChainError(ctx, errors.New("boom"))
}

func TestDispatchRoutesClosedSet(t *testing.T) {
	fake := ledgertest.New(testKey)
	defer fake.Close()
	h := newTestHandler(t, fake.URL())
	ctx := context.Background()

	events := []callbacks.Event{
		{Type: callbacks.LLMStart, Name: "gpt-test", Input: "prompt"},
		{Type: callbacks.LLMEnd, Output: "completion"},
		{Type: callbacks.ToolStart, Name: "search", Input: "query"},
		{Type: callbacks.ToolEnd, Output: "result"},
		{Type: callbacks.ChainStart, Name: "flow", Input: "in"},
		{Type: callbacks.ChainEnd, Output: "out"},
	}
	for _, e := range events {
		h.Dispatch(ctx, e)
	}

	if got := fake.EventCount("agent-1"); got != 6 {
		t.Fatalf("expected 6 events, got %d", got)
	}
}

func TestDispatchIgnoresUnknownEventType(t *testing.T) {
	fake := ledgertest.New(testKey)
	defer fake.Close()
	h := newTestHandler(t, fake.URL())

	h.Dispatch(context.Background(), callbacks.Event{Type: "retriever_start", Input: "query"})

	if got := fake.EventCount("agent-1"); got != 0 {
		t.Errorf("unknown event type should be ignored, got %d events", got)
	}
}
