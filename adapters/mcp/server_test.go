package mcp

import (
	"context"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/action-ledger/sdk-go/internal/ledgertest"
	"github.com/action-ledger/sdk-go/ledger"
)

const testKey = "dev-api-key"

func newTestServer(t *testing.T, url string) *Server {
	t.Helper()
	s, err := New(Config{
		LedgerURL:   url,
		APIKey:      testKey,
		AgentID:     "mcp-agent",
		Environment: "test",
	})
	if err != nil {
		t.Fatalf("failed to create MCP server: %v", err)
	}
	return s
}

func TestNewRequiresAgentID(t *testing.T) {
	_, err := New(Config{LedgerURL: "http://localhost:8000", APIKey: testKey})
	if err == nil {
		t.Fatal("expected error for missing agent ID")
	}
}

func TestLogActionHashesLocally(t *testing.T) {
	fake := ledgertest.New(testKey)
	defer fake.Close()
	s := newTestServer(t, fake.URL())
	ctx := context.Background()

	result, out, err := s.handleLogAction(ctx, &mcpsdk.CallToolRequest{}, LogActionInput{
		ActionType: "llm_call",
		Input:      "What is 2+2?",
		Output:     "4",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil && result.IsError {
		t.Fatal("expected success, got error result")
	}
	if out.EventID == "" || out.EventHash == "" {
		t.Fatalf("missing event identity in output: %+v", out)
	}

	// The stored hashes must match local hashing of the same content.
	client, _ := ledger.New(fake.URL(), testKey)
	page, err := client.ListEvents(ctx, ledger.ListOptions{AgentID: "mcp-agent"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(page.Events))
	}
	if page.Events[0].InputHash != ledger.HashContent("What is 2+2?") {
		t.Error("input was not hashed with SHA-256 before transmission")
	}
}

func TestLogActionRejected(t *testing.T) {
	fake := ledgertest.New("other-key")
	defer fake.Close()
	s := newTestServer(t, fake.URL()) // wrong key for this fake
	ctx := context.Background()

	result, out, err := s.handleLogAction(ctx, &mcpsdk.CallToolRequest{}, LogActionInput{
		ActionType: "llm_call",
	})
	if err != nil {
		t.Fatalf("rejection should be reported in-band, got error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected IsError result for rejected submission")
	}
	if !out.Rejected || out.Reason == "" {
		t.Fatalf("expected rejection details, got %+v", out)
	}
}

func TestVerifyChainDefaultsToServerAgent(t *testing.T) {
	fake := ledgertest.New(testKey)
	defer fake.Close()
	s := newTestServer(t, fake.URL())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, _, err := s.handleLogAction(ctx, &mcpsdk.CallToolRequest{}, LogActionInput{
			ActionType: "tool_use",
			Input:      "in",
			Output:     "out",
		}); err != nil {
			t.Fatalf("log %d: %v", i, err)
		}
	}

	_, out, err := s.handleVerifyChain(ctx, &mcpsdk.CallToolRequest{}, VerifyChainInput{})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if out.AgentID != "mcp-agent" {
		t.Errorf("agent_id = %q, want mcp-agent", out.AgentID)
	}
	if !out.IsValid || out.EventsChecked != 2 {
		t.Errorf("unexpected verification result: %+v", out)
	}
}

func TestHashContentTool(t *testing.T) {
	fake := ledgertest.New(testKey)
	defer fake.Close()
	s := newTestServer(t, fake.URL())

	_, out, err := s.handleHashContent(context.Background(), &mcpsdk.CallToolRequest{}, HashContentInput{
		Content: "What is 2+2?",
	})
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if out.Digest != ledger.HashContent("What is 2+2?") {
		t.Errorf("digest mismatch: %s", out.Digest)
	}
}

func TestListEventsTool(t *testing.T) {
	fake := ledgertest.New(testKey)
	defer fake.Close()
	s := newTestServer(t, fake.URL())
	ctx := context.Background()

	for _, at := range []string{"llm_call", "tool_use"} {
		if _, _, err := s.handleLogAction(ctx, &mcpsdk.CallToolRequest{}, LogActionInput{
			ActionType: at,
			Input:      "in",
		}); err != nil {
			t.Fatalf("log: %v", err)
		}
	}

	_, out, err := s.handleListEvents(ctx, &mcpsdk.CallToolRequest{}, ListEventsInput{ActionType: "llm_call"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if out.Total != 1 || len(out.Events) != 1 {
		t.Fatalf("expected 1 filtered event, got %+v", out)
	}
	if out.Events[0].ActionType != "llm_call" {
		t.Errorf("filter leaked action_type %q", out.Events[0].ActionType)
	}
}
