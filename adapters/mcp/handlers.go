package mcp

import (
	"context"
	"errors"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/action-ledger/sdk-go/ledger"
)

// --- Input/Output types ---

// LogActionInput defines parameters for the ledger_log_action tool.
type LogActionInput struct {
	ActionType   string `json:"action_type" jsonschema:"action category, e.g. llm_call or tool_use"`
	Input        string `json:"input,omitempty" jsonschema:"raw input content, hashed locally before transmission"`
	Output       string `json:"output,omitempty" jsonschema:"raw output content, hashed locally before transmission"`
	ToolName     string `json:"tool_name,omitempty" jsonschema:"name of the tool used"`
	ModelVersion string `json:"model_version,omitempty" jsonschema:"model version identifier"`
}

// LogActionOutput contains the stored event or rejection details.
type LogActionOutput struct {
	EventID           string `json:"event_id,omitempty"`
	EventHash         string `json:"event_hash,omitempty"`
	PreviousEventHash string `json:"previous_event_hash,omitempty"`
	Timestamp         string `json:"timestamp,omitempty"`
	Rejected          bool   `json:"rejected,omitempty"`
	Reason            string `json:"reason,omitempty"`
}

// VerifyChainInput defines parameters for the ledger_verify_chain tool.
type VerifyChainInput struct {
	AgentID string `json:"agent_id,omitempty" jsonschema:"agent to verify, defaults to this server's agent"`
}

// VerifyChainOutput contains the verification result.
type VerifyChainOutput struct {
	AgentID       string `json:"agent_id"`
	IsValid       bool   `json:"is_valid"`
	EventsChecked int    `json:"events_checked"`
	Details       string `json:"details,omitempty"`
}

// HashContentInput defines parameters for the ledger_hash_content tool.
type HashContentInput struct {
	Content string `json:"content" jsonschema:"content to hash"`
}

// HashContentOutput contains the digest.
type HashContentOutput struct {
	Digest string `json:"digest"`
}

// ListEventsInput defines parameters for the ledger_list_events tool.
type ListEventsInput struct {
	AgentID    string `json:"agent_id,omitempty" jsonschema:"filter by agent, defaults to this server's agent"`
	ActionType string `json:"action_type,omitempty" jsonschema:"filter by action type"`
	Page       int    `json:"page,omitempty" jsonschema:"page number, default 1"`
	PageSize   int    `json:"page_size,omitempty" jsonschema:"items per page, default 50"`
}

// ListEventsOutput contains one page of events.
type ListEventsOutput struct {
	Events []EventItem `json:"events"`
	Total  int         `json:"total"`
	Page   int         `json:"page"`
}

// EventItem summarizes a stored event.
type EventItem struct {
	EventID           string `json:"event_id"`
	AgentID           string `json:"agent_id"`
	ActionType        string `json:"action_type"`
	Timestamp         string `json:"timestamp"`
	ToolName          string `json:"tool_name,omitempty"`
	EventHash         string `json:"event_hash"`
	PreviousEventHash string `json:"previous_event_hash,omitempty"`
}

// --- Handlers ---

func (s *Server) handleLogAction(ctx context.Context, req *mcpsdk.CallToolRequest, input LogActionInput) (*mcpsdk.CallToolResult, LogActionOutput, error) {
	event, err := s.client.LogEvent(ctx, ledger.Submission{
		AgentID:      s.agentID,
		ActionType:   input.ActionType,
		InputHash:    hashOrZero(input.Input),
		OutputHash:   hashOrZero(input.Output),
		ToolName:     input.ToolName,
		Environment:  s.environment,
		ModelVersion: input.ModelVersion,
	})
	if err != nil {
		var apiErr *ledger.APIError
		if errors.As(err, &apiErr) {
			out := LogActionOutput{Rejected: true, Reason: apiErr.Detail}
			return &mcpsdk.CallToolResult{IsError: true}, out, nil
		}
		return nil, LogActionOutput{}, err
	}

	return nil, LogActionOutput{
		EventID:           event.EventID,
		EventHash:         event.EventHash,
		PreviousEventHash: event.PreviousEventHash,
		Timestamp:         event.Timestamp.Format(time.RFC3339),
	}, nil
}

func (s *Server) handleVerifyChain(ctx context.Context, req *mcpsdk.CallToolRequest, input VerifyChainInput) (*mcpsdk.CallToolResult, VerifyChainOutput, error) {
	agentID := input.AgentID
	if agentID == "" {
		agentID = s.agentID
	}

	result, err := s.client.VerifyChain(ctx, agentID)
	if err != nil {
		return nil, VerifyChainOutput{}, err
	}

	return nil, VerifyChainOutput{
		AgentID:       agentID,
		IsValid:       result.IsValid,
		EventsChecked: result.EventsChecked,
		Details:       result.Details,
	}, nil
}

func (s *Server) handleHashContent(ctx context.Context, req *mcpsdk.CallToolRequest, input HashContentInput) (*mcpsdk.CallToolResult, HashContentOutput, error) {
	return nil, HashContentOutput{Digest: ledger.HashContent(input.Content)}, nil
}

func (s *Server) handleListEvents(ctx context.Context, req *mcpsdk.CallToolRequest, input ListEventsInput) (*mcpsdk.CallToolResult, ListEventsOutput, error) {
	agentID := input.AgentID
	if agentID == "" {
		agentID = s.agentID
	}

	page, err := s.client.ListEvents(ctx, ledger.ListOptions{
		AgentID:    agentID,
		ActionType: input.ActionType,
		Page:       input.Page,
		PageSize:   input.PageSize,
	})
	if err != nil {
		return nil, ListEventsOutput{}, err
	}

	items := make([]EventItem, len(page.Events))
	for i, e := range page.Events {
		items[i] = EventItem{
			EventID:           e.EventID,
			AgentID:           e.AgentID,
			ActionType:        e.ActionType,
			Timestamp:         e.Timestamp.Format(time.RFC3339),
			ToolName:          e.ToolName,
			EventHash:         e.EventHash,
			PreviousEventHash: e.PreviousEventHash,
		}
	}

	return nil, ListEventsOutput{Events: items, Total: page.Total, Page: page.Page}, nil
}

func hashOrZero(content string) string {
	if content == "" {
		return ledger.ZeroDigest
	}
	return ledger.HashContent(content)
}
