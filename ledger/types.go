package ledger

import "time"

// Submission is the client-supplied portion of an event. Optional fields
// are omitted from the request body when empty, so the service stores no
// blank labels.
type Submission struct {
	AgentID       string `json:"agent_id"`
	ActionType    string `json:"action_type"`
	InputHash     string `json:"input_hash"`
	OutputHash    string `json:"output_hash"`
	ToolName      string `json:"tool_name,omitempty"`
	Environment   string `json:"environment,omitempty"`
	ModelVersion  string `json:"model_version,omitempty"`
	PromptVersion string `json:"prompt_version,omitempty"`
}

// Event is a stored ledger record as returned by the service. The service
// assigns EventID, Timestamp, EventHash, and PreviousEventHash at append
// time; PreviousEventHash is empty for the first event in an agent's chain.
type Event struct {
	EventID           string    `json:"event_id"`
	AgentID           string    `json:"agent_id"`
	ActionType        string    `json:"action_type"`
	Timestamp         time.Time `json:"timestamp"`
	InputHash         string    `json:"input_hash"`
	OutputHash        string    `json:"output_hash"`
	ToolName          string    `json:"tool_name,omitempty"`
	Environment       string    `json:"environment,omitempty"`
	ModelVersion      string    `json:"model_version,omitempty"`
	PromptVersion     string    `json:"prompt_version,omitempty"`
	EventHash         string    `json:"event_hash"`
	PreviousEventHash string    `json:"previous_event_hash,omitempty"`
}

// VerifyResult is the outcome of a chain verification. IsValid=false is a
// successful call reporting a broken chain, not an error.
type VerifyResult struct {
	AgentID       string `json:"agent_id"`
	IsValid       bool   `json:"is_valid"`
	EventsChecked int    `json:"events_checked"`
	Details       string `json:"details,omitempty"`
}

// ListOptions filters an event listing. Zero values mean no filter;
// Page defaults to 1 and PageSize to 50.
type ListOptions struct {
	AgentID    string
	ActionType string
	Page       int
	PageSize   int
}

// EventPage is one page of an event listing.
type EventPage struct {
	Events   []Event `json:"events"`
	Total    int     `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}

// Health is the service health report.
type Health struct {
	Status string `json:"status"`
}
