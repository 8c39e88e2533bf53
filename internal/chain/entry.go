package chain

import (
	"time"

	"github.com/action-ledger/sdk-go/ledger"
)

// Entry is one line in the hash-chained JSONL mirror: the locally relevant
// subset of a service-acknowledged event. All fields are flat strings to
// guarantee deterministic json.Marshal field order for reproducible hashing.
type Entry struct {
	Timestamp  string `json:"ts"`
	EventID    string `json:"event_id"`
	AgentID    string `json:"agent_id"`
	ActionType string `json:"action_type"`
	InputHash  string `json:"input_hash"`
	OutputHash string `json:"output_hash"`
	EventHash  string `json:"event_hash"`
	PrevHash   string `json:"prev_hash"`
}

// FromEvent converts a service-acknowledged event into a mirror entry.
// PrevHash is left empty; Record assigns it from the local chain tail.
func FromEvent(e *ledger.Event) Entry {
	return Entry{
		Timestamp:  e.Timestamp.UTC().Format(time.RFC3339Nano),
		EventID:    e.EventID,
		AgentID:    e.AgentID,
		ActionType: e.ActionType,
		InputHash:  e.InputHash,
		OutputHash: e.OutputHash,
		EventHash:  e.EventHash,
	}
}
