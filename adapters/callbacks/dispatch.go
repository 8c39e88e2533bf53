package callbacks

import "context"

// EventType names a framework lifecycle event. The set is closed: Dispatch
// handles exactly these and silently ignores anything else, so a framework
// emitting new event kinds degrades to not-logged rather than misbehaving.
type EventType string

const (
	LLMStart   EventType = "llm_start"
	LLMEnd     EventType = "llm_end"
	LLMError   EventType = "llm_error"
	ToolStart  EventType = "tool_start"
	ToolEnd    EventType = "tool_end"
	ToolError  EventType = "tool_error"
	ChainStart EventType = "chain_start"
	ChainEnd   EventType = "chain_end"
	ChainError EventType = "chain_error"
)

// Event is a framework lifecycle notification in neutral form, for
// frameworks that deliver callbacks as (event name, payload) pairs rather
// than typed hooks.
type Event struct {
	Type   EventType
	Name   string // tool, chain, or model label, when the framework has one
	Input  string
	Output string
	Err    error
}

// Dispatch routes one lifecycle event to its handler method.
func (h *Handler) Dispatch(ctx context.Context, e Event) {
	switch e.Type {
	case LLMStart:
		h.OnLLMStart(ctx, e.Name, []string{e.Input})
	case LLMEnd:
		h.OnLLMEnd(ctx, e.Output)
	case LLMError:
		h.OnLLMError(ctx, e.Err)
	case ToolStart:
		h.OnToolStart(ctx, e.Name, e.Input)
	case ToolEnd:
		h.OnToolEnd(ctx, e.Output)
	case ToolError:
		h.OnToolError(ctx, e.Err)
	case ChainStart:
		h.OnChainStart(ctx, e.Name, e.Input)
	case ChainEnd:
		h.OnChainEnd(ctx, e.Output)
	case ChainError:
		h.OnChainError(ctx, e.Err)
	}
}
