// Package ledger is the low-level HTTP client for the AI Action Ledger
// service. It submits hash-only event records, requests chain verification,
// and never transmits raw content; callers hash locally with HashContent
// and send digests.
//
// Usage:
//
//	client, err := ledger.New("http://localhost:8000", apiKey)
//	if err != nil {
//	    return err
//	}
//	event, err := client.LogEvent(ctx, ledger.Submission{
//	    AgentID:    "my-agent",
//	    ActionType: "llm_call",
//	    InputHash:  ledger.HashContent("my input"),
//	    OutputHash: ledger.HashContent("my output"),
//	})
//
// Most applications should use the higher-level actionlog.Logger, which
// pairs hashing with submission and absorbs logging failures.
package ledger
