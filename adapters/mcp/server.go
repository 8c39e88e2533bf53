// Package mcp exposes the Action Ledger to MCP-speaking agent hosts as a
// set of tools over stdio: log an action, verify a chain, hash content,
// list events. The host's model calls the tools; all hashing happens here,
// so raw content never reaches the ledger service.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/action-ledger/sdk-go/ledger"
)

// Config holds MCP server configuration.
type Config struct {
	LedgerURL   string
	APIKey      string
	AgentID     string
	Environment string
}

// Server wraps the MCP SDK server around a ledger client.
type Server struct {
	mcpServer   *mcpsdk.Server
	client      *ledger.Client
	agentID     string
	environment string
}

// New creates an MCP server bound to one agent identity.
func New(cfg Config) (*Server, error) {
	if cfg.AgentID == "" {
		return nil, fmt.Errorf("mcp: agent ID is required")
	}
	client, err := ledger.New(cfg.LedgerURL, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("mcp: %w", err)
	}

	s := &Server{
		client:      client,
		agentID:     cfg.AgentID,
		environment: cfg.Environment,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "action-ledger",
			Version: ledger.Version,
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// registerTools adds the ledger tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "ledger_log_action",
		Description: "Record an agent action in the tamper-evident ledger. Input and output are hashed locally; only digests are transmitted.",
	}, s.handleLogAction)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "ledger_verify_chain",
		Description: "Verify the hash chain for an agent. Returns is_valid plus details about the first broken link, if any.",
	}, s.handleVerifyChain)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "ledger_hash_content",
		Description: "Compute the SHA-256 digest of content, matching what the ledger stores for it. Purely local.",
	}, s.handleHashContent)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "ledger_list_events",
		Description: "List recorded ledger events, optionally filtered by agent and action type.",
	}, s.handleListEvents)
}
