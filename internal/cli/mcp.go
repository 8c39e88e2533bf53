package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/action-ledger/sdk-go/adapters/mcp"
)

var mcpAgent string

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpAgent, "agent", "", "Agent ID (overrides config)")
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP tool server on stdio",
	Long: "Exposes ledger_log_action, ledger_verify_chain, ledger_hash_content, and\n" +
		"ledger_list_events as MCP tools so an agent host can record and audit its\n" +
		"own actions. Runs until the host closes stdio or the process is signalled.",
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	_, cfg, err := newClient()
	if err != nil {
		return err
	}

	agentID := mcpAgent
	if agentID == "" {
		agentID = cfg.AgentID
	}
	if agentID == "" {
		return fmt.Errorf("no agent ID: set agent_id in config or pass --agent")
	}

	server, err := mcp.New(mcp.Config{
		LedgerURL:   cfg.LedgerURL,
		APIKey:      cfg.APIKey,
		AgentID:     agentID,
		Environment: cfg.Environment,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return server.Run(ctx)
}
