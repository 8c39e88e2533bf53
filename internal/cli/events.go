package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/action-ledger/sdk-go/ledger"
)

var (
	eventsAgent    string
	eventsType     string
	eventsPage     int
	eventsPageSize int
)

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().StringVar(&eventsAgent, "agent", "", "Filter by agent ID (default: config agent_id)")
	eventsCmd.Flags().StringVar(&eventsType, "type", "", "Filter by action type")
	eventsCmd.Flags().IntVar(&eventsPage, "page", 1, "Page number")
	eventsCmd.Flags().IntVar(&eventsPageSize, "page-size", 50, "Items per page")
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List recorded events",
	RunE:  runEvents,
}

func runEvents(cmd *cobra.Command, args []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	agentID := eventsAgent
	if agentID == "" {
		agentID = cfg.AgentID
	}

	page, err := client.ListEvents(cmd.Context(), ledger.ListOptions{
		AgentID:    agentID,
		ActionType: eventsType,
		Page:       eventsPage,
		PageSize:   eventsPageSize,
	})
	if err != nil {
		return err
	}

	out, _ := json.MarshalIndent(page, "", "  ")
	fmt.Println(string(out))
	return nil
}
