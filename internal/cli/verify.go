package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify [agent_id]",
	Short: "Verify an agent's hash chain on the service",
	Long: "Asks the ledger service to re-validate every link in the agent's hash chain.\n" +
		"Exits 0 if the chain is intact, 1 if any event was retroactively altered.",
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	agentID := cfg.AgentID
	if len(args) == 1 {
		agentID = args[0]
	}
	if agentID == "" {
		return fmt.Errorf("no agent ID: set agent_id in config or pass one as an argument")
	}

	result, err := client.VerifyChain(cmd.Context(), agentID)
	if err != nil {
		return err
	}

	if result.IsValid {
		fmt.Printf("OK: %d events verified for %s\n", result.EventsChecked, agentID)
		return nil
	}
	fmt.Fprintf(os.Stderr, "FAILED for %s: %s\n", agentID, result.Details)
	os.Exit(1)
	return nil
}
