package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/action-ledger/sdk-go/internal/config"
	"github.com/action-ledger/sdk-go/ledger"
)

func init() {
	rootCmd.AddCommand(healthCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check ledger service availability",
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if cfg.LedgerURL == "" {
		return fmt.Errorf("config: ledger_url is not set (file or ACTIONLEDGER_URL)")
	}

	// Health needs no API key; use a placeholder when none is configured.
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = "unused"
	}
	client, err := ledger.New(cfg.LedgerURL, apiKey)
	if err != nil {
		return err
	}

	h, err := client.Health(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Println(h.Status)
	return nil
}
