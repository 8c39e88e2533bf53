package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/action-ledger/sdk-go/internal/config"
	"github.com/action-ledger/sdk-go/ledger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Client for the AI Action Ledger",
	Long:  "Records AI-agent actions as hash-only events in a tamper-evident remote ledger,\nand verifies that no recorded event has been retroactively altered.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to config file (default ~/.config/ledgerctl/config.yaml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newClient loads configuration and builds a ledger client from it.
func newClient() (*ledger.Client, *config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.ValidateConnection(); err != nil {
		return nil, nil, err
	}
	client, err := ledger.New(cfg.LedgerURL, cfg.APIKey)
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}
