package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/action-ledger/sdk-go/internal/chain"
	"github.com/action-ledger/sdk-go/internal/config"
)

func init() {
	rootCmd.AddCommand(mirrorCmd)
	mirrorCmd.AddCommand(mirrorVerifyCmd)
}

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Local event mirror operations",
	Long:  "Commands for inspecting the local hash-chained mirror of acknowledged events.",
}

var mirrorVerifyCmd = &cobra.Command{
	Use:   "verify [path]",
	Short: "Verify hash chain integrity of a local mirror",
	Long: "Walks the JSONL mirror and validates that every entry's prev_hash matches\n" +
		"the SHA-256 of the previous line. Exits 0 if intact, 1 if tampered.",
	Args: cobra.MaximumNArgs(1),
	RunE: runMirrorVerify,
}

func runMirrorVerify(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		path = cfg.MirrorPath
	}
	if path == "" {
		return fmt.Errorf("no mirror path: set mirror_path in config or pass one as an argument")
	}

	result := chain.Verify(path)
	if result.Valid {
		fmt.Printf("OK: %d entries verified\n", result.Lines)
		return nil
	}
	fmt.Fprintf(os.Stderr, "FAILED at line %d: %s\n", result.ErrorLine, result.Error)
	os.Exit(1)
	return nil
}
