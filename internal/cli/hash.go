package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/action-ledger/sdk-go/ledger"
)

func init() {
	rootCmd.AddCommand(hashCmd)
}

var hashCmd = &cobra.Command{
	Use:   "hash [content]",
	Short: "Compute the SHA-256 digest of content",
	Long: "Prints the digest the ledger would store for the given content.\n" +
		"Reads stdin when no argument is given. Purely local, no network access.",
	Args: cobra.MaximumNArgs(1),
	RunE: runHash,
}

func runHash(cmd *cobra.Command, args []string) error {
	var content string
	if len(args) == 1 {
		content = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		content = string(data)
	}

	fmt.Println(ledger.HashContent(content))
	return nil
}
