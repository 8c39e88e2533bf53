package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/action-ledger/sdk-go/internal/spool"
)

var (
	flushDir   string
	flushWatch bool
)

func init() {
	rootCmd.AddCommand(flushCmd)
	flushCmd.Flags().StringVar(&flushDir, "spool", "", "Spool directory (default: config spool_dir)")
	flushCmd.Flags().BoolVar(&flushWatch, "watch", false, "Keep running and flush as new submissions arrive")
}

var flushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Re-submit spooled events to the ledger",
	Long: "Submits queued event files in their original order. Submissions the service\n" +
		"rejects move to the spool's failed/ directory; with --watch, keeps watching\n" +
		"the spool and retrying until interrupted.",
	RunE: runFlush,
}

func runFlush(cmd *cobra.Command, args []string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	dir := flushDir
	if dir == "" {
		dir = cfg.SpoolDir
	}
	if dir == "" {
		return fmt.Errorf("no spool directory: set spool_dir in config or pass --spool")
	}

	s, err := spool.Open(dir)
	if err != nil {
		return err
	}

	if flushWatch {
		logger, _ := zap.NewProduction()
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return spool.NewWatcher(s, client, logger).Run(ctx)
	}

	stats, err := s.Flush(cmd.Context(), client)
	fmt.Printf("submitted %d, quarantined %d, remaining %d\n",
		stats.Submitted, stats.Quarantined, stats.Remaining)
	return err
}
