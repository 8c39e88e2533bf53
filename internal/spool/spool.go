// Package spool queues event submissions that could not reach the ledger
// and re-submits them once the service is reachable again. One pending
// submission per JSON file; rejected submissions are quarantined under
// failed/ instead of being retried forever.
package spool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/action-ledger/sdk-go/ledger"
)

// failedDir holds submissions the service explicitly rejected.
const failedDir = "failed"

// Spool is a directory of pending event submissions.
type Spool struct {
	dir string
}

// Open creates the spool directory (and its failed/ quarantine) if needed.
func Open(dir string) (*Spool, error) {
	if dir == "" {
		return nil, errors.New("spool: directory is required")
	}
	if err := os.MkdirAll(filepath.Join(dir, failedDir), 0700); err != nil {
		return nil, fmt.Errorf("spool: create directory: %w", err)
	}
	return &Spool{dir: dir}, nil
}

// Dir returns the spool directory.
func (s *Spool) Dir() string { return s.dir }

// Put queues one submission. File names start with a nanosecond timestamp so
// lexical order preserves submission order across flushes.
func (s *Spool) Put(sub ledger.Submission) (string, error) {
	data, err := json.Marshal(sub)
	if err != nil {
		return "", fmt.Errorf("spool: marshal submission: %w", err)
	}
	name := fmt.Sprintf("%020d-%s.json", time.Now().UnixNano(), uuid.NewString())
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("spool: write %s: %w", name, err)
	}
	return path, nil
}

// Pending returns queued submission files in submission order.
func (s *Spool) Pending() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("spool: read directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// FlushStats summarizes one Flush pass.
type FlushStats struct {
	Submitted   int
	Quarantined int
	Remaining   int
}

// Flush submits pending files in order through client. Rejected or unreadable
// submissions move to failed/; on a transport failure the pass stops so the
// remaining files keep their order for the next attempt.
func (s *Spool) Flush(ctx context.Context, client *ledger.Client) (FlushStats, error) {
	var stats FlushStats
	paths, err := s.Pending()
	if err != nil {
		return stats, err
	}

	for i, path := range paths {
		sub, err := s.read(path)
		if err != nil {
			s.quarantine(path)
			stats.Quarantined++
			continue
		}

		if _, err := client.LogEvent(ctx, *sub); err != nil {
			var apiErr *ledger.APIError
			if errors.As(err, &apiErr) {
				s.quarantine(path)
				stats.Quarantined++
				continue
			}
			// Transport failure: service still unreachable, stop here.
			stats.Remaining = len(paths) - i
			return stats, err
		}

		_ = os.Remove(path)
		stats.Submitted++
	}
	return stats, nil
}

// read loads one queued submission. Symlinks are rejected so a spool entry
// can never point the flusher at an arbitrary file.
func (s *Spool) read(path string) (*ledger.Submission, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("spool: stat %s: %w", filepath.Base(path), err)
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		return nil, fmt.Errorf("spool: rejected symlink: %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("spool: read %s: %w", filepath.Base(path), err)
	}
	var sub ledger.Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("spool: invalid JSON in %s: %w", filepath.Base(path), err)
	}
	return &sub, nil
}

func (s *Spool) quarantine(path string) {
	dest := filepath.Join(s.dir, failedDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		_ = os.Remove(path)
	}
}
