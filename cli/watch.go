package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/finlog-io/finlog/engine"
	"github.com/finlog-io/finlog/ledger"
	"github.com/finlog-io/finlog/record"
)

type WatchCmd struct {
	File     string `help:"Transaction log to watch." arg:"" type:"existingfile"`
	NoHeader bool   `help:"Treat the first row as a record instead of a column header."`
	Table    bool   `help:"Render the accounts as an aligned table instead of delimited records."`
}

func (cmd *WatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(cmd.File); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cmd.File, err)
	}

	runCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := cmd.replay(runCtx, ctx); err != nil {
		printError(ctx.Stderr, err.Error())
	}
	printInfof(ctx.Stderr, "watching %s", cmd.File)

	// Debounce; editors often write files in multiple steps.
	const debounceDelay = 100 * time.Millisecond
	var debounce *time.Timer
	var fire <-chan time.Time
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-runCtx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Remove/Rename are common in atomic saves.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
				fire = debounce.C
			} else {
				if !debounce.Stop() {
					select {
					case <-fire:
					default:
					}
				}
				debounce.Reset(debounceDelay)
			}

		case <-fire:
			debounce, fire = nil, nil
			// Re-add; atomic saves replace the inode behind the path.
			if err := watcher.Add(cmd.File); err != nil {
				printError(ctx.Stderr, fmt.Sprintf("failed to watch %s: %v", cmd.File, err))
				continue
			}
			if err := cmd.replay(runCtx, ctx); err != nil {
				printError(ctx.Stderr, err.Error())
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(ctx.Stderr, fmt.Sprintf("watch error: %v", err))
		}
	}
}

// replay processes the watched file from scratch and renders the
// resulting accounts to stdout.
func (cmd *WatchCmd) replay(runCtx context.Context, ctx *kong.Context) error {
	src, err := record.Open(cmd.File, record.WithHeader(!cmd.NoHeader))
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	l := ledger.New()
	var stats engine.Stats
	if err := engine.Stream(runCtx, l, src, &stats); err != nil {
		return err
	}

	if err := writeAccounts(ctx.Stdout, ctx.Stderr, "", cmd.Table, l.Accounts()); err != nil {
		return err
	}
	reportSkips(ctx.Stderr, stats.Skipped(), stats.Accepted+stats.Skipped())
	return nil
}
