package cli

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/alecthomas/kong"

	"github.com/finlog-io/finlog/engine"
	"github.com/finlog-io/finlog/ledger"
	"github.com/finlog-io/finlog/output"
	"github.com/finlog-io/finlog/telemetry"
)

type BatchCmd struct {
	File     FileOrStdin `help:"Transaction log to replay (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Output   string      `help:"Write the resulting accounts to a file instead of stdout." short:"o" placeholder:"FILE"`
	NoHeader bool        `help:"Treat the first row as a record instead of a column header."`
	Table    bool        `help:"Render the accounts as an aligned table instead of delimited records."`
}

func (cmd *BatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx := context.Background()

	var collector telemetry.Collector
	var runTimer telemetry.Timer
	var once sync.Once

	reportTelemetry := func() {
		once.Do(func() {
			if collector != nil {
				runTimer.End()
				_, _ = fmt.Fprintln(ctx.Stderr)
				collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
			}
		})
	}

	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		runTimer = collector.Start(fmt.Sprintf("batch %s", cmd.File.DisplayName()))
		defer reportTelemetry()
	}

	src, err := cmd.File.NewRecordReader(!cmd.NoHeader)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	l := ledger.New()
	if err := engine.Batch(runCtx, l, src); err != nil {
		printError(ctx.Stderr, fmt.Sprintf("aborted: %v", err))
		reportTelemetry()
		os.Exit(1)
	}

	return writeAccounts(ctx.Stdout, ctx.Stderr, cmd.Output, cmd.Table, l.Accounts())
}
