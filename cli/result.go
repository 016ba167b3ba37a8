package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/finlog-io/finlog/ledger"
	"github.com/finlog-io/finlog/output"
)

// writeAccounts renders the final account set. With no output path the
// accounts go to stdout, as delimited records or as an aligned table.
// With a path they are written as delimited records, asking before
// overwriting an existing file on interactive runs.
func writeAccounts(stdout, stderr io.Writer, path string, table bool, accounts []ledger.Account) error {
	if path == "" {
		if table {
			output.WriteTable(stdout, accounts)
			return nil
		}
		return output.WriteCSV(stdout, accounts)
	}

	if _, err := os.Stat(path); err == nil {
		ok, err := confirmOverwrite(path)
		if err != nil {
			return err
		}
		if !ok {
			printInfof(stderr, "left %s untouched", path)
			return nil
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := output.WriteCSV(f, accounts); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	printSuccess(stderr, fmt.Sprintf("wrote %d account(s) to %s", len(accounts), path))
	return nil
}

// reportSkips summarizes what a streaming run dropped.
func reportSkips(w io.Writer, skipped, total int) {
	if skipped > 0 {
		printInfof(w, "skipped %d of %d record(s)", skipped, total)
	}
}
