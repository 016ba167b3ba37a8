package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	runewidth "github.com/mattn/go-runewidth"

	"github.com/finlog-io/finlog/ledger"
)

// Header is the column header of the result record format.
var Header = []string{"client", "available", "held", "total", "locked"}

func row(a ledger.Account) []string {
	return []string{
		strconv.FormatUint(uint64(a.ID), 10),
		ledger.FormatAmount(a.Available),
		ledger.FormatAmount(a.Held),
		ledger.FormatAmount(a.Total()),
		strconv.FormatBool(a.Frozen),
	}
}

// WriteCSV renders accounts as delimited records, one per account, in
// the order given (first-touch order when coming from a ledger).
// Amounts carry exactly four fractional digits.
func WriteCSV(w io.Writer, accounts []ledger.Account) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, a := range accounts {
		if err := cw.Write(row(a)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable renders accounts as an aligned table for terminal runs.
// Numeric columns are right-aligned; frozen accounts are highlighted.
func WriteTable(w io.Writer, accounts []ledger.Account) {
	styles := NewStyles(w)

	rows := make([][]string, 0, len(accounts)+1)
	rows = append(rows, Header)
	for _, a := range accounts {
		rows = append(rows, row(a))
	}

	widths := make([]int, len(Header))
	for _, r := range rows {
		for i, cell := range r {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for n, r := range rows {
		cells := make([]string, len(r))
		for i, cell := range r {
			pad := strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell))
			if i == 0 {
				// Client ids and the header row stay left-aligned.
				cells[i] = cell + pad
			} else {
				cells[i] = pad + cell
			}
		}
		line := strings.Join(cells, "  ")
		switch {
		case n == 0:
			line = styles.Keyword(line)
		case r[len(r)-1] == "true":
			line = styles.Warning(line)
		}
		_, _ = fmt.Fprintln(w, line)
	}
}
