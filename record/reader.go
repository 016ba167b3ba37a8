package record

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// columns is the expected header when the source declares one.
var columns = []string{"type", "client", "tx", "amount"}

// RowError marks a single unreadable or malformed row. Reading may
// continue past it: streaming pipelines skip the row, batch pipelines
// abort on it. Anything else returned by Next is a source failure.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Reader lazily yields raw records from a delimited source, one row at
// a time. Fields are trimmed of surrounding whitespace before
// interpretation; the amount column may be absent entirely.
type Reader struct {
	csv        *csv.Reader
	closer     io.Closer
	hasHeader  bool
	headerRead bool
	line       int
}

// Option configures a Reader.
type Option func(*Reader)

// WithHeader controls whether the first row is treated as a column
// header. The default is true.
func WithHeader(has bool) Option {
	return func(r *Reader) { r.hasHeader = has }
}

// NewReader creates a Reader over an io.Reader.
func NewReader(src io.Reader, opts ...Option) *Reader {
	c := csv.NewReader(src)
	// The amount column is optional, so rows carry 3 or 4 fields.
	c.FieldsPerRecord = -1
	c.TrimLeadingSpace = true

	r := &Reader{csv: c, hasHeader: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open creates a Reader over a file. The returned Reader must be closed.
func Open(path string, opts ...Option) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := NewReader(f, opts...)
	r.closer = f
	return r, nil
}

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// Line returns the line number of the most recently read row.
func (r *Reader) Line() int {
	return r.line
}

// Next returns the next raw record. It returns io.EOF once the source
// is exhausted and a *RowError for rows that cannot be interpreted.
func (r *Reader) Next() (Raw, error) {
	if r.hasHeader && !r.headerRead {
		r.headerRead = true
		row, err := r.read()
		if err != nil {
			return Raw{}, err
		}
		if err := validateHeader(row); err != nil {
			return Raw{}, &RowError{Line: r.line, Err: err}
		}
	}

	row, err := r.read()
	if err != nil {
		return Raw{}, err
	}
	return r.parseRow(row)
}

// read fetches one row, translating per-row CSV syntax errors into
// *RowError so callers can distinguish them from source failures.
func (r *Reader) read() ([]string, error) {
	r.line++
	row, err := r.csv.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return nil, &RowError{Line: r.line, Err: err}
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Reader) parseRow(row []string) (Raw, error) {
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}
	if len(row) < 3 || len(row) > 4 {
		return Raw{}, &RowError{Line: r.line, Err: fmt.Errorf("expected 3 or 4 fields, got %d", len(row))}
	}

	client, err := strconv.ParseUint(row[1], 10, 16)
	if err != nil {
		return Raw{}, &RowError{Line: r.line, Err: fmt.Errorf("invalid client id %q", row[1])}
	}
	tx, err := strconv.ParseUint(row[2], 10, 32)
	if err != nil {
		return Raw{}, &RowError{Line: r.line, Err: fmt.Errorf("invalid transaction id %q", row[2])}
	}

	raw := Raw{Type: row[0], Client: uint16(client), TX: uint32(tx)}
	if len(row) == 4 && row[3] != "" {
		d, err := decimal.NewFromString(row[3])
		if err != nil {
			return Raw{}, &RowError{Line: r.line, Err: fmt.Errorf("invalid amount %q", row[3])}
		}
		raw.Amount = &d
	}
	return raw, nil
}

func validateHeader(row []string) error {
	normalized := make([]string, len(row))
	for i := range row {
		normalized[i] = strings.ToLower(strings.TrimSpace(row[i]))
	}
	if len(normalized) < 3 || len(normalized) > len(columns) || !slices.Equal(normalized, columns[:len(normalized)]) {
		return fmt.Errorf("invalid header %q, expected %q", strings.Join(row, ","), strings.Join(columns, ","))
	}
	return nil
}
