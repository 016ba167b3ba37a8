package record

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestReaderWithHeader(t *testing.T) {
	r := NewReader(strings.NewReader("type,client,tx,amount\ndeposit,1,1,10.0\n"))

	raw, err := r.Next()
	assert.NoError(t, err)
	assert.Equal(t, "deposit", raw.Type)
	assert.Equal(t, uint16(1), raw.Client)
	assert.Equal(t, uint32(1), raw.TX)
	assert.NotZero(t, raw.Amount)
	assert.Equal(t, "10", raw.Amount.String())

	_, err = r.Next()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestReaderWithoutHeader(t *testing.T) {
	r := NewReader(strings.NewReader("deposit,1,1,10.0\n"), WithHeader(false))

	raw, err := r.Next()
	assert.NoError(t, err)
	assert.Equal(t, "deposit", raw.Type)

	_, err = r.Next()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestReaderTrimsFields(t *testing.T) {
	r := NewReader(strings.NewReader(" type , client , tx , amount \n deposit , 1 , 1 , 10.0 \n"))

	raw, err := r.Next()
	assert.NoError(t, err)
	assert.Equal(t, "deposit", raw.Type)
	assert.Equal(t, uint16(1), raw.Client)
	assert.Equal(t, "10", raw.Amount.String())
}

func TestReaderOmittedAmountColumn(t *testing.T) {
	// References commonly arrive with a trailing empty field or none at all.
	r := NewReader(strings.NewReader("dispute,1,1,\nresolve,1,1\n"), WithHeader(false))

	raw, err := r.Next()
	assert.NoError(t, err)
	assert.Equal(t, "dispute", raw.Type)
	assert.Zero(t, raw.Amount)

	raw, err = r.Next()
	assert.NoError(t, err)
	assert.Equal(t, "resolve", raw.Type)
	assert.Zero(t, raw.Amount)
}

func TestReaderRowErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "invalid client id", input: "deposit,abc,1,10.0\n"},
		{name: "client id out of range", input: "deposit,70000,1,10.0\n"},
		{name: "invalid transaction id", input: "deposit,1,xyz,10.0\n"},
		{name: "invalid amount", input: "deposit,1,1,ten\n"},
		{name: "too few fields", input: "deposit,1\n"},
		{name: "too many fields", input: "deposit,1,1,10.0,extra\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(tt.input), WithHeader(false))

			_, err := r.Next()
			var rowErr *RowError
			assert.True(t, errors.As(err, &rowErr), "expected RowError, got %T: %v", err, err)
			assert.Equal(t, 1, rowErr.Line)
		})
	}
}

func TestReaderContinuesAfterRowError(t *testing.T) {
	input := "deposit,1,1,10.0\nwithdrawal,bad,2,5.0\ndeposit,2,3,7.0\n"
	r := NewReader(strings.NewReader(input), WithHeader(false))

	raw, err := r.Next()
	assert.NoError(t, err)
	assert.Equal(t, uint32(1), raw.TX)

	_, err = r.Next()
	var rowErr *RowError
	assert.True(t, errors.As(err, &rowErr))

	raw, err = r.Next()
	assert.NoError(t, err)
	assert.Equal(t, uint32(3), raw.TX)

	_, err = r.Next()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestReaderRejectsUnknownHeader(t *testing.T) {
	r := NewReader(strings.NewReader("foo,bar,baz\ndeposit,1,1,10.0\n"))

	_, err := r.Next()
	var rowErr *RowError
	assert.True(t, errors.As(err, &rowErr))

	// The data row after the bad header is still reachable.
	raw, err := r.Next()
	assert.NoError(t, err)
	assert.Equal(t, "deposit", raw.Type)
}

func TestReaderHeaderCaseInsensitive(t *testing.T) {
	r := NewReader(strings.NewReader("Type,Client,TX,Amount\ndeposit,1,1,10.0\n"))

	raw, err := r.Next()
	assert.NoError(t, err)
	assert.Equal(t, "deposit", raw.Type)
}

func TestReaderEmptyInput(t *testing.T) {
	r := NewReader(strings.NewReader(""))
	_, err := r.Next()
	assert.True(t, errors.Is(err, io.EOF))

	r = NewReader(strings.NewReader("type,client,tx,amount\n"))
	_, err = r.Next()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open("testdata/does-not-exist.csv")
	assert.Error(t, err)
}
