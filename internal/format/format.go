// Package format outputs data in formatted table structures
package format

import (
	"io"

	"github.com/simplesurance/ciconf/internal/format/csv"
	"github.com/simplesurance/ciconf/internal/format/jsonformat"
	"github.com/simplesurance/ciconf/internal/format/table"
)

// Formatter is an interface for formatters
type Formatter interface {
	WriteRow(Row ...any) error
	Flush() error
}

// New returns a Formatter for the given format name, the supported names
// are "csv", "json" and "plain".
// The header row is only written by the plain and csv formatter when
// withHeader is true, the json formatter always uses the headers as keys.
func New(format string, headers []string, withHeader bool, w io.Writer) Formatter {
	var header []string
	if withHeader {
		header = headers
	}

	switch format {
	case "csv":
		return csv.New(header, w)
	case "json":
		return jsonformat.New(headers, w)
	default:
		return table.New(header, w)
	}
}
