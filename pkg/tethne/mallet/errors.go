package mallet

import (
	"fmt"
	"os"

	"github.com/digitalhps/tethne/pkg/tethne/internalerr"
)

// RowError reports a row that violates its source file's format contract.
// Row numbers are 1-based and count header rows. Err is one of the
// internalerr sentinels and matches with errors.Is.
type RowError struct {
	Path   string
	Row    int
	Raw    string
	Reason string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s: row %d: %s: %s (%q)", e.Path, e.Row, e.Err, e.Reason, e.Raw)
}

func (e *RowError) Unwrap() error { return e.Err }

func rowErr(path string, row int, raw, reason string, sentinel error) error {
	return &RowError{Path: path, Row: row, Raw: raw, Reason: reason, Err: sentinel}
}

// openSource opens one input file, mapping open failures to ErrSourceNotFound.
func openSource(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %v: %w", path, err, internalerr.ErrSourceNotFound)
	}
	return f, nil
}
