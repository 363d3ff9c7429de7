package services

import (
	"errors"
	"fmt"
	"strings"
)

// Validation and lookup errors surfaced by the engine. Callers are expected
// to match these with errors.Is and render their own user-facing messages;
// none of them is retryable.
var (
	// ErrEncoding means the upload could not be decoded as UTF-8 text.
	ErrEncoding = errors.New("invalid file encoding (expected UTF-8)")
	// ErrEmptyInput means the CSV contained no data rows at all.
	ErrEmptyInput = errors.New("csv file is empty")
	// ErrNoValidRows means every data row was dropped during cleaning.
	ErrNoValidRows = errors.New("no valid data rows found after cleaning")
	// ErrNotFound means no dataset exists with the requested id.
	ErrNotFound = errors.New("dataset not found")
	// ErrEmptyDataset means analytics was requested for a dataset with no equipment.
	ErrEmptyDataset = errors.New("dataset has no equipment data")
)

// SchemaError reports the required CSV columns missing from the header row.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// IsValidationError reports whether err is any of the CSV validation failures.
func IsValidationError(err error) bool {
	var schemaErr *SchemaError
	return errors.Is(err, ErrEncoding) ||
		errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrNoValidRows) ||
		errors.As(err, &schemaErr)
}
