package image

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCorrupt is reported when image document can not be decoded
	ErrCorrupt = errors.New("corrupt image")
	// ErrChecksum is reported when image integrity trailer is missing or does not match
	ErrChecksum = errors.New("image checksum mismatch")
)

// AggregateError collects all errors registered before an operation was marked as fatal
type AggregateError struct {
	Message string
	Errors  []error
}

func (e *AggregateError) Error() string {
	builder := &strings.Builder{}
	builder.WriteString(e.Message)
	for _, err := range e.Errors {
		builder.WriteString("\n - ")
		builder.WriteString(err.Error())
	}
	return builder.String()
}

// Unwrap returns collected errors
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// Diagnostics collects partial errors, any of them makes operation fatal
type Diagnostics struct {
	errors []error
}

// Register adds an error
func (d *Diagnostics) Register(err error) {
	if err != nil {
		d.errors = append(d.errors, err)
	}
}

// Registerf adds formatted error
func (d *Diagnostics) Registerf(format string, args ...interface{}) {
	d.errors = append(d.errors, fmt.Errorf(format, args...))
}

// HasFailed returns true if any error was registered
func (d *Diagnostics) HasFailed() bool {
	return len(d.errors) > 0
}

// Fatal returns registered errors as one aggregate, or nil when nothing failed
func (d *Diagnostics) Fatal(message string) error {
	if !d.HasFailed() {
		return nil
	}
	return &AggregateError{Message: message, Errors: d.errors}
}
