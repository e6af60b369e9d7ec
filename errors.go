package pdfimport

import (
	"errors"
	"fmt"
)

// Error kinds reported by the extraction. Use errors.Is to test for them.
var (
	// ErrMalformedNumber, ErrMalformedDate and ErrMalformedCurrency report a
	// literal captured by a pattern that is not a valid value.
	ErrMalformedNumber   = errors.New("malformed number")
	ErrMalformedDate     = errors.New("malformed date")
	ErrMalformedCurrency = errors.New("malformed currency")

	// ErrRequiredSectionNotFound reports a required section whose patterns
	// were not all found before the end of the block instance.
	ErrRequiredSectionNotFound = errors.New("required section not found")

	// ErrUnsupportedTransactionVariant reports a block instance the extractor cannot turn into an item.
	ErrUnsupportedTransactionVariant = errors.New("unsupported transaction variant")

	// ErrCaptureConflict reports two sections capturing different values under the same name.
	ErrCaptureConflict = errors.New("capture conflict")

	// ErrNoRate reports a missing exchange rate for a foreign currency security.
	ErrNoRate = errors.New("no exchange rate")
)

// Severity classifies a Diagnostic.
type Severity int

const (
	// Warning is a malformed literal: the instance is discarded.
	Warning Severity = iota
	// Discard is a layout that does not match: the instance is silently discarded.
	Discard
	// Failure is an instance the extractor matched but could not complete.
	Failure
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Discard:
		return "discard"
	default:
		return "failure"
	}
}

// Diagnostic explains why a block instance produced no item.
type Diagnostic struct {
	Source  Source // where the discarded instance was
	Section string // the section that failed, empty when wrapping failed
	Err     error
}

// Severity returns the classification of the diagnostic error.
func (d Diagnostic) Severity() Severity {
	switch {
	case errors.Is(d.Err, ErrMalformedNumber), errors.Is(d.Err, ErrMalformedDate), errors.Is(d.Err, ErrMalformedCurrency):
		return Warning
	case errors.Is(d.Err, ErrRequiredSectionNotFound):
		return Discard
	default:
		return Failure
	}
}

func (d Diagnostic) Error() string {
	if d.Section == "" {
		return fmt.Sprintf("%s: %v", d.Source, d.Err)
	}
	return fmt.Sprintf("%s: section %q: %v", d.Source, d.Section, d.Err)
}

func (d Diagnostic) Unwrap() error { return d.Err }
