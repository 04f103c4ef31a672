package enum

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	ErrDuplicateDomain   = errors.New("duplicate domain")
	ErrUnknownDomain     = errors.New("unknown domain")
	ErrUnknownLabel      = errors.New("unknown label")
	ErrOrdinalOutOfRange = errors.New("ordinal out of range")
	ErrInvalidDomain     = errors.New("invalid domain")
)

// Lookup error codes (E3xx), shared with the accessor.
const (
	CodeUnknownLabel      = "E302"
	CodeOrdinalOutOfRange = "E303"
	CodeDuplicateDomain   = "E304"
	CodeUnknownDomain     = "E305"
	CodeInvalidDomain     = "E306"
)

// LookupError reports a failed domain, label or ordinal lookup.
// It wraps one of the sentinel errors above.
type LookupError struct {
	Code    string
	Domain  string
	Label   string
	Ordinal int
	err     error
}

func (e *LookupError) Error() string {
	switch e.err {
	case ErrUnknownLabel:
		return fmt.Sprintf("%s: unknown label %q in domain %s", e.Code, e.Label, e.Domain)
	case ErrOrdinalOutOfRange:
		return fmt.Sprintf("%s: ordinal %d out of range for domain %s", e.Code, e.Ordinal, e.Domain)
	default:
		return fmt.Sprintf("%s: %v: %s", e.Code, e.err, e.Domain)
	}
}

func (e *LookupError) Unwrap() error { return e.err }

func unknownLabel(domain, label string) error {
	return &LookupError{Code: CodeUnknownLabel, Domain: domain, Label: label, err: ErrUnknownLabel}
}

func ordinalOutOfRange(domain string, ordinal int) error {
	return &LookupError{Code: CodeOrdinalOutOfRange, Domain: domain, Ordinal: ordinal, err: ErrOrdinalOutOfRange}
}
