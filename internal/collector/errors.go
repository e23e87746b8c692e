package collector

import (
	"errors"
	"fmt"
)

// ErrZeroPrevious is wrapped by a ParseError when the previous close is not positive.
var ErrZeroPrevious = errors.New("previous close must be positive")

// TransportError is a network or HTTP-level failure.
type TransportError struct {
	Symbol string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error for %s: %v", e.Symbol, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError is an explicit error payload returned by the quote service.
type UpstreamError struct {
	Symbol  string
	Message string
}

func (e *UpstreamError) Error() string { return e.Message }

// NotFoundError means the expected JSON section was missing.
type NotFoundError struct {
	Symbol  string
	Section string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No data available for symbol: %s", e.Symbol)
}

// InsufficientDataError means fewer than two daily records were returned.
type InsufficientDataError struct {
	Symbol string
	Have   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("not enough history for %s: need 2 trading days, got %d", e.Symbol, e.Have)
}

// ParseError is a malformed numeric field.
type ParseError struct {
	Symbol string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q for %s: invalid value %q: %v", e.Field, e.Symbol, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LookupError returns the first error in err's chain that belongs to the
// lookup taxonomy, or err itself when none does.
func LookupError(err error) error {
	var (
		te *TransportError
		ue *UpstreamError
		nf *NotFoundError
		ie *InsufficientDataError
		pe *ParseError
	)
	switch {
	case errors.As(err, &ue):
		return ue
	case errors.As(err, &nf):
		return nf
	case errors.As(err, &ie):
		return ie
	case errors.As(err, &pe):
		return pe
	case errors.As(err, &te):
		return te
	}
	return err
}

// Kind names the taxonomy class of err for logging.
func Kind(err error) string {
	switch LookupError(err).(type) {
	case *TransportError:
		return "transport"
	case *UpstreamError:
		return "upstream"
	case *NotFoundError:
		return "not_found"
	case *InsufficientDataError:
		return "insufficient_data"
	case *ParseError:
		return "parse"
	default:
		return "unknown"
	}
}
