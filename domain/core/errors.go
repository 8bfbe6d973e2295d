package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Numeric domain errors: invalid inputs to probability models
	ErrDomain           = errors.New("value outside model domain")
	ErrNegativeRate     = fmt.Errorf("%w: negative occurrence rate", ErrDomain)
	ErrNonPositiveSpan  = fmt.Errorf("%w: non-positive time span", ErrDomain)
	ErrBadTruncation    = fmt.Errorf("%w: negative truncation level", ErrDomain)
	ErrProbabilityRange = fmt.Errorf("%w: probability outside [0, 1]", ErrDomain)

	// Configuration errors: detected before (or at first use during) a computation
	ErrConfiguration  = errors.New("invalid calculation configuration")
	ErrUnsupportedTRT = fmt.Errorf("%w: no ground motion model for tectonic region type", ErrConfiguration)
	ErrBadLevels      = fmt.Errorf("%w: intensity levels must be positive and strictly increasing", ErrConfiguration)

	// Context errors: a rupture or site lacks attributes a model requires
	ErrContext = errors.New("missing context attribute")

	// Filter errors: malformed geometry handed to a site filter
	ErrFilter = errors.New("filter rejected geometry")
)

// Error constructors with context
func NewDomainError(reason string) error {
	return fmt.Errorf("%w: %s", ErrDomain, reason)
}

func NewContextError(attribute string) error {
	return fmt.Errorf("%w: %s", ErrContext, attribute)
}

func NewFilterError(reason string) error {
	return fmt.Errorf("%w: %s", ErrFilter, reason)
}

func NewUnsupportedTRTError(trt string) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedTRT, trt)
}

// SourceError wraps any failure raised while processing a single seismic
// source. It carries the offending source identifier and terminates the whole
// computation; there is no partial-source recovery.
type SourceError struct {
	SourceID string
	Err      error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("an error occurred with source id=%s. Error: %v", e.SourceID, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func NewSourceError(sourceID string, err error) error {
	return &SourceError{SourceID: sourceID, Err: err}
}

// Error checking helpers
func IsDomainError(err error) bool {
	return errors.Is(err, ErrDomain)
}

func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func IsContextError(err error) bool {
	return errors.Is(err, ErrContext)
}

func IsFilterError(err error) bool {
	return errors.Is(err, ErrFilter)
}

func IsSourceError(err error) bool {
	var se *SourceError
	return errors.As(err, &se)
}
