package forecast

import (
	"errors"
	"fmt"
)

// Reason explains why no forecast could be produced.
type Reason string

const (
	ReasonNoData    Reason = "no_data"
	ReasonFitFailed Reason = "fit_failed"
)

var (
	// ErrNoData means the user has no expense history at all.
	ErrNoData = errors.New("no expense history")
	// ErrFitFailed means the seasonal model could not be fitted or evaluated.
	ErrFitFailed = errors.New("seasonal model fit failed")
)

// UnavailableError is the only error the Forecaster returns. Both reasons
// surface to users as "no forecast"; the distinction is kept for diagnostics.
type UnavailableError struct {
	Reason Reason
	Err    error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("forecast unavailable: %s", e.Reason)
	}
	return fmt.Sprintf("forecast unavailable: %s: %v", e.Reason, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNoData) and errors.Is(err, ErrFitFailed) match on
// the reason even when Err carries a more specific cause.
func (e *UnavailableError) Is(target error) bool {
	switch target {
	case ErrNoData:
		return e.Reason == ReasonNoData
	case ErrFitFailed:
		return e.Reason == ReasonFitFailed
	}
	return false
}

func noData() error {
	return &UnavailableError{Reason: ReasonNoData, Err: ErrNoData}
}

func fitFailed(cause error) error {
	return &UnavailableError{Reason: ReasonFitFailed, Err: cause}
}
