package error

import (
	"errors"
	"fmt"
	"time"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidCoordinates = 4001
	CodeInvalidDate        = 4002
	CodeInvalidRequest     = 4003
	CodeInvalidWindow      = 4220

	// 5xxx - Server errors
	CodeInternalServer    = 5000
	CodeSourceUnavailable = 5020
)

// Base error types
var (
	// ErrInvalidWindow is returned when an Isha/Fajr pair does not describe a usable night
	ErrInvalidWindow = errors.New("invalid night window")

	// ErrSourceUnavailable is returned when prayer times cannot be fetched or parsed
	ErrSourceUnavailable = errors.New("prayer time source unavailable")

	// ErrLocationUnavailable is returned by location detectors; resolvers recover from it
	ErrLocationUnavailable = errors.New("location unavailable")

	// ErrInvalidCoordinates is returned when latitude or longitude is out of range
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrInvalidDate is returned when a calendar date cannot be parsed
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidCoordinates):
		return CodeInvalidCoordinates
	case errors.Is(err, ErrInvalidDate):
		return CodeInvalidDate
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrInvalidWindow):
		return CodeInvalidWindow
	case errors.Is(err, ErrSourceUnavailable):
		return CodeSourceUnavailable
	default:
		return CodeInternalServer
	}
}

// InvalidWindowError describes an Isha/Fajr pair rejected by the night calculator
type InvalidWindowError struct {
	Isha     time.Time
	Fajr     time.Time
	Duration time.Duration
	Reason   string
}

// Error implements the error interface
func (e *InvalidWindowError) Error() string {
	return fmt.Sprintf("invalid night window (isha: %s, fajr: %s, duration: %s): %s",
		e.Isha.Format(time.RFC3339), e.Fajr.Format(time.RFC3339), e.Duration, e.Reason)
}

// Is checks if the target error is an ErrInvalidWindow
func (e *InvalidWindowError) Is(target error) bool {
	return target == ErrInvalidWindow
}

// LogFields returns a map of fields for structured logging
func (e *InvalidWindowError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "invalid_window",
		"isha":       e.Isha.Format(time.RFC3339),
		"fajr":       e.Fajr.Format(time.RFC3339),
		"duration":   e.Duration.String(),
		"reason":     e.Reason,
		"error_code": CodeInvalidWindow,
	}
}

// NewInvalidWindowError creates a new detailed invalid window error
func NewInvalidWindowError(isha, fajr time.Time, duration time.Duration, reason string) error {
	return &InvalidWindowError{
		Isha:     isha,
		Fajr:     fajr,
		Duration: duration,
		Reason:   reason,
	}
}

// SourceUnavailableError represents a failure to obtain prayer times from the upstream service
type SourceUnavailableError struct {
	Latitude  float64
	Longitude float64
	Date      string
	Reason    string
	Err       error
}

// Error implements the error interface
func (e *SourceUnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("prayer times unavailable for %.4f,%.4f on %s: %s",
			e.Latitude, e.Longitude, e.Date, e.Reason)
	}
	return fmt.Sprintf("prayer times unavailable for %.4f,%.4f on %s: %s - %v",
		e.Latitude, e.Longitude, e.Date, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrSourceUnavailable
func (e *SourceUnavailableError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// LogFields returns a map of fields for structured logging
func (e *SourceUnavailableError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type": "source_unavailable",
		"latitude":   e.Latitude,
		"longitude":  e.Longitude,
		"date":       e.Date,
		"reason":     e.Reason,
		"error_code": CodeSourceUnavailable,
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// NewSourceUnavailableError creates a detailed source unavailable error
func NewSourceUnavailableError(latitude, longitude float64, date, reason string, err error) error {
	return &SourceUnavailableError{
		Latitude:  latitude,
		Longitude: longitude,
		Date:      date,
		Reason:    reason,
		Err:       err,
	}
}

// IsInvalidWindowError checks if the error is an invalid night window error
func IsInvalidWindowError(err error) bool {
	return errors.Is(err, ErrInvalidWindow)
}

// IsSourceUnavailableError checks if the error is a prayer time source failure
func IsSourceUnavailableError(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

// IsClientError checks if the error was caused by invalid caller input
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidCoordinates) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidRequest)
}

// LogFields extracts structured fields from err when it provides them
func LogFields(err error) map[string]any {
	var withFields interface{ LogFields() map[string]any }
	if errors.As(err, &withFields) {
		return withFields.LogFields()
	}
	return map[string]any{
		"error":      err.Error(),
		"error_code": ErrorCode(err),
	}
}
