package dto

import (
	domainerr "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/error"
)

// ErrorResponse is the body of every non-2xx answer.
//
// Code is a stable application code, finer than the HTTP status: 4001 invalid
// coordinates, 4002 invalid date, 4003 malformed request, 4220 unusable night
// window, 5020 prayer time source unavailable and 5000 anything else.
type ErrorResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// NewErrorResponse builds the body for err; the code follows the domain error it wraps
func NewErrorResponse(err error, message, requestID string) ErrorResponse {
	return ErrorResponse{
		Code:      domainerr.ErrorCode(err),
		Message:   message,
		RequestID: requestID,
	}
}
