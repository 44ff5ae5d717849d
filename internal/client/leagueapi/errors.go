package leagueapi

import (
	"fmt"
	"net/http"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/youth-league/internal/platform/resilience"
)

// ErrValidation marks input rejected before any request was sent.
var ErrValidation = crerr.New("validation failed")

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = crerr.New("league service is temporarily unavailable")

const genericMessage = "Something went wrong. Please try again."

// APIError is a non-2xx response or a transport failure.
type APIError struct {
	StatusCode int
	Status     string
	Reason     string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.StatusCode > 0 && e.Message != "":
		return fmt.Sprintf("league api status=%d: %s", e.StatusCode, e.Message)
	case e.StatusCode > 0:
		return fmt.Sprintf("league api status=%d", e.StatusCode)
	case e.Err != nil:
		return "league api request failed: " + e.Err.Error()
	default:
		return "league api request failed"
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func validationf(format string, args ...any) error {
	return crerr.Wrapf(ErrValidation, format, args...)
}

// IsUnauthenticated reports a missing, expired or rejected credential.
func IsUnauthenticated(err error) bool {
	var apiErr *APIError
	return crerr.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsForbidden reports a valid credential whose role lacks permission.
func IsForbidden(err error) bool {
	var apiErr *APIError
	return crerr.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden
}

// IsConflict reports a rejected write such as an out-of-turn pick.
func IsConflict(err error) bool {
	var apiErr *APIError
	return crerr.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// Reason returns the machine readable reason of an API error, if any.
func Reason(err error) string {
	var apiErr *APIError
	if crerr.As(err, &apiErr) {
		return apiErr.Reason
	}
	return ""
}

// UserMessage turns any client error into a sentence fit for an operator.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case IsUnauthenticated(err):
		return "Your session has expired or is invalid. Please log in again."
	case IsForbidden(err):
		return "You do not have permission to perform this action."
	case crerr.Is(err, ErrUnavailable), crerr.Is(err, resilience.ErrCircuitOpen):
		return "The league service is unavailable right now. Please try again shortly."
	case crerr.Is(err, ErrValidation):
		return strings.TrimSpace(strings.TrimSuffix(err.Error(), ": "+ErrValidation.Error()))
	}

	var apiErr *APIError
	if crerr.As(err, &apiErr) {
		if msg := strings.TrimSpace(apiErr.Message); msg != "" {
			return msg
		}
		if apiErr.Err != nil && strings.TrimSpace(apiErr.Err.Error()) != "" {
			return apiErr.Err.Error()
		}
	}
	return genericMessage
}

// errorMessage pulls a message out of an error body. The service sends
// {"error":{"message":...}}; older backends send {"error":"..."}.
func errorMessage(body map[string]any) (message, status, reason string) {
	switch v := body["error"].(type) {
	case string:
		return v, "", ""
	case map[string]any:
		message, _ = v["message"].(string)
		status, _ = v["status"].(string)
		if items, ok := v["errors"].([]any); ok && len(items) > 0 {
			if first, ok := items[0].(map[string]any); ok {
				reason, _ = first["reason"].(string)
			}
		}
		return message, status, reason
	}
	if msg, ok := body["message"].(string); ok {
		return msg, "", ""
	}
	return "", "", ""
}
