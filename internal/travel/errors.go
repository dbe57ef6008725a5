package travel

import (
	"fmt"
	"strings"
)

// Error codes for query operation failures. Errors are payloads, not Go
// errors: callers branch on the result, nothing propagates a fault.
const (
	ErrInvalidInput       = "invalid_input"
	ErrNotFound           = "not_found"
	ErrDatasetUnavailable = "dataset_unavailable"
	ErrInternal           = "internal"
)

// OpError is the structured error payload shared by all query operations.
type OpError struct {
	Code                string   `json:"error_code"`
	Message             string   `json:"error"`
	Suggestion          string   `json:"suggestion,omitempty"`
	AvailableCities     []string `json:"available_cities,omitempty"`
	AvailableCategories []string `json:"available_categories,omitempty"`
}

func invalidInput(format string, args ...any) *OpError {
	return &OpError{Code: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func datasetUnavailable(what string) *OpError {
	return &OpError{
		Code:    ErrDatasetUnavailable,
		Message: fmt.Sprintf("%s database is currently unavailable", what),
	}
}

// unknownCity builds the not-found error that lists real city names.
func unknownCity(city, what string, cities []string) *OpError {
	preview := cities
	if len(preview) > 5 {
		preview = preview[:5]
	}
	return &OpError{
		Code:            ErrNotFound,
		Message:         fmt.Sprintf("No %s found in %s", what, city),
		AvailableCities: cities,
		Suggestion:      "Try one of these cities: " + strings.Join(preview, ", "),
	}
}

// internalError is the generic payload used when an operation panics.
func internalError(op string) *OpError {
	return &OpError{
		Code:    ErrInternal,
		Message: fmt.Sprintf("Failed to run %s. Please try again with valid parameters.", op),
	}
}
