package errors

import "fmt"

// Error codes
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNavigation = "NAVIGATION_ERROR"
	CodeCache      = "CACHE_ERROR"
	CodeSink       = "SINK_ERROR"
)

type ScraperError struct {
	Message string
	Code    string
	Context map[string]any
	Cause   error
}

func (e *ScraperError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ScraperError) Unwrap() error {
	return e.Cause
}

type ValidationError struct {
	*ScraperError
	Field string
	Value any
}

func NewValidationError(message, field string, value any) *ValidationError {
	return &ValidationError{
		ScraperError: &ScraperError{
			Message: message,
			Code:    CodeValidation,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type NavigationError struct {
	*ScraperError
	URL string
}

func NewNavigationError(message, url string, cause error) *NavigationError {
	return &NavigationError{
		ScraperError: &ScraperError{
			Message: message,
			Code:    CodeNavigation,
			Context: map[string]any{"url": url},
			Cause:   cause,
		},
		URL: url,
	}
}

type CacheError struct {
	*ScraperError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		ScraperError: &ScraperError{
			Message: message,
			Code:    CodeCache,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

type SinkError struct {
	*ScraperError
	Sink string
}

func NewSinkError(message, sink string, cause error) *SinkError {
	return &SinkError{
		ScraperError: &ScraperError{
			Message: message,
			Code:    CodeSink,
			Context: map[string]any{"sink": sink},
			Cause:   cause,
		},
		Sink: sink,
	}
}
