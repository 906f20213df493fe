package forecast

import "fmt"

// InvalidInputError reports a caller-supplied option that failed validation.
// It is not retryable; the caller must correct the input.
type InvalidInputError struct {
	Msg string
}

func (e *InvalidInputError) Error() string {
	return e.Msg
}

func invalidInputf(format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Msg: fmt.Sprintf(format, args...)}
}

// ExternalServiceError reports a failed call to an upstream service: a non-2xx
// response from a weather provider or any failure from the generative AI
// service. The module does not retry; the caller decides what to do.
type ExternalServiceError struct {
	Service    string
	StatusCode int
	Body       string
	Err        error
}

func (e *ExternalServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s request failed (%d): %s", e.Service, e.StatusCode, e.Body)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
