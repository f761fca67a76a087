package common_model

// DescriptiveError is the JSON error envelope returned by every handler.
type DescriptiveError struct {
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source,omitempty"`
}

// NewApiError builds an error envelope from a message, an optional underlying
// error and the component that produced it.
func NewApiError(message string, err error, source string) *DescriptiveError {
	e := &DescriptiveError{
		Message: message,
		Source:  source,
	}
	if err != nil {
		e.Description = err.Error()
	}
	return e
}

// NewParseJsonError wraps body/query parsing failures.
func NewParseJsonError(err error) *DescriptiveError {
	return NewApiError("unable to parse request", err, "parser")
}

// NewValidationError wraps validator failures.
func NewValidationError(err error) *DescriptiveError {
	return NewApiError("request failed validation", err, "validator")
}

// Send returns the envelope by value for JSON serialization.
func (e *DescriptiveError) Send() DescriptiveError {
	return *e
}

func (e *DescriptiveError) Error() string {
	if e.Description != "" {
		return e.Message + ": " + e.Description
	}
	return e.Message
}
