package api

import "fmt"

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
	// Fields holds per-field validation messages when the server returned
	// a 422 with an errors map.
	Fields map[string]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

// IsValidation reports whether the error carries field-level problems.
func (e *APIError) IsValidation() bool {
	return len(e.Fields) > 0
}
