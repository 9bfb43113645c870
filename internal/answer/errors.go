package answer

import (
	"errors"
	"fmt"
)

var (
	// ErrRetrieval is returned when the vector index cannot serve a query.
	ErrRetrieval = errors.New("retrieval failed")
	// ErrGeneration is returned when the text generator fails or times out.
	ErrGeneration = errors.New("generation failed")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}
