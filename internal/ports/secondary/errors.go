// Package secondary defines the secondary ports (driven adapters) for the application.
// This file defines the errors shared by collaborator ports.
package secondary

import "fmt"

// ExternalServiceError wraps a collaborator failure (AI provider or
// message delivery). Callers degrade gracefully instead of failing:
// generation falls back to built-in questions, delivery failures are
// reported per recipient.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
