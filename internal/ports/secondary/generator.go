// Package secondary defines the secondary ports (driven adapters) for the application.
// This file defines the AI text-generation port.
package secondary

import "context"

// TextGenerator defines the secondary port for the AI provider. The
// application builds prompts and parses responses; the adapter only
// moves text. Failures surface as *ExternalServiceError and are never
// fatal to scheduling.
type TextGenerator interface {
	// Invoke sends one prompt and returns the model's text response.
	Invoke(ctx context.Context, prompt string) (string, error)
}
