package repository

import "context"

// AIRepository talks to the text-generation model
type AIRepository interface {
	// GenerateResponse returns the model's text for a raw prompt. An empty
	// string means the model produced no content.
	GenerateResponse(ctx context.Context, prompt string) (string, error)
}
