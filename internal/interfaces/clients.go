package interfaces

import "context"

// GenAIClient is the generative-text collaborator used by the advisor.
type GenAIClient interface {
	// GenerateContent generates text from a prompt.
	GenerateContent(ctx context.Context, prompt string) (string, error)

	Close() error
}
