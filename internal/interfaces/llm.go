package interfaces

import "context"

// TextGenerator sends a prompt to a language-generation service and returns its raw text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
