package faqbot

import "context"

// Asker forwards a single-turn question to a remote agent.
type Asker interface {
	// Ask returns the agent's answer, including any cited sources.
	Ask(ctx context.Context, question string) (string, error)
}
