// Package gemini implements faqbot.Asker using Google Gemini.
package gemini

import (
	"context"

	"github.com/fwojciec/faqbot"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// SystemInstruction frames every question.
const SystemInstruction = "You are a helpful assistant in a chat group about typst and the LaTeX-BIThesis template. " +
	"Answer in the language of the question, briefly, in plain text without markdown. " +
	"If you are not sure, say so and suggest where to look."

// Ensure Asker implements faqbot.Asker at compile time.
var _ faqbot.Asker = (*Asker)(nil)

// Asker implements faqbot.Asker using Google Gemini.
type Asker struct {
	client *genai.Client
	model  string
}

// NewAsker creates a new Asker. If model is empty DefaultModel is used.
func NewAsker(client *genai.Client, model string) *Asker {
	if model == "" {
		model = DefaultModel
	}
	return &Asker{client: client, model: model}
}

// Ask answers a single-turn question.
func (a *Asker) Ask(ctx context.Context, question string) (string, error) {
	if question == "" {
		return "", faqbot.Errorf(faqbot.EINVALID, "question required")
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{genai.NewContentFromText(question, genai.RoleUser)},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", faqbot.Errorf(faqbot.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: SystemInstruction,
			}},
		},
		Temperature: &temp,
	}
}
