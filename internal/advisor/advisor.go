// Package advisor drafts natural-language invitation text for a chosen
// recommendation using an LLM. Entirely optional: the planner runs fine
// without a configured model.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"fete/internal/models"
)

// Advisor wraps an LLM used to write invitations and menu summaries.
type Advisor struct {
	model llms.Model
}

// New initializes an advisor backed by the OpenAI API; the key comes from
// the environment as usual for langchaingo.
func New() (*Advisor, error) {
	llm, err := openai.New(openai.WithModel("gpt-4-turbo-preview"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}
	return &Advisor{model: llm}, nil
}

// NewWithModel wraps an existing model; used by tests.
func NewWithModel(model llms.Model) *Advisor {
	return &Advisor{model: model}
}

// DraftInvitation writes a short invitation for the party described by
// one recommendation.
func (a *Advisor) DraftInvitation(ctx context.Context, rec models.Recommendation) (string, error) {
	prompt := buildInvitationPrompt(rec)
	text, err := llms.GenerateFromSinglePrompt(ctx, a.model, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to draft invitation: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func buildInvitationPrompt(rec models.Recommendation) string {
	var b strings.Builder
	b.WriteString("Write a short, warm party invitation (under 120 words). ")
	b.WriteString("Mention the menu but not the costs.\n\n")
	fmt.Fprintf(&b, "Guests: %s\n", strings.Join(rec.GuestNames, ", "))
	fmt.Fprintf(&b, "Food: %s\n", strings.Join(rec.Foods(), ", "))
	fmt.Fprintf(&b, "Drinks: %s\n", strings.Join(rec.Drinks(), ", "))
	return b.String()
}
