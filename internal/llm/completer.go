// Package llm adapts completion providers behind one interface so the
// extraction strategy can try them in priority order.
package llm

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/pagescan/pkg/anthropic"
	"github.com/sells-group/pagescan/pkg/perplexity"
)

// Completer is one text-completion back-end. Implementations return the
// raw completion text; callers own JSON parsing and validation.
type Completer interface {
	Name() string
	Complete(ctx context.Context, system, user string) (string, error)
}

const (
	defaultMaxTokens   = 2048
	defaultTemperature = 0.1
)

// anthropicCompleter is the general-purpose completion back-end.
type anthropicCompleter struct {
	client anthropic.Client
	model  string
}

// NewAnthropic wraps an Anthropic client as a Completer.
func NewAnthropic(client anthropic.Client, model string) Completer {
	return &anthropicCompleter{client: client, model: model}
}

func (a *anthropicCompleter) Name() string { return "anthropic" }

func (a *anthropicCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	temp := defaultTemperature
	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       a.model,
		MaxTokens:   defaultMaxTokens,
		System:      system,
		Messages:    []anthropic.Message{{Role: "user", Content: user}},
		Temperature: &temp,
	})
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", eris.New("anthropic: empty completion")
	}
	return text, nil
}

// perplexityCompleter is the search-grounded completion back-end.
type perplexityCompleter struct {
	client perplexity.Client
	model  string
}

// NewPerplexity wraps a Perplexity client as a Completer.
func NewPerplexity(client perplexity.Client, model string) Completer {
	return &perplexityCompleter{client: client, model: model}
}

func (p *perplexityCompleter) Name() string { return "perplexity" }

func (p *perplexityCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	temp := defaultTemperature
	maxTokens := defaultMaxTokens
	resp, err := p.client.ChatCompletion(ctx, perplexity.ChatCompletionRequest{
		Model: p.model,
		Messages: []perplexity.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return "", err
	}
	content := resp.Content()
	if content == "" {
		return "", eris.New("perplexity: empty completion")
	}
	return content, nil
}
