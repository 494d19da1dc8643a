package llm

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/pagescan/pkg/anthropic"
	"github.com/sells-group/pagescan/pkg/perplexity"
)

type fakeAnthropic struct {
	req  anthropic.MessageRequest
	resp *anthropic.MessageResponse
	err  error
}

func (f *fakeAnthropic) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.req = req
	return f.resp, f.err
}

type fakePerplexity struct {
	req  perplexity.ChatCompletionRequest
	resp *perplexity.ChatCompletionResponse
	err  error
}

func (f *fakePerplexity) ChatCompletion(ctx context.Context, req perplexity.ChatCompletionRequest) (*perplexity.ChatCompletionResponse, error) {
	f.req = req
	return f.resp, f.err
}

func TestAnthropicCompleter(t *testing.T) {
	fake := &fakeAnthropic{
		resp: &anthropic.MessageResponse{
			Content: []anthropic.ContentBlock{{Type: "text", Text: `{"product_name":"Acme"}`}},
		},
	}
	c := NewAnthropic(fake, "claude-haiku-4-5-20251001")
	assert.Equal(t, "anthropic", c.Name())

	text, err := c.Complete(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"product_name":"Acme"}`, text)

	assert.Equal(t, "claude-haiku-4-5-20251001", fake.req.Model)
	assert.Equal(t, "system prompt", fake.req.System)
	require.Len(t, fake.req.Messages, 1)
	assert.Equal(t, "user", fake.req.Messages[0].Role)
	assert.Equal(t, "user prompt", fake.req.Messages[0].Content)
	require.NotNil(t, fake.req.Temperature)
	assert.Equal(t, 0.1, *fake.req.Temperature)
}

func TestAnthropicCompleterEmptyResponse(t *testing.T) {
	c := NewAnthropic(&fakeAnthropic{resp: &anthropic.MessageResponse{}}, "m")
	_, err := c.Complete(context.Background(), "s", "u")
	assert.Error(t, err)
}

func TestAnthropicCompleterPropagatesError(t *testing.T) {
	c := NewAnthropic(&fakeAnthropic{err: eris.New("overloaded")}, "m")
	_, err := c.Complete(context.Background(), "s", "u")
	assert.ErrorContains(t, err, "overloaded")
}

func TestPerplexityCompleter(t *testing.T) {
	fake := &fakePerplexity{
		resp: &perplexity.ChatCompletionResponse{
			Choices: []perplexity.Choice{{Message: perplexity.Message{Role: "assistant", Content: `{"ok":true}`}}},
		},
	}
	c := NewPerplexity(fake, "sonar-pro")
	assert.Equal(t, "perplexity", c.Name())

	text, err := c.Complete(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, text)

	assert.Equal(t, "sonar-pro", fake.req.Model)
	require.Len(t, fake.req.Messages, 2)
	assert.Equal(t, "system", fake.req.Messages[0].Role)
	assert.Equal(t, "user", fake.req.Messages[1].Role)
}

func TestPerplexityCompleterEmptyChoices(t *testing.T) {
	c := NewPerplexity(&fakePerplexity{resp: &perplexity.ChatCompletionResponse{}}, "sonar-pro")
	_, err := c.Complete(context.Background(), "s", "u")
	assert.Error(t, err)
}
