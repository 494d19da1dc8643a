package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/pagescan/internal/llm"
	"github.com/sells-group/pagescan/internal/model"
)

// maxPromptBody bounds how much page text goes into the extraction prompt.
const maxPromptBody = 8000

const extractSystemPrompt = `You are a direct-response copy analyst. You extract the persuasion elements of sales and marketing pages into structured JSON. Respond with a single valid JSON object and nothing else. Use empty arrays and empty strings for elements not present on the page.`

const extractUserPrompt = `Analyze this marketing page and extract its persuasion elements.

Page title: %s
Page description: %s
Page URL: %s

Page content:
%s

Return a JSON object with exactly these keys:
{
  "product_name": "<name of the product or offer>",
  "main_benefit": "<the single core promise made to the visitor>",
  "headlines": ["<up to 10 headlines and subheadlines>"],
  "testimonials": ["<up to 10 customer quotes>"],
  "pricing": ["<up to 8 prices or pricing statements>"],
  "benefits": ["<up to 20 benefit statements>"],
  "ctas": ["<up to 8 calls to action>"],
  "guarantees": ["<up to 8 guarantee or refund statements>"],
  "timeframes": ["<up to 10 promised timeframes>"],
  "social_proof": ["<up to 10 customer counts, ratings or review counts>"],
  "category": "<one of: software, physical, service, info, health>",
  "industry": "<short industry label>",
  "target_audience": "<who the page is selling to>",
  "price_point": "<one of: low, medium, high, premium>"
}`

// llmExtract builds the extraction prompt and tries each completion
// back-end in priority order; the first well-formed JSON payload wins.
// Failures are absorbed per provider and the chain falls through.
func llmExtract(ctx context.Context, completers []llm.Completer, page *model.RawPage, isAffiliatePage bool) (*model.MarketingData, error) {
	body := page.Body()
	if len(body) > maxPromptBody {
		body = body[:maxPromptBody]
	}

	user := fmt.Sprintf(extractUserPrompt,
		page.Metadata.Title,
		page.Metadata.Description,
		page.Metadata.SourceURL,
		body,
	)
	if isAffiliatePage {
		user += "\n\nThis is an affiliate bridge page: prioritize testimonials, guarantees and pricing claims."
	}

	var lastErr error
	for _, c := range completers {
		text, err := c.Complete(ctx, extractSystemPrompt, user)
		if err != nil {
			zap.L().Debug("extract: completion back-end failed, trying next",
				zap.String("provider", c.Name()),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		raw, err := parseJSONPayload(text)
		if err != nil {
			zap.L().Debug("extract: malformed completion payload, trying next",
				zap.String("provider", c.Name()),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		return coerceStructured(raw), nil
	}

	if lastErr == nil {
		lastErr = eris.New("extract: no completion back-end configured")
	}
	return nil, lastErr
}

// parseJSONPayload parses a strict-JSON completion, tolerating markdown
// code fences and leading prose around the object.
func parseJSONPayload(text string) (map[string]any, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, eris.New("extract: completion contains no JSON object")
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil, eris.Wrap(err, "extract: parse completion JSON")
	}
	return raw, nil
}
