package critic

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"sublint/internal/review"
)

// decodeReviews interprets the model's JSON payload. Accepted shapes are a
// bare array of result objects or a wrapper object holding the array under
// "reviews". Any other valid JSON yields an empty batch; unparseable
// content is an error so the caller can log it as a parse failure.
func decodeReviews(content string) ([]review.RawResult, error) {
	trimmed := sanitizePayload(content)
	if trimmed == "" {
		return nil, errors.New("critic: empty review payload")
	}

	var results []review.RawResult
	if err := json.Unmarshal([]byte(trimmed), &results); err == nil {
		return results, nil
	}

	var wrapper struct {
		Reviews []review.RawResult `json:"reviews"`
	}
	if err := json.Unmarshal([]byte(trimmed), &wrapper); err == nil {
		return wrapper.Reviews, nil
	}

	if json.Valid([]byte(trimmed)) {
		// Well-formed but unrecognized shape: treat as no results.
		return nil, nil
	}
	return nil, fmt.Errorf("critic: unparseable review payload (snippet: %s)", payloadSnippet(trimmed))
}

// sanitizePayload strips markdown code fences and leading chatter so that a
// fenced or prefixed JSON body still decodes.
func sanitizePayload(content string) string {
	trimmed := strings.TrimSpace(stripCodeFence(content))
	if trimmed == "" {
		return ""
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return trimmed
	}
	if start := strings.IndexAny(trimmed, "[{"); start >= 0 {
		closer := "]"
		if trimmed[start] == '{' {
			closer = "}"
		}
		if end := strings.LastIndex(trimmed, closer); end > start {
			return strings.TrimSpace(trimmed[start : end+1])
		}
	}
	return trimmed
}

func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	body := strings.TrimLeft(trimmed[3:], " \t\r\n")
	if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = strings.TrimLeft(body[4:], " \t\r\n")
	}
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}

func payloadSnippet(content string) string {
	clean := strings.Join(strings.Fields(content), " ")
	const limit = 160
	runes := []rune(clean)
	if len(runes) > limit {
		clean = string(runes[:limit]) + "..."
	}
	if clean == "" {
		return "<empty>"
	}
	return clean
}
