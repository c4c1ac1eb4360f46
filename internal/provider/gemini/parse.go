package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// decodeModelJSON turns raw model output into valid JSON. Even with a
// response schema attached the model occasionally wraps its reply in a
// Markdown fence or emits slightly broken JSON, so the text is unfenced and,
// if still unparseable, run through jsonrepair before giving up.
func decodeModelJSON(text string) (json.RawMessage, error) {
	text = stripFence(text)

	var probe any
	if json.Unmarshal([]byte(text), &probe) == nil {
		return json.RawMessage(text), nil
	}

	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return nil, fmt.Errorf("repair failed: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &probe); err != nil {
		return nil, err
	}
	return json.RawMessage(repaired), nil
}

// stripFence removes a surrounding Markdown code fence and its optional
// language tag.
func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		first := strings.TrimSpace(text[:idx])
		// A bare language tag like "json" sits alone on the fence line.
		if first == "" || !strings.ContainsAny(first, "{[") {
			text = text[idx+1:]
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
