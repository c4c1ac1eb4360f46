// Package tokens provides approximate prompt token counting for budget
// enforcement before a generation call is made.
package tokens

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"
)

// Counter counts tokens with the cl100k_base encoding. Gemini does not ship
// a local tokenizer; cl100k_base tracks it closely enough for enforcing an
// upper bound on prompt size.
type Counter struct {
	codec tokenizer.Codec
}

// NewCounter initializes the tokenizer codec.
func NewCounter() (*Counter, error) {
	codec, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return nil, fmt.Errorf("failed to get tokenizer encoding: %w", err)
	}
	return &Counter{codec: codec}, nil
}

// Count returns the token count for text. On encoding failure it falls back
// to a bytes/4 estimate rather than blocking the call.
func (c *Counter) Count(text string) int {
	ids, _, err := c.codec.Encode(text)
	if err != nil {
		return len(text) / 4
	}
	return len(ids)
}
