package threat

import (
	"encoding/json"
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// TokenEncoding is the tiktoken encoding used to size agent responses.
const TokenEncoding = "cl100k_base"

// TokenCounter sizes agent payloads in model tokens. A nil counter, or one
// whose encoder failed to load, approximates one token per four bytes.
type TokenCounter struct {
	encoder *tiktoken.Tiktoken
}

// NewTokenCounter loads the TokenEncoding encoder. On failure the returned
// counter is still usable and approximates.
func NewTokenCounter() (*TokenCounter, error) {
	enc, err := tiktoken.GetEncoding(TokenEncoding)
	if err != nil {
		return &TokenCounter{}, fmt.Errorf("failed to load %s encoding: %w", TokenEncoding, err)
	}
	return &TokenCounter{encoder: enc}, nil
}

// Exact reports whether counts come from the encoder
func (tc *TokenCounter) Exact() bool {
	return tc != nil && tc.encoder != nil
}

// CountTokens counts the tokens in text
func (tc *TokenCounter) CountTokens(text string) int {
	if !tc.Exact() {
		return len(text) / 4
	}
	return len(tc.encoder.Encode(text, nil, nil))
}

// CountJSON counts the tokens in the compact JSON encoding of v
func (tc *TokenCounter) CountJSON(v any) (int, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	return tc.CountTokens(string(data)), nil
}
