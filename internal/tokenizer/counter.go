package tokenizer

import (
	"context"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/davidbz/pricebook/internal/domain"
	"github.com/davidbz/pricebook/internal/observability"
)

const (
	encodingO200k  = "o200k_base"
	encodingCL100k = "cl100k_base"

	fallbackCharsPerToken = 4
)

type prefixEncoding struct {
	prefix   string
	encoding string
}

// modelEncodings maps normalized model prefixes to tiktoken encodings.
// Longer prefixes come first so gpt-4o wins over gpt-4.
var modelEncodings = []prefixEncoding{
	{prefix: "gpt-4o", encoding: encodingO200k},
	{prefix: "gpt-4.1", encoding: encodingO200k},
	{prefix: "gpt-4.5", encoding: encodingO200k},
	{prefix: "gpt-5", encoding: encodingO200k},
	{prefix: "o1", encoding: encodingO200k},
	{prefix: "o3", encoding: encodingO200k},
	{prefix: "o4", encoding: encodingO200k},
	{prefix: "gpt-4", encoding: encodingCL100k},
	{prefix: "gpt-3.5", encoding: encodingCL100k},
	{prefix: "text-embedding-3", encoding: encodingCL100k},
	{prefix: "text-embedding-ada", encoding: encodingCL100k},
}

type encodingLoader func(name string) (*tiktoken.Tiktoken, error)

// Counter estimates token counts for text before it is sent to a model.
// An encoding that fails to load is cached as nil and never retried.
type Counter struct {
	mu        sync.RWMutex
	encodings map[string]*tiktoken.Tiktoken
	load      encodingLoader
}

// NewCounter creates a new token counter.
func NewCounter() *Counter {
	return newCounterWithLoader(tiktoken.GetEncoding)
}

func newCounterWithLoader(load encodingLoader) *Counter {
	return &Counter{
		encodings: make(map[string]*tiktoken.Tiktoken),
		load:      load,
	}
}

func encodingForModel(model string) string {
	normalized := domain.NormalizeModelName(model)
	for _, candidate := range modelEncodings {
		if strings.HasPrefix(normalized, candidate.prefix) {
			return candidate.encoding
		}
	}
	return ""
}

func (c *Counter) getEncoding(model string) *tiktoken.Tiktoken {
	encName := encodingForModel(model)
	if encName == "" {
		return nil
	}

	c.mu.RLock()
	enc, ok := c.encodings[encName]
	c.mu.RUnlock()
	if ok {
		return enc
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if enc, ok := c.encodings[encName]; ok {
		return enc
	}

	enc, err := c.load(encName)
	if err != nil {
		observability.FromContext(context.Background()).Warn("failed to load encoding, using character estimate",
			observability.String("encoding", encName),
			observability.Error(err))
		enc = nil
	}
	c.encodings[encName] = enc
	return enc
}

// CountText estimates the token count for text.
// Models without a known encoding fall back to len(text)/4.
func (c *Counter) CountText(model string, text string) int {
	enc := c.getEncoding(model)
	if enc == nil {
		return len(text) / fallbackCharsPerToken
	}
	return len(enc.Encode(text, nil, nil))
}
