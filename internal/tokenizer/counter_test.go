package tokenizer //nolint:testpackage // Need access to encodingForModel

import (
	"errors"
	"testing"

	"github.com/pkoukk/tiktoken-go"
	"github.com/stretchr/testify/require"
)

func TestEncodingForModel(t *testing.T) {
	tests := []struct {
		model    string
		expected string
	}{
		{model: "gpt-4o", expected: encodingO200k},
		{model: "gpt-4o-mini-2024-07-18", expected: encodingO200k},
		{model: "GPT-4.1", expected: encodingO200k},
		{model: "gpt-5-mini", expected: encodingO200k},
		{model: "o3-mini", expected: encodingO200k},
		{model: "gpt-4-0613", expected: encodingCL100k},
		{model: "gpt-3.5-turbo", expected: encodingCL100k},
		{model: "text-embedding-3-small", expected: encodingCL100k},
		{model: "claude-4.5-sonnet", expected: ""},
		{model: "mistral-large", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			require.Equal(t, tt.expected, encodingForModel(tt.model))
		})
	}
}

func TestCounter_CountText_UnknownModel(t *testing.T) {
	counter := NewCounter()

	// len("Hello world this is a test") / 4 = 26/4 = 6
	require.Equal(t, 6, counter.CountText("unknown-model", "Hello world this is a test"))
	require.Equal(t, 0, counter.CountText("unknown-model", ""))
}

func TestCounter_CountText_LoadFailureIsCached(t *testing.T) {
	loads := 0
	counter := newCounterWithLoader(func(name string) (*tiktoken.Tiktoken, error) {
		loads++
		require.Equal(t, encodingO200k, name)
		return nil, errors.New("network unreachable")
	})

	for range 5 {
		require.Equal(t, 6, counter.CountText("gpt-4o", "Hello world this is a test"))
	}
	require.Equal(t, 1, loads)

	// Another model on the same encoding reuses the cached failure.
	require.Equal(t, 2, counter.CountText("gpt-5-mini", "12345678"))
	require.Equal(t, 1, loads)
}

func TestCounter_CountText_KnownModel(t *testing.T) {
	if testing.Short() {
		t.Skip("tiktoken may download encoding files")
	}

	counter := NewCounter()

	tokens := counter.CountText("gpt-4o", "Hello, how are you today?")
	require.Positive(t, tokens)
	require.Less(t, tokens, 20)

	// Second call is served from the cached encoding.
	require.Equal(t, tokens, counter.CountText("gpt-4o-2024-08-06", "Hello, how are you today?"))
}
