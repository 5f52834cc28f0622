package pricedata_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/pricebook/internal/pricedata"
)

func TestLoadDefault(t *testing.T) {
	catalog, err := pricedata.LoadDefault()
	require.NoError(t, err)
	require.Equal(t, "embedded", catalog.Origin)
	require.NotEmpty(t, catalog.Meta.SyncedAt)
	require.Positive(t, catalog.Table.Len())

	_, found := catalog.Table.Lookup("_meta")
	require.False(t, found)

	for _, model := range []string{
		"gpt-5-mini",
		"gpt-5",
		"gpt-5-pro",
		"gpt-5.1",
		"claude-4.5-haiku",
		"claude-4.5-sonnet",
		"mistral-large",
		"gemini-2.5-flash",
		"qwen3-reranker-4b",
	} {
		_, found := catalog.Table.Lookup(model)
		require.True(t, found, "expected %s in embedded table", model)
	}
}

func TestParse(t *testing.T) {
	t.Run("should parse JSON and skip metadata", func(t *testing.T) {
		catalog, err := pricedata.Parse([]byte(`{
			"_meta": {"source": "test", "synced_at": "2026-01-01"},
			"_comment": "ignored",
			"model-a": {"input": 1.5, "output": 3}
		}`), pricedata.FormatJSON)
		require.NoError(t, err)
		require.Equal(t, "test", catalog.Meta.Source)
		require.Equal(t, "2026-01-01", catalog.Meta.SyncedAt)
		require.Equal(t, []string{"model-a"}, catalog.Table.Models())

		entry, found := catalog.Table.Lookup("model-a")
		require.True(t, found)
		require.InDelta(t, 1.5, entry.Input, 0.0001)
		require.InDelta(t, 3.0, entry.Output, 0.0001)
	})

	t.Run("should parse YAML", func(t *testing.T) {
		catalog, err := pricedata.Parse([]byte(`
_meta:
  source: yaml-test
model-b:
  input: 0.5
  output: 0
`), pricedata.FormatYAML)
		require.NoError(t, err)
		require.Equal(t, "yaml-test", catalog.Meta.Source)

		entry, found := catalog.Table.Lookup("model-b")
		require.True(t, found)
		require.InDelta(t, 0.5, entry.Input, 0.0001)
	})

	tests := []struct {
		name   string
		data   string
		format pricedata.Format
	}{
		{name: "malformed JSON", data: `{"model": `, format: pricedata.FormatJSON},
		{name: "non-numeric rate", data: `{"model": {"input": "cheap", "output": 1}}`, format: pricedata.FormatJSON},
		{name: "missing output rate", data: `{"model": {"input": 1}}`, format: pricedata.FormatJSON},
		{name: "negative rate", data: `{"model": {"input": -1, "output": 1}}`, format: pricedata.FormatJSON},
		{name: "only metadata", data: `{"_meta": {"source": "x"}}`, format: pricedata.FormatJSON},
		{name: "not an object", data: `[1, 2, 3]`, format: pricedata.FormatJSON},
		{name: "YAML NaN rate", data: "model:\n  input: .nan\n  output: 1\n", format: pricedata.FormatYAML},
		{name: "malformed YAML", data: "model: [unclosed", format: pricedata.FormatYAML},
		{name: "unsupported format", data: `{}`, format: pricedata.Format("toml")},
	}

	for _, tt := range tests {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			_, err := pricedata.Parse([]byte(tt.data), tt.format)
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("should use embedded table without a file", func(t *testing.T) {
		catalog, err := pricedata.Load(&pricedata.Config{})
		require.NoError(t, err)
		require.Equal(t, "embedded", catalog.Origin)
	})

	t.Run("should load YAML file by extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prices.yml")
		require.NoError(t, os.WriteFile(path, []byte("custom-model:\n  input: 9\n  output: 9\n"), 0o600))

		catalog, err := pricedata.Load(&pricedata.Config{File: path})
		require.NoError(t, err)
		require.Equal(t, path, catalog.Origin)
		require.Equal(t, []string{"custom-model"}, catalog.Table.Models())
	})

	t.Run("should load JSON file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prices.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"custom-model": {"input": 1, "output": 2}}`), 0o600))

		catalog, err := pricedata.Load(&pricedata.Config{File: path})
		require.NoError(t, err)
		require.Equal(t, 1, catalog.Table.Len())
	})

	t.Run("should fail on missing file", func(t *testing.T) {
		_, err := pricedata.Load(&pricedata.Config{File: filepath.Join(t.TempDir(), "missing.json")})
		require.Error(t, err)
	})
}
