// Package pricedata loads the model price table.
//
// The default table is embedded into the binary. Operators can point
// PRICING_FILE at a JSON or YAML document of the same shape to replace it.
// Every top-level key is a canonical model name mapped to
// {"input": <usd per 1M>, "output": <usd per 1M>}; keys starting with an
// underscore carry provenance and are not priced.
package pricedata

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/davidbz/pricebook/internal/domain"
)

const metaKey = "_meta"

//go:embed pricing.json
var defaultPricingJSON []byte

// Format identifies the encoding of a pricing document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Config selects the pricing source.
type Config struct {
	File string `env:"PRICING_FILE"`
}

// Meta is the provenance block of a pricing document.
type Meta struct {
	Source   string `json:"source"    yaml:"source"`
	SyncedAt string `json:"synced_at" yaml:"synced_at"`
	Unit     string `json:"unit"      yaml:"unit"`
}

// Catalog is a loaded price table together with its provenance.
type Catalog struct {
	Table  *domain.PriceTable
	Meta   Meta
	Origin string
}

type rawEntry struct {
	Input  *float64 `json:"input"  yaml:"input"`
	Output *float64 `json:"output" yaml:"output"`
}

// Load returns the catalog named by cfg, or the embedded default when no file is set.
func Load(cfg *Config) (*Catalog, error) {
	if cfg == nil || cfg.File == "" {
		return LoadDefault()
	}
	return LoadFile(cfg.File)
}

// LoadDefault parses the embedded pricing document.
func LoadDefault() (*Catalog, error) {
	catalog, err := Parse(defaultPricingJSON, FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded pricing: %w", err)
	}
	catalog.Origin = "embedded"
	return catalog, nil
}

// LoadFile parses a pricing document from disk. The format follows the file extension.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing file: %w", err)
	}

	catalog, err := Parse(data, formatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pricing file %s: %w", path, err)
	}
	catalog.Origin = path
	return catalog, nil
}

// Parse decodes a pricing document.
func Parse(data []byte, format Format) (*Catalog, error) {
	var (
		entries map[string]domain.PriceEntry
		meta    Meta
		err     error
	)

	switch format {
	case FormatJSON:
		entries, meta, err = parseJSON(data)
	case FormatYAML:
		entries, meta, err = parseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported pricing format: %q", format)
	}
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, errors.New("pricing document has no models")
	}

	table, err := domain.NewPriceTable(entries)
	if err != nil {
		return nil, fmt.Errorf("invalid pricing document: %w", err)
	}

	return &Catalog{Table: table, Meta: meta}, nil
}

func parseJSON(data []byte) (map[string]domain.PriceEntry, Meta, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, Meta{}, fmt.Errorf("malformed JSON: %w", err)
	}

	var meta Meta
	entries := make(map[string]domain.PriceEntry, len(doc))

	for key, raw := range doc {
		if key == metaKey {
			if err := json.Unmarshal(raw, &meta); err != nil {
				return nil, Meta{}, fmt.Errorf("malformed %s block: %w", metaKey, err)
			}
			continue
		}
		if strings.HasPrefix(key, "_") {
			continue
		}

		var entry rawEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, Meta{}, fmt.Errorf("malformed entry for model %s: %w", key, err)
		}

		priced, err := entry.toPriceEntry(key)
		if err != nil {
			return nil, Meta{}, err
		}
		entries[key] = priced
	}

	return entries, meta, nil
}

func parseYAML(data []byte) (map[string]domain.PriceEntry, Meta, error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, Meta{}, fmt.Errorf("malformed YAML: %w", err)
	}

	var meta Meta
	entries := make(map[string]domain.PriceEntry, len(doc))

	for key, node := range doc {
		if key == metaKey {
			if err := node.Decode(&meta); err != nil {
				return nil, Meta{}, fmt.Errorf("malformed %s block: %w", metaKey, err)
			}
			continue
		}
		if strings.HasPrefix(key, "_") {
			continue
		}

		var entry rawEntry
		if err := node.Decode(&entry); err != nil {
			return nil, Meta{}, fmt.Errorf("malformed entry for model %s: %w", key, err)
		}

		priced, err := entry.toPriceEntry(key)
		if err != nil {
			return nil, Meta{}, err
		}
		entries[key] = priced
	}

	return entries, meta, nil
}

func (e rawEntry) toPriceEntry(model string) (domain.PriceEntry, error) {
	if e.Input == nil || e.Output == nil {
		return domain.PriceEntry{}, fmt.Errorf("model %s must define both input and output rates", model)
	}
	return domain.PriceEntry{Input: *e.Input, Output: *e.Output}, nil
}

func formatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
