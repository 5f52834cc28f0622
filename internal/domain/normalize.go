package domain

import "strings"

const (
	modelsPrefix = "models/"
	qwenPrefix   = "qwen/qwen"
)

// anthropicTiers are the Claude tiers whose legacy "claude-<tier>-<major>-<minor>"
// spelling is rewritten to "claude-<major>.<minor>-<tier>".
//
//nolint:gochecknoglobals // Read-only lookup set
var anthropicTiers = map[string]bool{
	"haiku":  true,
	"sonnet": true,
	"opus":   true,
}

// NormalizeModelName maps a vendor-supplied model identifier onto the
// canonical key space of the price table.
//
// Steps, in order: lowercase, strip "models/", collapse "qwen/qwen" to "qwen",
// strip one trailing date suffix (-YYYY-MM-DD, -YYYYMMDD or -YYMM), and
// reorder Anthropic tier names (claude-haiku-4-5 -> claude-4.5-haiku).
//
// Known limitation: the -YYMM rule also strips any trailing 4-digit token,
// including ones that are version numbers rather than dates.
func NormalizeModelName(name string) string {
	normalized := strings.ToLower(name)

	normalized = strings.TrimPrefix(normalized, modelsPrefix)

	if strings.HasPrefix(normalized, qwenPrefix) {
		normalized = "qwen" + normalized[len(qwenPrefix):]
	}

	normalized = stripDateSuffix(normalized)

	return reorderAnthropicTier(normalized)
}

// stripDateSuffix removes at most one trailing date suffix.
func stripDateSuffix(name string) string {
	// -YYYY-MM-DD
	if n := len(name); n >= 11 &&
		name[n-11] == '-' && allDigits(name[n-10:n-6]) &&
		name[n-6] == '-' && allDigits(name[n-5:n-3]) &&
		name[n-3] == '-' && allDigits(name[n-2:]) {
		return name[:n-11]
	}

	// -YYYYMMDD
	if n := len(name); n >= 9 && name[n-9] == '-' && allDigits(name[n-8:]) {
		return name[:n-9]
	}

	// -YYMM
	if n := len(name); n >= 5 && name[n-5] == '-' && allDigits(name[n-4:]) {
		return name[:n-5]
	}

	return name
}

func reorderAnthropicTier(name string) string {
	parts := strings.Split(name, "-")
	if len(parts) != 4 || parts[0] != "claude" {
		return name
	}

	tier, major, minor := parts[1], parts[2], parts[3]
	if !anthropicTiers[tier] || !allDigits(major) || !allDigits(minor) {
		return name
	}

	return "claude-" + major + "." + minor + "-" + tier
}

// allDigits reports whether s is a non-empty run of ASCII digits.
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
