package cli

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/rshade/carbonfocus/internal/config"
)

// validateOutputFormat rejects formats other than table, json and ndjson.
func validateOutputFormat(format string) error {
	switch format {
	case config.FormatTable, config.FormatJSON, config.FormatNDJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want %s, %s or %s)",
			format, config.FormatTable, config.FormatJSON, config.FormatNDJSON)
	}
}

// resolveOutputFormat returns the flag value when set, else the configured default.
func resolveOutputFormat(flagValue string, changed bool) string {
	if changed && flagValue != "" {
		return flagValue
	}
	return config.GetDefaultOutputFormat()
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeNDJSON writes v as a single JSON line.
func writeNDJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}
