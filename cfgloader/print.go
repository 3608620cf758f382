package cfgloader

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/rise-and-shine/catalog/mask"
)

func printConfig(config any) {
	fmt.Print(formatConfig(config))
}

// formatConfig renders config as one "key: value" line per leaf, secrets masked.
func formatConfig(config any) string {
	om := mask.StructToOrdMap(config)
	if om == nil {
		slog.Warn("[cfgloader]: nothing to print")
		return ""
	}

	var b strings.Builder
	b.WriteString("Loaded config:\n")
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		fmt.Fprintf(&b, "  %s: %v\n", pair.Key, pair.Value)
	}
	return b.String()
}
