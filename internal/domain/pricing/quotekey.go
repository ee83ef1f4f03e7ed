package pricing

import (
	"sort"
	"strings"
)

// QuoteKey derives a deterministic identity token from an attribute map.
// Two maps with identical key/value pairs produce the same key regardless of
// insertion order or input casing. The key is an identity/dedup token only;
// it is never sent to the provider.
func QuoteKey(attrs AttributeMap) string {
	if len(attrs) == 0 {
		return ""
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, strings.ToLower(k))
	}
	sort.Strings(keys)

	// Re-look up through a lowered view so that key casing cannot leak into
	// the output
	lowered := make(map[string]string, len(attrs))
	for k, v := range attrs {
		lowered[strings.ToLower(k)] = strings.ToLower(v)
	}

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(lowered[k])
	}
	return b.String()
}
