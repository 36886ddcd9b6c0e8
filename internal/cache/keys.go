// Package cache provides the cache-aside layer: deterministic key
// generation and key-value stores with TTL and wildcard invalidation.
package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// KeySeparator joins the resource label and the serialized query.
// It must not appear inside resource labels.
const KeySeparator = "|"

// BuildKey derives a cache key from a resource label and an optional
// query. Identical queries produce identical keys regardless of map
// iteration order; nested maps are serialized with the same rule.
// The separator is always present, even with an empty query, so every
// key under a label matches the label's invalidation pattern
// "<label>|*". Query keys and values are percent-escaped: the
// structural '&', '=', '{' and '}' can only come from the serializer,
// never from request strings. The function is pure: no I/O, no shared
// state.
func BuildKey(resource string, query map[string]any) string {
	var b strings.Builder
	b.WriteString(resource)
	b.WriteString(KeySeparator)
	writeQuery(&b, query)
	return b.String()
}

func writeQuery(b *strings.Builder, query map[string]any) {
	keys := make([]string, 0, len(query))
	for k, v := range query {
		if v == nil {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		writeValue(b, query[k])
	}
}

func writeValue(b *strings.Builder, v any) {
	switch val := v.(type) {
	case map[string]any:
		b.WriteByte('{')
		writeQuery(b, val)
		b.WriteByte('}')
	case map[string]int:
		nested := make(map[string]any, len(val))
		for k, n := range val {
			nested[k] = n
		}
		b.WriteByte('{')
		writeQuery(b, nested)
		b.WriteByte('}')
	case []string:
		b.WriteByte('[')
		for i, s := range val {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(url.QueryEscape(s))
		}
		b.WriteByte(']')
	case string:
		b.WriteString(url.QueryEscape(val))
	default:
		fmt.Fprintf(b, "%v", val)
	}
}
