package normalize

import (
	"bytes"
	jsonEncoding "encoding/json"
	"strings"

	"bitbucket.org/crgw/travel-planner/internal/schema"
	"github.com/spf13/cast"
)

// object decodes one inventory element, numbers are kept as written.
func object(raw jsonEncoding.RawMessage) (map[string]any, bool) {
	decoder := jsonEncoding.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, false
	}

	element, ok := value.(map[string]any)

	return element, ok
}

// lookup walks nested objects by key, any absent or mistyped step yields nil.
func lookup(value any, path ...string) any {
	for _, key := range path {
		node, ok := value.(map[string]any)
		if !ok {
			return nil
		}

		value = node[key]
	}

	return value
}

// text renders a scalar at path, or schema.NotAvailable.
func text(value any, path ...string) string {
	found := lookup(value, path...)
	switch v := found.(type) {
	case nil, map[string]any, []any:
		return schema.NotAvailable
	case jsonEncoding.Number:
		return v.String()
	}

	rendered, err := cast.ToStringE(found)
	if err != nil || strings.TrimSpace(rendered) == "" {
		return schema.NotAvailable
	}

	return rendered
}

// firstText returns the first available text of the given paths.
func firstText(value any, paths ...[]string) string {
	for _, path := range paths {
		if found := text(value, path...); found != schema.NotAvailable {
			return found
		}
	}

	return schema.NotAvailable
}

func list(value any, path ...string) []any {
	items, err := cast.ToSliceE(lookup(value, path...))
	if err != nil {
		return nil
	}

	return items
}
