package scrape

import (
	"fmt"
	"sort"
	"strings"
)

// Schema enumerates the nested fields retained from a source record. A value
// of true keeps the field verbatim; a nested Schema recurses into it. Fields
// not listed are dropped. The allow-list is the authoritative contract for
// each tool's output shape, so shape changes are data changes, not code.
type Schema map[string]interface{}

// Pick retains only the schema-enumerated fields of v. Slices are picked
// element-wise so arrays of records keep their order.
func Pick(v interface{}, s Schema) interface{} {
	switch src := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(s))
		for field, spec := range s {
			val, ok := src[field]
			if !ok {
				continue
			}
			switch rule := spec.(type) {
			case bool:
				if rule {
					out[field] = val
				}
			case Schema:
				out[field] = Pick(val, rule)
			}
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(src))
		for _, item := range src {
			out = append(out, Pick(item, s))
		}
		return out
	default:
		return v
	}
}

// Clean prunes nil leaves, empty strings, and empty containers recursively.
func Clean(v interface{}) interface{} {
	switch src := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(src))
		for k, val := range src {
			cleaned := Clean(val)
			if cleaned == nil {
				continue
			}
			out[k] = cleaned
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(src))
		for _, item := range src {
			cleaned := Clean(item)
			if cleaned == nil {
				continue
			}
			out = append(out, cleaned)
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case string:
		if src == "" {
			return nil
		}
		return src
	case nil:
		return nil
	default:
		return v
	}
}

// Flatten rewrites arrays of scalar-leaf records into "key: value" strings so
// nested listing sections come out scalar-friendly. Containers with deeper
// structure are flattened recursively instead.
func Flatten(v interface{}) interface{} {
	switch src := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(src))
		for k, val := range src {
			out[k] = Flatten(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(src))
		for _, item := range src {
			if rec, ok := item.(map[string]interface{}); ok && isScalarRecord(rec) {
				out = append(out, formatRecord(rec))
				continue
			}
			out = append(out, Flatten(item))
		}
		return out
	default:
		return v
	}
}

// Refine is the standard post-extraction pipeline: allow-list, prune, flatten.
func Refine(v interface{}, s Schema) interface{} {
	return Flatten(Clean(Pick(v, s)))
}

func isScalarRecord(m map[string]interface{}) bool {
	for _, v := range m {
		switch v.(type) {
		case map[string]interface{}, []interface{}:
			return false
		}
	}
	return true
}

// formatRecord renders a flat record as "key: value" pairs with sorted keys
// for deterministic output.
func formatRecord(m map[string]interface{}) string {
	keys := make([]string, 0, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, m[k]))
	}
	return strings.Join(parts, ", ")
}
