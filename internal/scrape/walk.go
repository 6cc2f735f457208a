package scrape

// dig walks a path of map keys (string) and slice indexes (int) through a
// decoded object graph. Any missing or mistyped step yields (nil, false);
// navigation never panics because the upstream shape is not under our control.
func dig(v interface{}, path ...interface{}) (interface{}, bool) {
	cur := v
	for _, step := range path {
		switch key := step.(type) {
		case string:
			m, ok := cur.(map[string]interface{})
			if !ok {
				return nil, false
			}
			cur, ok = m[key]
			if !ok {
				return nil, false
			}
		case int:
			s, ok := cur.([]interface{})
			if !ok || key < 0 || key >= len(s) {
				return nil, false
			}
			cur = s[key]
		default:
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// digMap is dig constrained to a map result.
func digMap(v interface{}, path ...interface{}) (map[string]interface{}, bool) {
	out, ok := dig(v, path...)
	if !ok {
		return nil, false
	}
	m, ok := out.(map[string]interface{})
	return m, ok
}

// digSlice is dig constrained to a slice result.
func digSlice(v interface{}, path ...interface{}) ([]interface{}, bool) {
	out, ok := dig(v, path...)
	if !ok {
		return nil, false
	}
	s, ok := out.([]interface{})
	return s, ok
}

// digString is dig constrained to a non-empty string result.
func digString(v interface{}, path ...interface{}) (string, bool) {
	out, ok := dig(v, path...)
	if !ok {
		return "", false
	}
	s, ok := out.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
