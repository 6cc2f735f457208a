package stays

import (
	"net/url"
	"regexp"
	"strconv"
)

// GetString extracts string from params with validation
func GetString(params map[string]interface{}, key string) (string, bool) {
	val, ok := params[key].(string)
	if !ok {
		return "", false
	}
	return val, true
}

// GetBool extracts bool from params with default
func GetBool(params map[string]interface{}, key string, defaultVal bool) bool {
	val, ok := params[key].(bool)
	if !ok {
		return defaultVal
	}
	return val
}

// GetInt coerces an integer-valued param. JSON numbers arrive as float64;
// numeric strings are accepted too.
func GetInt(params map[string]interface{}, key string) (int, bool) {
	switch v := params[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// guests holds coerced guest counts for a derived request.
type guests struct {
	adults   int
	children int
	infants  int
	pets     int
}

func guestsFrom(params map[string]interface{}) guests {
	g := guests{}
	g.adults, _ = GetInt(params, "adults")
	g.children, _ = GetInt(params, "children")
	g.infants, _ = GetInt(params, "infants")
	g.pets, _ = GetInt(params, "pets")
	return g
}

// apply adds guest params to a query. When the summed adult and child count
// is zero the params are omitted entirely, not sent as zeros.
func (g guests) apply(q url.Values) {
	if g.adults+g.children == 0 {
		return
	}
	q.Set("adults", strconv.Itoa(g.adults))
	q.Set("children", strconv.Itoa(g.children))
	if g.infants > 0 {
		q.Set("infants", strconv.Itoa(g.infants))
	}
	if g.pets > 0 {
		q.Set("pets", strconv.Itoa(g.pets))
	}
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func validDate(s string) bool {
	return datePattern.MatchString(s)
}
