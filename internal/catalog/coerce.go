package catalog

import (
	"math"
	"strconv"
	"strings"
)

// Number coerces a decoded JSON value the way the storefront did: numeric strings
// and booleans convert, null and empty strings are zero, anything non-finite
// yields the fallback.
func Number(value any, fallback float64) float64 {
	var n float64

	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fallback
		}
		n = parsed
	default:
		return fallback
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}

	return n
}

// optionalNumber is nil for a missing or null field.
func optionalNumber(raw map[string]any, key string) *float64 {
	value, ok := raw[key]
	if !ok || value == nil {
		return nil
	}

	n := Number(value, 0)
	return &n
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0 && !math.IsNaN(v)
	case int:
		return v != 0
	default:
		return true
	}
}

// firstTruthy returns the first value under keys that is truthy, else the last one seen.
func firstTruthy(raw map[string]any, keys ...string) any {
	var last any
	for _, key := range keys {
		value, ok := raw[key]
		if !ok {
			continue
		}
		if truthy(value) {
			return value
		}
		last = value
	}
	return last
}

func boolField(raw map[string]any, snake, camel string, fallback bool) bool {
	if value, ok := raw[snake]; ok {
		return truthy(value)
	}
	if value, ok := raw[camel]; ok && value != nil {
		return truthy(value)
	}
	return fallback
}

func stringField(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := raw[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Identifier stringifies a backend identifier. Zero values and empty strings
// yield "".
func Identifier(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == 0 || math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		if v == 0 {
			return ""
		}
		return strconv.Itoa(v)
	case int64:
		if v == 0 {
			return ""
		}
		return strconv.FormatInt(v, 10)
	case bool:
		if !v {
			return ""
		}
		return "true"
	case map[string]any:
		// extended JSON object ids
		if oid, ok := v["$oid"].(string); ok {
			return oid
		}
		return ""
	default:
		return ""
	}
}
