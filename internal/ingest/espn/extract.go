package espn

import (
	"strconv"
	"strings"
)

// Accessors over decoded JSON. Every one tolerates a missing key or a value
// of the wrong type and falls back to the zero value.

func extractString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

func extractInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		return parseInt(v)
	}
	return 0
}

func extractBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

func extractMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mapVal, ok := v.(map[string]interface{}); ok {
			return mapVal
		}
	}
	return map[string]interface{}{}
}

func extractArray(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if arrVal, ok := v.([]interface{}); ok {
			return arrVal
		}
	}
	return []interface{}{}
}

// extractOptionalInt distinguishes an absent or unparseable number from zero.
func extractOptionalInt(m map[string]interface{}, key string) *int {
	v, ok := m[key]
	if !ok {
		return nil
	}
	return parseOptionalInt(v)
}

// asMap narrows an array element; non-objects become an empty map.
func asMap(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}, false
	}
	return m, true
}

func hasKey(m map[string]interface{}, key string) bool {
	_, ok := m[key]
	return ok
}

func parseInt(v interface{}) int {
	if i := parseOptionalInt(v); i != nil {
		return *i
	}
	return 0
}

func parseOptionalInt(v interface{}) *int {
	switch val := v.(type) {
	case float64:
		i := int(val)
		return &i
	case int:
		return &val
	case string:
		s := strings.TrimSpace(val)
		if i, err := strconv.Atoi(s); err == nil {
			return &i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			i := int(f)
			return &i
		}
	}
	return nil
}

// stringify renders a stat cell the way ESPN displays it.
func stringify(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case bool:
		return strconv.FormatBool(val), true
	}
	return "", false
}

func fallbackString(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func optionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// headshotURL reads a headshot that ESPN publishes either as {href} or as a bare string.
func headshotURL(athlete map[string]interface{}) *string {
	switch h := athlete["headshot"].(type) {
	case map[string]interface{}:
		return optionalString(extractString(h, "href"))
	case string:
		return optionalString(h)
	}
	return nil
}

func athleteName(athlete map[string]interface{}) string {
	return fallbackString(
		extractString(athlete, "displayName"),
		extractString(athlete, "fullName"),
		extractString(athlete, "shortName"),
	)
}
