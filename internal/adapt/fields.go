package adapt

// Field accessors over loosely typed payload maps. Each accessor takes
// the keys to try in order, so a strategy can accept both the provider
// spelling and the internal one (`callId` before `id`).

// Str returns the first present string value among keys.
func Str(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := m[key].(string); ok {
			return value
		}
	}
	return ""
}

// Map returns the first present map value among keys.
func Map(m map[string]any, keys ...string) map[string]any {
	for _, key := range keys {
		if value, ok := m[key].(map[string]any); ok {
			return value
		}
	}
	return nil
}

// Slice returns the first present slice value among keys.
func Slice(m map[string]any, keys ...string) []any {
	for _, key := range keys {
		if value, ok := m[key].([]any); ok {
			return value
		}
	}
	return nil
}

// Bool returns the first present bool value among keys.
func Bool(m map[string]any, keys ...string) bool {
	for _, key := range keys {
		if value, ok := m[key].(bool); ok {
			return value
		}
	}
	return false
}

// Int returns the first present integral value among keys. JSON numbers
// decode as float64, so both representations are accepted.
func Int(m map[string]any, keys ...string) int {
	for _, key := range keys {
		switch value := m[key].(type) {
		case int:
			return value
		case float64:
			return int(value)
		}
	}
	return 0
}
