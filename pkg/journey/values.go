package journey

import (
	"strconv"
	"strings"
	"time"
)

// Itinerary is one upstream journey decoded into generic JSON values. The
// trip planner's payload shapes vary between legs and releases, so the
// normalizer probes it through accessors instead of fixed structs.
type Itinerary map[string]any

// Accessor extracts a value from a generic JSON object, returning nil when
// the path is absent.
type Accessor func(obj map[string]any) any

// Path builds an Accessor that walks object keys (string) and array
// indexes (int, negative counts from the end).
func Path(elems ...any) Accessor {
	return func(obj map[string]any) any {
		return walk(obj, elems...)
	}
}

func walk(v any, elems ...any) any {
	cur := v
	for _, e := range elems {
		switch key := e.(type) {
		case string:
			m, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			cur = m[key]
		case int:
			arr, ok := cur.([]any)
			if !ok || len(arr) == 0 {
				return nil
			}
			idx := key
			if idx < 0 {
				idx = len(arr) + idx
			}
			if idx < 0 || idx >= len(arr) {
				return nil
			}
			cur = arr[idx]
		default:
			return nil
		}
		if cur == nil {
			return nil
		}
	}
	return cur
}

// present mirrors the upstream's notion of a usable value: not null, not an
// empty string and not false.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	}
	return true
}

// firstPresent returns the first accessor result that is present.
func firstPresent(obj map[string]any, accessors []Accessor) any {
	for _, acc := range accessors {
		if v := acc(obj); present(v) {
			return v
		}
	}
	return nil
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

func asObject(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asTime(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
