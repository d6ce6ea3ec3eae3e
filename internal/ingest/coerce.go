// Package ingest is the parse boundary between loosely typed stored
// documents and the fully defaulted domain records the engine works on.
package ingest

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Doc is a raw stored document as decoded from JSON.
type Doc map[string]any

// Amount reads a non-negative finite number. Anything else is 0.
func Amount(v any) float64 {
	f, ok := number(v)
	if !ok || f < 0 {
		return 0
	}
	return f
}

// OptionalAmount is like Amount but reports absence (nil, missing, empty
// string) as nil so callers can apply their own default.
func OptionalAmount(v any) *float64 {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return nil
	}
	f := Amount(v)
	return &f
}

func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", ".")
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Text reads a string field, trimming whitespace. Numbers are formatted.
func Text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}

// Timestamp accepts RFC 3339 strings, time.Time values, epoch
// milliseconds and Firestore {seconds, nanoseconds} maps. Unparsable
// values are nil.
func Timestamp(v any) *time.Time {
	switch t := v.(type) {
	case map[string]any:
		return firestoreTime(t)
	case Doc:
		return firestoreTime(t)
	case time.Time:
		if t.IsZero() {
			return nil
		}
		return &t
	case *time.Time:
		return t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
			if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return &parsed
			}
		}
		return nil
	default:
		ms, ok := number(v)
		if !ok || ms <= 0 {
			return nil
		}
		parsed := time.UnixMilli(int64(ms))
		return &parsed
	}
}

// firestoreTime reads the exported timestamp shapes {"seconds", "nanoseconds"}
// and {"_seconds", "_nanoseconds"}.
func firestoreTime(m map[string]any) *time.Time {
	sec, ok := number(firstOf(m, "seconds", "_seconds"))
	if !ok || sec <= 0 {
		return nil
	}
	nanos, ok := number(firstOf(m, "nanoseconds", "_nanoseconds", "nanos"))
	if !ok || nanos < 0 || nanos >= 1e9 {
		nanos = 0
	}
	parsed := time.Unix(int64(sec), int64(nanos))
	return &parsed
}

func firstOf(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// Bool accepts booleans and "true"/"1" strings.
func Bool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	default:
		f, ok := number(v)
		return ok && f != 0
	}
}
