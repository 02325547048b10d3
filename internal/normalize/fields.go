package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
)

// text renders scalar values as strings. Anything else is "".
func text(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case time.Time:
		return s.UTC().Format(time.RFC3339)
	case *time.Time:
		if s == nil {
			return ""
		}
		return s.UTC().Format(time.RFC3339)
	}
	if f, ok := number(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

// firstText returns the first non-empty rendering among keys.
func firstText(doc map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s := text(doc[k]); s != "" {
			return s
		}
	}
	return ""
}

// optionalText is text that renders empty values as nil.
func optionalText(v interface{}) *string {
	s := text(v)
	if s == "" {
		return nil
	}
	return &s
}

// identifier renders document ids and references: plain strings,
// {"$oid": "..."} wrappers and Firestore document references.
func identifier(v interface{}) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case *firestore.DocumentRef:
		if id == nil {
			return ""
		}
		return id.ID
	case map[string]interface{}:
		return text(id["$oid"])
	case fmt.Stringer:
		return id.String()
	}
	return text(v)
}

var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// timestamp reads time.Time values, RFC 3339 strings, epoch milliseconds and
// {"$date": ...} wrappers.
func timestamp(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	case map[string]interface{}:
		if inner, ok := t["$date"]; ok {
			return timestamp(inner)
		}
		if inner, ok := t["$numberLong"]; ok {
			if ms, ok := integer(inner); ok {
				return time.UnixMilli(ms).UTC(), true
			}
		}
		return time.Time{}, false
	}
	if ms, ok := number(v); ok {
		return time.UnixMilli(int64(ms)).UTC(), true
	}
	return time.Time{}, false
}

func firstTime(doc map[string]interface{}, keys ...string) time.Time {
	for _, k := range keys {
		if t, ok := timestamp(doc[k]); ok {
			return t
		}
	}
	return time.Time{}
}
