package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// priceRule is one encoding a stored price may use. resolve reports false when
// the document does not carry the price in that encoding.
type priceRule struct {
	name    string
	resolve func(doc map[string]interface{}) (float64, bool)
}

// priceRules are tried in order; the first one producing a finite number wins.
var priceRules = []priceRule{
	{name: "price", resolve: func(doc map[string]interface{}) (float64, bool) { return number(doc["price"]) }},
	{name: "Price", resolve: func(doc map[string]interface{}) (float64, bool) { return number(doc["Price"]) }},
	{name: "Price.wrapped", resolve: wrappedIntPrice},
	{name: "Price.string", resolve: stringPrice},
}

// Price resolves the price of a listing or order document. Documents matching
// no rule price at 0. Negative prices are clamped to 0.
func Price(doc map[string]interface{}) float64 {
	v, _ := resolvePrice(doc)
	return v
}

// resolvePrice also returns the name of the rule that matched, or "" when the
// default applied.
func resolvePrice(doc map[string]interface{}) (float64, string) {
	for _, rule := range priceRules {
		if v, ok := rule.resolve(doc); ok {
			if v < 0 {
				v = 0
			}
			return v, rule.name
		}
	}
	return 0, ""
}

// wrappedIntPrice handles {"Price": {"$numberInt": "42"}} and {"Price": {"value": 42}}.
func wrappedIntPrice(doc map[string]interface{}) (float64, bool) {
	m, ok := doc["Price"].(map[string]interface{})
	if !ok {
		return 0, false
	}
	for _, key := range []string{"$numberInt", "value"} {
		raw, present := m[key]
		if !present {
			continue
		}
		if n, ok := integer(raw); ok {
			return float64(n), true
		}
	}
	return 0, false
}

// stringPrice handles {"Price": "19.99"}.
func stringPrice(doc map[string]interface{}) (float64, bool) {
	s, ok := doc["Price"].(string)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !finite(f) {
		return 0, false
	}
	return f, true
}

// number accepts Go numeric types only. Strings are not numbers here.
func number(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case float32:
		f = float64(n)
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if !finite(f) {
		return 0, false
	}
	return f, true
}

// int64Bound is 2^63. It is exact as a float64, unlike math.MaxInt64.
const int64Bound = 1 << 63

// integer parses v the way a lenient integer parser would: numbers are
// truncated, strings contribute their leading integer prefix ("42.7" is 42).
// Numbers outside the int64 range do not parse.
func integer(v interface{}) (int64, bool) {
	if f, ok := number(v); ok {
		t := math.Trunc(f)
		if t < -int64Bound || t >= int64Bound {
			return 0, false
		}
		return int64(t), true
	}
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	return leadingInt(strings.TrimSpace(s))
}

func leadingInt(s string) (int64, bool) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
