package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Num is a float64 that coerces instead of failing: missing, null or
// non-numeric JSON input decodes to zero so arithmetic downstream never sees
// a non-number and malformed input is never surfaced as an error.
type Num float64

func (n *Num) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = Num(f)
		return nil
	}
	// quoted numbers ("2", "2,5") still count; anything else is zero
	var q string
	if err := json.Unmarshal(b, &q); err == nil {
		q = strings.ReplaceAll(strings.TrimSpace(q), ",", ".")
		if f, err := strconv.ParseFloat(q, 64); err == nil {
			*n = Num(f)
			return nil
		}
	}
	*n = 0
	return nil
}

// ParseNum coerces a form value to Num with the same rules as JSON decoding.
func ParseNum(s string) Num {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return Num(f)
}
