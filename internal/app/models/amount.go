package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a money value accepted from clients as a JSON number or a
// numeric string. Missing, null and unparseable input decode to zero.
type Amount float64

// UnmarshalJSON implements json.Unmarshaler
func (a *Amount) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*a = 0
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*a = 0
			return nil
		}
		raw = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*a = 0
		return nil
	}

	*a = Amount(f)
	return nil
}

// Float64 returns the amount as a float64
func (a Amount) Float64() float64 {
	return float64(a)
}
