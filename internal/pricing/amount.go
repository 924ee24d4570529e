package pricing

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a numeric form field. It decodes from JSON numbers, numeric
// strings, empty strings and null; anything that is not a finite number
// becomes 0 so that computation never fails on malformed input.
type Amount float64

// Float returns the value as float64.
func (a Amount) Float() float64 { return float64(a) }

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*a = ParseAmount(s)
		return nil
	}
	*a = ParseAmount(string(data))
	return nil
}

// ParseAmount converts free text to an Amount, returning 0 for anything
// that is not a finite number. A comma is accepted as decimal separator.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return Amount(f)
}
