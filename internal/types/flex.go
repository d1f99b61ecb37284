package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Seconds decodes from a JSON number, a numeric string, or a clock string
// such as "1:05" or "01:02:03".
type Seconds float64

func (s *Seconds) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return fmt.Errorf("seconds: missing value")
	}
	if b[0] != '"' {
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return fmt.Errorf("seconds: %w", err)
		}
		if !finite(f) {
			return fmt.Errorf("seconds: %v is not a finite number", f)
		}
		*s = Seconds(f)
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	v, err := ParseSeconds(str)
	if err != nil {
		return err
	}
	*s = Seconds(v)
	return nil
}

// ParseSeconds accepts "12.5", "12.5s", "1:05" and "1:02:03".
func ParseSeconds(str string) (float64, error) {
	str = strings.TrimSuffix(strings.TrimSpace(str), "s")
	if str == "" {
		return 0, fmt.Errorf("seconds: empty value")
	}
	if !strings.Contains(str, ":") {
		f, err := strconv.ParseFloat(str, 64)
		if err != nil || !finite(f) {
			return 0, fmt.Errorf("seconds: %q is not a number", str)
		}
		return f, nil
	}
	parts := strings.Split(str, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("seconds: %q is not a clock value", str)
	}
	total := 0.0
	for _, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil || f < 0 || !finite(f) {
			return 0, fmt.Errorf("seconds: %q is not a clock value", str)
		}
		total = total*60 + f
	}
	return total, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// StringList decodes from an array (non-string items are skipped), a single
// string, or null.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*l = nil
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = StringList{s}
		return nil
	}
	var raw []any
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("string list: %w", err)
	}
	out := make(StringList, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}
