package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

type valueKind uint8

const (
	kindNull valueKind = iota
	kindString
	kindNumber
	kindLiteral // booleans, objects, arrays
)

// Value is a snapshot field in its natural string form.
// Strings are unquoted, numbers are written in their shortest decimal form
// and null becomes "". The JSON kind it arrived with is kept for re-encoding.
type Value struct {
	text    string
	kind    valueKind
	present bool
}

// NewValue returns a present string Value.
func NewValue(text string) Value {
	return Value{text: text, kind: kindString, present: true}
}

// NewNumber returns a present numeric Value.
func NewNumber(f float64) Value {
	return Value{text: formatFloat(f), kind: kindNumber, present: true}
}

// String returns the text that is projected onto the page.
func (v Value) String() string { return v.text }

// Present reports whether the key was present in the decoded record.
func (v Value) Present() bool { return v.present }

// Float parses the value as a number.
func (v Value) Float() (float64, bool) {
	if !v.present || v.text == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	v.present = true
	switch {
	case bytes.Equal(b, []byte("null")):
		v.text, v.kind = "", kindNull
	case len(b) > 0 && b[0] == '"':
		v.kind = kindString
		return json.Unmarshal(b, &v.text)
	case len(b) > 0 && (b[0] == '-' || (b[0] >= '0' && b[0] <= '9')):
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		v.text, v.kind = formatNumber(n.String()), kindNumber
	default:
		var raw any
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		v.text, v.kind = string(b), kindLiteral
	}
	return nil
}

// MarshalJSON writes the value back with the kind it was decoded as, so a
// string "21.5" stays a string.
func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case !v.present || v.kind == kindNull:
		return []byte("null"), nil
	case v.kind == kindString:
		return json.Marshal(v.text)
	default:
		return []byte(v.text), nil
	}
}

// formatNumber normalises a JSON number literal for display: 21.50 becomes
// "21.5" and 1e2 becomes "100". Plain integers keep their digits so large
// ids survive. Literals outside float64 range are returned unchanged.
func formatNumber(lit string) string {
	if isIntegerLiteral(lit) {
		if lit == "-0" {
			return "0"
		}
		return lit
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return lit
	}
	return formatFloat(f)
}

// formatFloat renders f the way a browser prints a number: fixed notation
// between 1e-6 and 1e21, exponent form with no padded digits outside it.
func formatFloat(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := f
	if abs < 0 {
		abs = -abs
	}
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func isIntegerLiteral(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
