package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

type ValueKind int

const (
	NullKind ValueKind = iota
	NumberKind
	StringKind
)

func (kind ValueKind) String() string {
	switch kind {
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	default:
		return "null"
	}
}

// Value is a single cell. The zero Value is null.
type Value struct {
	kind ValueKind
	num  float64
	str  string
}

func Number(f float64) Value {
	return Value{kind: NumberKind, num: f}
}

func String(s string) Value {
	return Value{kind: StringKind, str: s}
}

func Null() Value {
	return Value{}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

// Float returns the numeric payload and whether v is a number.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == NumberKind
}

// Text returns the string payload and whether v is a string.
func (v Value) Text() (string, bool) {
	return v.str, v.kind == StringKind
}

// Equal is strict equality: both sides must have the same kind, numbers
// compare numerically (NaN equals nothing) and strings compare byte for byte.
func (v Value) Equal(other Value) bool {
	return v == other
}

// String formats the value the way it is shown to users.
func (v Value) String() string {
	switch v.kind {
	case NumberKind:
		return formatNumber(v.num)
	case StringKind:
		return v.str
	default:
		return "NULL"
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// nonFinite is the JSON form of numbers that have no JSON literal.
type nonFinite struct {
	Number string `json:"number"`
}

// MarshalJSON writes the plain JSON scalar. Non-finite numbers are written as
// {"number":"Infinity"}, {"number":"-Infinity"} or {"number":"NaN"}.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case NumberKind:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return json.Marshal(nonFinite{Number: formatNumber(v.num)})
		}
		return json.Marshal(v.num)
	case StringKind:
		return json.Marshal(v.str)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch typed := raw.(type) {
	case nil:
		*v = Null()
	case float64:
		*v = Number(typed)
	case string:
		*v = String(typed)
	case map[string]any:
		num, err := parseNonFinite(typed)
		if err != nil {
			return fmt.Errorf("unsupported cell value %s: %w", string(data), err)
		}
		*v = Number(num)
	default:
		return fmt.Errorf("unsupported cell value %s", string(data))
	}
	return nil
}

func parseNonFinite(object map[string]any) (float64, error) {
	text, ok := object["number"].(string)
	if !ok || len(object) != 1 {
		return 0, errors.New(`expected a single "number" field`)
	}
	switch text {
	case "Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	default:
		return 0, fmt.Errorf("unknown number %q", text)
	}
}

// Row maps column name to cell value.
type Row map[string]Value

// Clone returns a shallow copy; values are immutable so this is a full copy.
func (row Row) Clone() Row {
	clone := make(Row, len(row))
	for key, value := range row {
		clone[key] = value
	}
	return clone
}
