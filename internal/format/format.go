// Package format renders scalar and vector optics quantities as canonical,
// locale-independent strings.
package format

import (
	"math"
	"strconv"
	"strings"
)

// Placeholder is shown for any field without a current value.
const Placeholder = "N/A"

// Number is an integer or a float. Integers render without a fraction.
type Number struct {
	f     float64
	i     int64
	isInt bool
}

// Int wraps an integer.
func Int(i int) Number { return Number{i: int64(i), isInt: true} }

// Float wraps a float.
func Float(f float64) Number { return Number{f: f} }

func (n Number) IsInt() bool { return n.isInt }

func (n Number) Value() float64 {
	if n.isInt {
		return float64(n.i)
	}
	return n.f
}

func (n Number) String() string {
	if n.isInt {
		return strconv.FormatInt(n.i, 10)
	}
	v := n.f
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == 0:
		return "0.0"
	case math.Abs(v) < 0.1:
		return strconv.FormatFloat(v, 'e', 5, 64)
	default:
		return strconv.FormatFloat(v, 'f', 5, 64)
	}
}

// Value is a single number or an ordered list of numbers.
type Value struct {
	nums []Number
}

// Scalar wraps one float.
func Scalar(f float64) Value { return Value{nums: []Number{Float(f)}} }

// Integer wraps one int.
func Integer(i int) Value { return Value{nums: []Number{Int(i)}} }

// Floats builds a list value.
func Floats(fs ...float64) Value {
	nums := make([]Number, len(fs))
	for i, f := range fs {
		nums[i] = Float(f)
	}
	return Value{nums: nums}
}

// Ints builds a list value of integers.
func Ints(is ...int) Value {
	nums := make([]Number, len(is))
	for i, n := range is {
		nums[i] = Int(n)
	}
	return Value{nums: nums}
}

// Numbers returns the underlying numbers.
func (v Value) Numbers() []Number { return v.nums }

// String renders a single number bare and anything else as "[a, b, ...]".
// A one-element list renders bare as well.
func (v Value) String() string {
	if len(v.nums) == 1 {
		return v.nums[0].String()
	}
	parts := make([]string, len(v.nums))
	for i, n := range v.nums {
		parts[i] = n.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Field is a named value in display order.
type Field struct {
	Name  string
	Value Value
}

// Row is a rendered field.
type Row struct {
	Name string `json:"name" msgpack:"name"`
	Text string `json:"text" msgpack:"text"`
}

// Rows renders fields in order.
func Rows(fields []Field) []Row {
	rows := make([]Row, len(fields))
	for i, f := range fields {
		rows[i] = Row{Name: f.Name, Text: f.Value.String()}
	}
	return rows
}

// Placeholders returns one placeholder row per name.
func Placeholders(names []string) []Row {
	rows := make([]Row, len(names))
	for i, n := range names {
		rows[i] = Row{Name: n, Text: Placeholder}
	}
	return rows
}

// Map converts rows into a name to text mapping.
func Map(rows []Row) map[string]string {
	m := make(map[string]string, len(rows))
	for _, r := range rows {
		m[r.Name] = r.Text
	}
	return m
}
