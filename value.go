package firemodel

import (
	"cmp"
	"strconv"
	"strings"
	"time"
)

// Kind is the type held by a Value.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindTime
	KindList
)

// Value is a filter operand: a string, number, boolean, timestamp or a list
// of those. The zero Value is invalid and makes the filter using it a no-op.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	t    time.Time
	list []Value
}

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating point Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Time returns a timestamp Value.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// List returns a list Value, used by Contains.
func List(values ...Value) Value { return Value{kind: KindList, list: values} }

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// Valid reports whether v holds a value.
func (v Value) Valid() bool { return v.kind != KindInvalid }

// Native returns v as the Go value a backend query expects.
func (v Value) Native() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	case KindList:
		out := make([]any, len(v.list))
		for i, x := range v.list {
			out[i] = x.Native()
		}
		return out
	}
	return nil
}

// String returns a canonical, kind tagged representation of v. Equal values
// always render the same, so it is safe to use in listener keys.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return "s:" + strconv.Quote(v.s)
	case KindInt:
		return "i:" + strconv.FormatInt(v.i, 10)
	case KindFloat:
		return "f:" + strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return "b:" + strconv.FormatBool(v.b)
	case KindTime:
		return "t:" + v.t.UTC().Format(time.RFC3339Nano)
	case KindList:
		parts := make([]string, len(v.list))
		for i, x := range v.list {
			parts[i] = x.String()
		}
		return "l:[" + strings.Join(parts, ",") + "]"
	}
	return "invalid"
}

// Compare orders v and o. ok is false when the kinds cannot be ordered
// against each other; ints and floats compare numerically.
func (v Value) Compare(o Value) (c int, ok bool) {
	switch {
	case v.isNumber() && o.isNumber():
		if v.kind == KindInt && o.kind == KindInt {
			return cmp.Compare(v.i, o.i), true
		}
		return cmp.Compare(v.float(), o.float()), true
	case v.kind == KindString && o.kind == KindString:
		return strings.Compare(v.s, o.s), true
	case v.kind == KindTime && o.kind == KindTime:
		return v.t.Compare(o.t), true
	}
	return 0, false
}

func (v Value) isNumber() bool { return v.kind == KindInt || v.kind == KindFloat }

func (v Value) float() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}
