// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a tree model for JSON values, a recursive-descent parser
// that constructs trees from JSON source, and a printer that renders trees
// back to text.
package ast

import (
	"fmt"

	"github.com/creachadair/jvalue"
)

// A Value is an arbitrary JSON value.  The concrete type is one of Object,
// Array, String, Number, Bool, or the type of Null, and is fixed when the
// value is constructed.
type Value interface {
	// Kind reports the kind of the value.
	Kind() jvalue.Kind

	// JSON renders the value as single-line JSON text.
	JSON() string

	String() string
}

// An Object is an ordered collection of key-value members. Keys need not be
// unique; members are kept in the order they were parsed.
type Object []*Member

func (Object) Kind() jvalue.Kind { return jvalue.KindObject }

func (o Object) JSON() string { return string(appendJSON(nil, o, false)) }

func (o Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o)) }

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// FindAll returns all the members of o with the given key, in order.
func (o Object) FindAll(key string) []*Member {
	var out []*Member
	for _, m := range o {
		if m.Key == key {
			out = append(out, m)
		}
	}
	return out
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

func (m *Member) JSON() string { return string(appendMember(nil, m, false)) }

func (m *Member) String() string { return fmt.Sprintf("Member(key=%q)", m.Key) }

// Field constructs an object member with the given key and value.
// The value must be a type accepted by ToValue.
func Field(key string, value any) *Member {
	return &Member{Key: key, Value: ToValue(value)}
}

// An Array is an ordered sequence of values.
type Array []Value

func (Array) Kind() jvalue.Kind { return jvalue.KindArray }

func (a Array) JSON() string { return string(appendJSON(nil, a, false)) }

func (a Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a)) }

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

// A String is a string value. Its contents are stored decoded.
type String string

func (String) Kind() jvalue.Kind { return jvalue.KindString }

func (s String) JSON() string { return `"` + string(s) + `"` }

func (s String) String() string { return string(s) }

// A Bool is a Boolean constant, true or false.
type Bool bool

func (Bool) Kind() jvalue.Kind { return jvalue.KindBool }

func (b Bool) JSON() string { return b.String() }

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// A Number is an integer or floating-point value.
type Number struct{ jvalue.Number }

// Int returns an integer Number with value z.
func Int(z int64) Number { return Number{jvalue.Int(z)} }

// Float returns a floating-point Number with value f.
func Float(f float64) Number { return Number{jvalue.Float(f)} }

func (Number) Kind() jvalue.Kind { return jvalue.KindNumber }

func (n Number) JSON() string { return string(appendNumber(nil, n)) }

type nullValue struct{}

func (nullValue) Kind() jvalue.Kind { return jvalue.KindNull }
func (nullValue) JSON() string      { return "null" }
func (nullValue) String() string    { return "null" }

// Null is the null constant.
var Null Value = nullValue{}

// ToValue converts a string, integer, float, bool, nil, jvalue.Number,
// []any, or Value into a Value. It panics if v does not have one of those
// types.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case Value:
		return t
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case jvalue.Number:
		return Number{t}
	case []any:
		out := make(Array, len(t))
		for i, elt := range t {
			out[i] = ToValue(elt)
		}
		return out
	default:
		panic(fmt.Sprintf("invalid value %T", v))
	}
}

// ArrayOf constructs an array of values accepted by ToValue.
func ArrayOf[T any](vs ...T) Array {
	out := make(Array, len(vs))
	for i, v := range vs {
		out[i] = ToValue(v)
	}
	return out
}

// Equal reports whether a and b are structurally equal: they have the same
// kind, numbers have the same integer or floating-point representation and
// value, and objects have the same members in the same order.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch t := a.(type) {
	case Object:
		u, ok := b.(Object)
		if !ok || len(t) != len(u) {
			return false
		}
		for i, m := range t {
			if m.Key != u[i].Key || !Equal(m.Value, u[i].Value) {
				return false
			}
		}
		return true
	case Array:
		u, ok := b.(Array)
		if !ok || len(t) != len(u) {
			return false
		}
		for i, v := range t {
			if !Equal(v, u[i]) {
				return false
			}
		}
		return true
	case Number:
		u, ok := b.(Number)
		if !ok || t.IsInt() != u.IsInt() {
			return false
		} else if t.IsInt() {
			return t.Int64() == u.Int64()
		}
		return t.Float64() == u.Float64()
	default:
		return a == b
	}
}

// Release tears down v and every value beneath it, children before their
// containers, dropping each reference exactly once. The contents of v must
// not be used after Release returns.
func Release(v Value) {
	switch t := v.(type) {
	case Object:
		for _, m := range t {
			if m != nil {
				Release(m.Value)
				m.Value = nil
			}
		}
		clear(t)
	case Array:
		for _, elt := range t {
			Release(elt)
		}
		clear(t)
	}
}
