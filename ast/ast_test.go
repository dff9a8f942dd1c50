// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/creachadair/jvalue"
	"github.com/creachadair/jvalue/ast"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

func TestString(t *testing.T) {
	tests := []struct {
		input ast.Value
		want  string
	}{
		{ast.Null, "null"},

		{ast.Bool(false), "false"},
		{ast.Bool(true), "true"},

		{ast.String(""), `""`},
		{ast.String("a \t b"), "\"a \t b\""},
		{ast.String(`a "b"`), `"a "b""`},

		{ast.Float(-0.00239), `-0.00239`},
		{ast.Float(5), `5.0`},
		{ast.Float(-0.5), `-0.5`},
		{ast.Float(1e21), `1.0e+21`},
		{ast.Float(2.5e-8), `2.5e-08`},
		{ast.Float(math.Inf(1)), `null`},
		{ast.Float(math.NaN()), `null`},

		{ast.Int(0), `0`},
		{ast.Int(15), `15`},
		{ast.Int(-25), `-25`},
		{ast.Int(math.MinInt64), `-9223372036854775808`},

		{ast.Array{}, `[]`},
		{ast.Array{
			ast.Bool(false),
		}, `[false]`},
		{ast.Array{
			ast.Bool(true),
			ast.Int(199),
		}, `[true,199]`},
		{ast.ArrayOf("free", "your", "mind"), `["free","your","mind"]`},
		{ast.ArrayOf[any](nil, 1, 2.5, "x", false), `[null,1,2.5,"x",false]`},

		{ast.Object{}, `{}`},
		{ast.Object{
			ast.Field("xs", ast.Null),
		}, `{"xs":null}`},
		{ast.Object{
			ast.Field("name", ast.String("Dennis")),
			ast.Field("age", ast.Int(37)),
			ast.Field("isOld", ast.Bool(false)),
		}, `{"name":"Dennis","age":37,"isOld":false}`},

		{ast.Object{
			ast.Field("values", ast.Array{
				ast.Int(5),
				ast.Int(10),
				ast.Bool(true),
			}),
			ast.Field("page", ast.Object{
				ast.Field("token", ast.String("xyz-pdq-zvm")),
				ast.Field("count", ast.Int(100)),
			}),
		}, `{"values":[5,10,true],"page":{"token":"xyz-pdq-zvm","count":100}}`},
	}
	for _, test := range tests {
		got := test.input.JSON()
		if got != test.want {
			t.Errorf("Input: %+v\nGot:  %s\nWant: %s", test.input, got, test.want)
		}
		if s := ast.Serialize(test.input); s != got {
			t.Errorf("Serialize(%+v): got %s, want %s", test.input, s, got)
		}
	}
}

func TestFormatter(t *testing.T) {
	v := ast.Object{
		ast.Field("a\tb", "line\nbreak"),
		ast.Field("q", `say "hi" \o/`),
		ast.Field("n", ast.ArrayOf(1, 2)),
	}
	tests := []struct {
		name string
		f    ast.Formatter
		want string
	}{
		{"Plain", ast.Formatter{}, "{\"a\tb\":\"line\nbreak\",\"q\":\"say \"hi\" \\o/\",\"n\":[1,2]}"},
		{"Escaped", ast.Formatter{EscapeStrings: true}, `{"a\tb":"line\nbreak","q":"say \"hi\" \\o/","n":[1,2]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.f.FormatToString(v)); diff != "" {
				t.Errorf("FormatToString (-want, +got):\n%s", diff)
			}
			var buf bytes.Buffer
			if err := tc.f.Format(&buf, v); err != nil {
				t.Fatalf("Format: unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, buf.String()); diff != "" {
				t.Errorf("Format (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestFormatterEscapeAllocs(t *testing.T) {
	v := ast.Object{
		ast.Field("name", "Dennis"),
		ast.Field("tags", ast.ArrayOf("a", "b", "c")),
		ast.Field("note", "nothing to escape here"),
	}
	plain := testing.AllocsPerRun(100, func() { ast.Formatter{}.FormatToString(v) })
	esc := testing.AllocsPerRun(100, func() { ast.Formatter{EscapeStrings: true}.FormatToString(v) })
	if esc != plain {
		t.Errorf("Escaped format: got %v allocations, want %v as for plain", esc, plain)
	}
}

func TestKinds(t *testing.T) {
	tests := []struct {
		input ast.Value
		want  jvalue.Kind
	}{
		{ast.Null, jvalue.KindNull},
		{ast.Bool(true), jvalue.KindBool},
		{ast.String("x"), jvalue.KindString},
		{ast.Int(1), jvalue.KindNumber},
		{ast.Float(1), jvalue.KindNumber},
		{ast.Array{}, jvalue.KindArray},
		{ast.Object{}, jvalue.KindObject},
	}
	for _, tc := range tests {
		if got := tc.input.Kind(); got != tc.want {
			t.Errorf("Kind(%s): got %v, want %v", tc.input.JSON(), got, tc.want)
		}
	}
}

func TestEqual(t *testing.T) {
	obj := ast.Object{ast.Field("a", 1), ast.Field("b", ast.ArrayOf[any](true, "x"))}
	tests := []struct {
		a, b ast.Value
		want bool
	}{
		{nil, nil, true},
		{ast.Null, nil, false},
		{ast.Null, ast.Null, true},
		{ast.Int(5), ast.Int(5), true},
		{ast.Int(5), ast.Float(5), false},
		{ast.Float(0.5), ast.Float(0.5), true},
		{ast.String("a"), ast.String("a"), true},
		{ast.String("a"), ast.Bool(true), false},
		{obj, ast.Object{ast.Field("a", 1), ast.Field("b", ast.ArrayOf[any](true, "x"))}, true},
		{obj, ast.Object{ast.Field("b", ast.ArrayOf[any](true, "x")), ast.Field("a", 1)}, false},
		{obj, ast.Object{ast.Field("a", 1)}, false},
		{ast.ArrayOf(1, 2), ast.ArrayOf(1, 2), true},
		{ast.ArrayOf(1, 2), ast.ArrayOf(2, 1), false},
		{ast.Array{}, ast.Object{}, false},
	}
	for _, tc := range tests {
		if got := ast.Equal(tc.a, tc.b); got != tc.want {
			t.Errorf("Equal(%v, %v): got %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestRelease(t *testing.T) {
	v, err := ast.ParseString(`{"a": [1, {"b": null}], "c": "d"}`)
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	obj := v.(ast.Object)
	arr := obj[0].Value.(ast.Array)
	inner := arr[1].(ast.Object)
	m := inner[0]

	ast.Release(v)

	if obj[0] != nil || obj[1] != nil {
		t.Errorf("Object members not released: %v", []*ast.Member(obj))
	}
	if arr[0] != nil || arr[1] != nil {
		t.Errorf("Array elements not released: %v", []ast.Value(arr))
	}
	if inner[0] != nil || m.Value != nil {
		t.Errorf("Nested member not released: %v", m)
	}

	// Releasing scalars and nil is a no-op.
	ast.Release(nil)
	ast.Release(ast.String("x"))
	ast.Release(ast.Null)
}

func TestToValue(t *testing.T) {
	tests := []struct {
		input any
		want  ast.Value
	}{
		{nil, ast.Null},
		{"s", ast.String("s")},
		{true, ast.Bool(true)},
		{5, ast.Int(5)},
		{int32(-3), ast.Int(-3)},
		{int64(1 << 40), ast.Int(1 << 40)},
		{float32(0.5), ast.Float(0.5)},
		{2.25, ast.Float(2.25)},
		{jvalue.Int(9), ast.Int(9)},
		{[]any{1, "x", nil}, ast.Array{ast.Int(1), ast.String("x"), ast.Null}},
		{ast.Object{}, ast.Object{}},
	}
	for _, tc := range tests {
		if got := ast.ToValue(tc.input); !ast.Equal(got, tc.want) {
			t.Errorf("ToValue(%#v): got %v, want %v", tc.input, got, tc.want)
		}
	}

	mtest.MustPanic(t, func() { ast.ToValue([]bool{true}) })
	mtest.MustPanic(t, func() { ast.Field("x", struct{}{}) })
}
