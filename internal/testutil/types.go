// Package testutil defines support code for unit tests.
package testutil

import (
	"math/rand/v2"
	"strconv"

	"github.com/creachadair/jvalue/ast"
)

// A Gen generates pseudo-random value trees. The values it generates contain
// no strings that need escaping, and no floating-point values whose shortest
// text form has more digits than a float64 holds exactly, so they survive a
// round trip through Serialize and Parse unchanged.
type Gen struct {
	rng *rand.Rand

	MaxDepth int // maximum nesting depth of objects and arrays
	MaxLen   int // maximum number of members or elements
}

// NewGen constructs a generator with the given seed.
func NewGen(seed uint64) *Gen {
	return &Gen{rng: rand.New(rand.NewPCG(seed, seed^0x5eed)), MaxDepth: 4, MaxLen: 8}
}

// Value returns a new random value.
func (g *Gen) Value() ast.Value { return g.value(0) }

func (g *Gen) value(depth int) ast.Value {
	n := 6
	if depth >= g.MaxDepth {
		n = 4 // scalars only
	}
	switch g.rng.IntN(n) {
	case 0:
		return ast.Null
	case 1:
		return ast.Bool(g.rng.IntN(2) == 1)
	case 2:
		return ast.String(g.word())
	case 3:
		if g.rng.IntN(2) == 0 {
			return ast.Int(g.rng.Int64N(1<<40) - 1<<39)
		}
		return ast.Float(float64(g.rng.Int64N(2_000_000)-1_000_000) / 1000)
	case 4:
		arr := make(ast.Array, g.rng.IntN(g.MaxLen+1))
		for i := range arr {
			arr[i] = g.value(depth + 1)
		}
		return arr
	default:
		obj := make(ast.Object, g.rng.IntN(g.MaxLen+1))
		for i := range obj {
			obj[i] = &ast.Member{Key: g.word(), Value: g.value(depth + 1)}
		}
		return obj
	}
}

const letters = "abcdefghijklmnopqrstuvwxyz ABCDEFGHIJKLMNOPQRSTUVWXYZ_0123456789"

func (g *Gen) word() string {
	buf := make([]byte, g.rng.IntN(12))
	for i := range buf {
		buf[i] = letters[g.rng.IntN(len(letters))]
	}
	return string(buf)
}

// Nested returns the text of depth nested arrays around the integer 1.
func Nested(depth int) string {
	buf := make([]byte, 0, 2*depth+1)
	for range depth {
		buf = append(buf, '[')
	}
	buf = strconv.AppendInt(buf, 1, 10)
	for range depth {
		buf = append(buf, ']')
	}
	return string(buf)
}
