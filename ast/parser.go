// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/tailscale/hujson"

	"github.com/creachadair/jvalue"
)

// DefaultMaxDepth is the default limit on nesting of objects and arrays.
const DefaultMaxDepth = 1000

// initialCap is the starting capacity of member and element buffers.
const initialCap = 4

// Options control the behavior of a Parser. A nil *Options is ready for use
// and provides default values.
type Options struct {
	// The maximum nesting depth of objects and arrays. A document nested more
	// deeply than this is rejected with a ParseError.
	// If zero or negative, DefaultMaxDepth is used.
	MaxDepth int

	// If set, the parser writes debug logs here.
	Logger log.Logger

	// If set, the parser records statistics here.
	Metrics *Metrics
}

func (o *Options) maxDepth() int {
	if o != nil && o.MaxDepth > 0 {
		return o.MaxDepth
	}
	return DefaultMaxDepth
}

func (o *Options) logger() log.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}
	return log.NewNopLogger()
}

func (o *Options) metrics() *Metrics {
	if o == nil {
		return nil
	}
	return o.Metrics
}

// A Parser parses JSON text into Value trees. A Parser holds only its
// settings, and is safe for concurrent use by multiple goroutines provided
// each call has its own input.
type Parser struct {
	maxDepth int
	logger   log.Logger
	metrics  *Metrics
}

// NewParser constructs a Parser with the given options.
func NewParser(opts *Options) *Parser {
	return &Parser{
		maxDepth: opts.maxDepth(),
		logger:   opts.logger(),
		metrics:  opts.metrics(),
	}
}

var defaultParser = NewParser(nil)

// Parse parses a single JSON value from r with default options. Whitespace
// may surround the value, but any other input following it is an error.
func Parse(r io.Reader) (Value, error) { return defaultParser.Parse(r) }

// ParseString parses a single JSON value from s with default options.
func ParseString(s string) (Value, error) { return defaultParser.Parse(strings.NewReader(s)) }

// ParseAll parses a sequence of JSON values from r with default options.
func ParseAll(r io.Reader) ([]Value, error) { return defaultParser.ParseAll(r) }

// ParseFile parses a single JSON value from the named file with default
// options. If the file cannot be opened, the error has class SourceError.
func ParseFile(path string) (Value, error) { return defaultParser.ParseFile(path) }

// ParseHuJSON parses a single JWCC value (JSON with comments and trailing
// commas) from r with default options.
func ParseHuJSON(r io.Reader) (Value, error) { return defaultParser.ParseHuJSON(r) }

// Parse parses a single JSON value from r. Whitespace may surround the value,
// but any other input following it is an error. In case of error, no value is
// returned, and the error has concrete type *jvalue.Error.
func (p *Parser) Parse(r io.Reader) (Value, error) {
	d := p.newDecoder(r)
	start := time.Now()
	v, err := d.parseDocument()
	p.finish(d, start, err)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ParseAll parses a sequence of JSON values from r, until r is exhausted.
// Consecutive values must be separated by whitespace, so "[1] [2]" is two
// values but "[1][2]" is an error. Either all the values are returned, or none
// are and an error is reported.
func (p *Parser) ParseAll(r io.Reader) ([]Value, error) {
	d := p.newDecoder(r)
	start := time.Now()
	vs, err := d.parseSequence()
	p.finish(d, start, err)
	if err != nil {
		return nil, err
	}
	return vs, nil
}

// ParseFile parses a single JSON value from the named file.
func (p *Parser) ParseFile(path string) (Value, error) {
	f, err := os.Open(path)
	if err != nil {
		err = jvalue.Errorf(jvalue.SourceError, 0, "open: %w", err)
		p.finish(nil, time.Now(), err)
		return nil, err
	}
	defer f.Close()
	return p.Parse(f)
}

// ParseHuJSON parses a single JWCC value from r. Comments and trailing commas
// are removed before the value is parsed. Input that hujson cannot parse is
// reported as a ParseError.
func (p *Parser) ParseHuJSON(r io.Reader) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		err = jvalue.Errorf(jvalue.SourceError, 0, "read: %w", err)
		p.finish(nil, time.Now(), err)
		return nil, err
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		err = jvalue.Errorf(jvalue.ParseError, 0, "invalid JWCC: %w", err)
		p.finish(nil, time.Now(), err)
		return nil, err
	}
	return p.Parse(bytes.NewReader(std))
}

func (p *Parser) newDecoder(r io.Reader) *decoder {
	return &decoder{r: jvalue.NewReader(r), maxDepth: p.maxDepth}
}

// finish logs and records the outcome of a parse call. d is nil if the call
// failed before any input was read.
func (p *Parser) finish(d *decoder, start time.Time, err error) {
	var nbytes int64
	var depth, nvals int
	if d != nil {
		nbytes, depth, nvals = d.r.Offset(), d.maxSeen, d.nvals
	}
	p.metrics.observe(nbytes, time.Since(start), err)
	if err != nil {
		level.Debug(p.logger).Log("msg", "parse failed", "class", classLabel(err), "offset", nbytes, "err", err)
		return
	}
	level.Debug(p.logger).Log("msg", "parsed input", "bytes", nbytes, "depth", depth, "values", nvals)
}

// A decoder holds the state of a single parse call. The structure of the
// value being parsed is held on the call stack; the only other state is the
// reader and a scratch buffer for strings.
type decoder struct {
	r        *jvalue.Reader
	buf      bytes.Buffer
	maxDepth int

	maxSeen int  // deepest nesting seen
	nvals   int  // values parsed
	spaced  bool // whitespace preceded the current lookahead character
}

func (d *decoder) recoverParseError(errp *error) {
	if perr := recover(); perr != nil {
		if err, ok := perr.(*jvalue.Error); ok {
			*errp = err
			return
		}
		panic(perr)
	}
}

// parseDocument parses exactly one value followed by end of input.
func (d *decoder) parseDocument() (_ Value, err error) {
	defer d.recoverParseError(&err)

	c := d.next()
	if c == jvalue.EOF {
		d.failf("no value in input")
	}
	v, c := d.parseValue(c, 0)
	if c != jvalue.EOF {
		Release(v)
		d.failf("unexpected %q after value", c)
	}
	return v, nil
}

// parseSequence parses zero or more whitespace-separated values followed by
// end of input.
func (d *decoder) parseSequence() (_ []Value, err error) {
	var vs []Value
	defer func() {
		if err != nil {
			for _, v := range vs {
				Release(v)
			}
		}
	}()
	defer d.recoverParseError(&err)

	c := d.next()
	for c != jvalue.EOF {
		var v Value
		v, c = d.parseValue(c, 0)
		vs = append(vs, v)
		if c != jvalue.EOF && !d.spaced {
			d.failf("unexpected %q after value, want whitespace", c)
		}
	}
	return vs, nil
}

// parseValue parses a value whose first character c has already been read.
// It returns the value and the first non-whitespace character following it.
func (d *decoder) parseValue(c jvalue.Char, depth int) (Value, jvalue.Char) {
	d.nvals++
	switch jvalue.Classify(c) {
	case jvalue.KindBool:
		b, err := d.r.ReadBool(c)
		d.check(err)
		return Bool(b), d.next()

	case jvalue.KindNull:
		d.check(d.r.ReadNull(c))
		return Null, d.next()

	case jvalue.KindString:
		return String(d.readString()), d.next()

	case jvalue.KindNumber:
		n, next, err := d.r.ReadNumber(c)
		d.check(err)
		if jvalue.IsSpace(next) {
			next = d.next()
			d.spaced = true
		} else {
			d.spaced = false
		}
		return Number{n}, next

	case jvalue.KindObject:
		return d.parseObject(depth + 1)

	case jvalue.KindArray:
		return d.parseArray(depth + 1)

	default:
		d.failf("unexpected %q at start of value", c)
		panic("unreachable")
	}
}

// parseObject parses the members of an object whose open brace has been
// read, through the close brace.
func (d *decoder) parseObject(depth int) (Value, jvalue.Char) {
	d.enter(depth)
	c := d.next()
	if c == '}' {
		return Object{}, d.next()
	}

	obj := make(Object, 0, initialCap)
	var ok bool
	defer func() {
		if !ok {
			Release(obj)
		}
	}()
	for {
		// Parse a single member: "key": value
		if c != '"' {
			d.failf("got %q, want string key", c)
		}
		key := d.readString()
		if c = d.next(); c != ':' {
			d.failf(`got %q after key, want ":"`, c)
		}
		v, end := d.parseValue(d.next(), depth)
		obj = append(obj, &Member{Key: key, Value: v})

		// Check whether we have more members (",") or are done ("}").
		switch end {
		case ',':
			c = d.next()
		case '}':
			ok = true
			return shrink(obj), d.next()
		default:
			d.failf(`got %q after object member, want "," or "}"`, end)
		}
	}
}

// parseArray parses the elements of an array whose open bracket has been
// read, through the close bracket.
func (d *decoder) parseArray(depth int) (Value, jvalue.Char) {
	d.enter(depth)
	c := d.next()
	if c == ']' {
		return Array{}, d.next()
	}

	arr := make(Array, 0, initialCap)
	var ok bool
	defer func() {
		if !ok {
			Release(arr)
		}
	}()
	for {
		v, end := d.parseValue(c, depth)
		arr = append(arr, v)

		switch end {
		case ',':
			c = d.next()
		case ']':
			ok = true
			return shrink(arr), d.next()
		default:
			d.failf(`got %q after array element, want "," or "]"`, end)
		}
	}
}

// enter records entry to an object or array at the given depth, and fails if
// the depth exceeds the limit.
func (d *decoder) enter(depth int) {
	if depth > d.maxDepth {
		d.failf("nesting depth exceeds %d", d.maxDepth)
	}
	d.maxSeen = max(d.maxSeen, depth)
}

func (d *decoder) readString() string {
	s, err := d.r.ReadString(&d.buf)
	d.check(err)
	return s
}

// next returns the next non-whitespace character of the input, and records
// whether any whitespace was skipped to reach it.
func (d *decoder) next() jvalue.Char {
	c, err := d.r.ReadChar()
	d.check(err)
	d.spaced = jvalue.IsSpace(c)
	for jvalue.IsSpace(c) {
		c, err = d.r.ReadChar()
		d.check(err)
	}
	return c
}

func (d *decoder) check(err error) {
	if err == nil {
		return
	}
	var jerr *jvalue.Error
	if !errors.As(err, &jerr) {
		jerr = jvalue.Errorf(jvalue.SourceError, d.r.Offset(), "%w", err)
	}
	panic(jerr)
}

func (d *decoder) failf(msg string, args ...any) {
	panic(jvalue.Errorf(jvalue.ParseError, d.r.Offset(), msg, args...))
}

// shrink returns s with no spare capacity, copying it if necessary.
func shrink[S ~[]E, E any](s S) S {
	if cap(s) == len(s) {
		return s
	}
	out := make(S, len(s))
	copy(out, s)
	return out
}
