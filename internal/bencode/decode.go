package bencode

import (
	"bytes"
	"fmt"
	"strconv"
)

const (
	tokenInteger   byte = 'i'
	tokenList      byte = 'l'
	tokenDict      byte = 'd'
	tokenEnd       byte = 'e'
	tokenSeparator byte = ':'
)

// DefaultMaxDepth is the number of nested lists and dictionaries a Decoder
// accepts unless configured otherwise.
const DefaultMaxDepth = 512

type Option func(*Decoder)

// WithMaxDepth limits how deeply lists and dictionaries may nest. Values
// below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(d *Decoder) {
		if depth > 0 {
			d.maxDepth = depth
		}
	}
}

// Decoder holds decoding limits. It keeps no state between calls and is safe
// for concurrent use.
type Decoder struct {
	maxDepth int
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDecoder = NewDecoder()

// Decode parses the value at the start of data and returns it together with
// the bytes that follow it.
func Decode(data []byte) (Value, []byte, error) {
	return defaultDecoder.Decode(data)
}

// Unmarshal parses data as exactly one value.
func Unmarshal(data []byte) (Value, error) {
	return defaultDecoder.Unmarshal(data)
}

func (d *Decoder) Decode(data []byte) (Value, []byte, error) {
	p := parser{data: data, maxDepth: d.maxDepth}
	v, err := p.value(0)
	if err != nil {
		return nil, nil, err
	}
	return v, data[p.pos:], nil
}

func (d *Decoder) Unmarshal(data []byte) (Value, error) {
	v, rest, err := d.Decode(data)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, &SyntaxError{
			Offset: len(data) - len(rest),
			Err:    ErrTrailingData,
			Detail: fmt.Sprintf("%d unread bytes", len(rest)),
		}
	}
	return v, nil
}

// parser is a cursor over a single input buffer.
type parser struct {
	data     []byte
	pos      int
	maxDepth int
}

func (p *parser) errorAt(offset int, err error, format string, args ...any) error {
	return &SyntaxError{Offset: offset, Err: err, Detail: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.data)
}

func (p *parser) value(depth int) (Value, error) {
	if p.eof() {
		return nil, p.errorAt(p.pos, ErrUnrecognizedToken, "unexpected end of input")
	}

	switch c := p.data[p.pos]; {
	case c == tokenInteger:
		return p.integer()
	case c == tokenList:
		return p.list(depth + 1)
	case c == tokenDict:
		return p.dict(depth + 1)
	case isDigit(c):
		s, err := p.byteString()
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, p.errorAt(p.pos, ErrUnrecognizedToken, "unexpected byte %q", c)
	}
}

// integer parses i<digits>e. Leading zeros and -0 are accepted.
func (p *parser) integer() (Value, error) {
	start := p.pos
	body := p.data[start+1:]
	end := bytes.IndexByte(body, tokenEnd)
	if end < 0 {
		return nil, p.errorAt(start, ErrMalformedInteger, "missing terminator")
	}

	digits := body[:end]
	if len(digits) == 0 || digits[0] == '+' {
		return nil, p.errorAt(start, ErrMalformedInteger, "%q", digits)
	}
	n, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return nil, p.errorAt(start, ErrMalformedInteger, "%q", digits)
	}

	p.pos = start + 1 + end + 1
	return Integer(n), nil
}

// byteString parses <length>:<bytes>. The returned bytes are a copy.
func (p *parser) byteString() (ByteString, error) {
	start := p.pos
	colon := bytes.IndexByte(p.data[start:], tokenSeparator)
	if colon < 0 {
		return nil, p.errorAt(start, ErrMalformedLength, "missing separator")
	}

	prefix := p.data[start : start+colon]
	for _, c := range prefix {
		if !isDigit(c) {
			return nil, p.errorAt(start, ErrMalformedLength, "%q", prefix)
		}
	}
	n, err := strconv.ParseUint(string(prefix), 10, 64)
	if err != nil {
		return nil, p.errorAt(start, ErrMalformedLength, "%q", prefix)
	}

	body := start + colon + 1
	if available := len(p.data) - body; n > uint64(available) {
		return nil, p.errorAt(start, ErrTruncatedString, "want %d bytes, have %d", n, available)
	}

	p.pos = body + int(n)
	return ByteString(bytes.Clone(p.data[body:p.pos])), nil
}

func (p *parser) list(depth int) (Value, error) {
	start := p.pos
	if depth > p.maxDepth {
		return nil, p.errorAt(start, ErrNestingTooDeep, "limit is %d", p.maxDepth)
	}
	p.pos++

	items := List{}
	for {
		if p.eof() {
			return nil, p.errorAt(start, ErrUnterminatedCollection, "list")
		}
		if p.data[p.pos] == tokenEnd {
			p.pos++
			return items, nil
		}

		v, err := p.value(depth)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}

func (p *parser) dict(depth int) (Value, error) {
	start := p.pos
	if depth > p.maxDepth {
		return nil, p.errorAt(start, ErrNestingTooDeep, "limit is %d", p.maxDepth)
	}
	p.pos++

	d := NewDict()
	for {
		if p.eof() {
			return nil, p.errorAt(start, ErrUnterminatedCollection, "dictionary")
		}
		c := p.data[p.pos]
		if c == tokenEnd {
			p.pos++
			return d, nil
		}
		if !isDigit(c) {
			return nil, p.errorAt(p.pos, ErrNonStringKey, "key starts with %q", c)
		}

		keyOffset := p.pos
		key, err := p.byteString()
		if err != nil {
			return nil, err
		}
		if p.eof() {
			return nil, p.errorAt(start, ErrUnterminatedCollection, "dictionary")
		}
		if p.data[p.pos] == tokenEnd {
			return nil, p.errorAt(keyOffset, ErrMissingValue, "key %q", key)
		}

		v, err := p.value(depth)
		if err != nil {
			return nil, err
		}
		d.set(string(key), v)
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
