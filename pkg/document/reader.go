package document

import (
	"strconv"
	"strings"
)

// Parse reads text into a document tree. It never fails: unrecognized tokens
// are skipped, unreadable values become nil, and unterminated structures end
// at end of input. The caller is expected to have stripped any byte-order
// mark already.
func Parse(text string) any {
	r := &reader{src: text}
	return r.parseValue()
}

// reader is a cursor over the source text. All parse methods leave the
// cursor positioned after whatever they consumed; none of them panic or
// return errors.
type reader struct {
	src string
	pos int
}

func (r *reader) hasMore() bool {
	return r.pos < len(r.src)
}

// peek returns the current byte, or 0 at end of input.
func (r *reader) peek() byte {
	if r.pos >= len(r.src) {
		return 0
	}
	return r.src[r.pos]
}

// next returns the current byte and advances, or 0 at end of input.
func (r *reader) next() byte {
	if r.pos >= len(r.src) {
		return 0
	}
	c := r.src[r.pos]
	r.pos++
	return c
}

// consume skips whitespace, then advances past the current byte only if it
// equals want. A mismatch leaves the cursor in place so the caller's
// recovery logic sees the unexpected byte.
func (r *reader) consume(want byte) {
	r.skipWhitespace()
	if r.hasMore() && r.peek() == want {
		r.pos++
	}
}

func (r *reader) skipWhitespace() {
	for r.hasMore() {
		switch r.src[r.pos] {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			r.pos++
		default:
			return
		}
	}
}

// skipUntil advances until the current byte is one of chars or input ends.
func (r *reader) skipUntil(chars string) {
	for r.hasMore() && strings.IndexByte(chars, r.peek()) < 0 {
		r.pos++
	}
}

// parseValue dispatches on the next significant byte. A byte that cannot
// start any value is dropped and the scan continues, so stray tokens between
// values never abort the parse.
func (r *reader) parseValue() any {
	for {
		r.skipWhitespace()
		if !r.hasMore() {
			return nil
		}
		switch c := r.peek(); {
		case c == '{':
			return r.parseObject()
		case c == '[':
			return r.parseArray()
		case c == '"':
			return r.parseString()
		case c == 't' || c == 'f':
			return r.parseBool()
		case c == 'n':
			return r.parseNull()
		case c >= '0' && c <= '9' || c == '-' || c == '.':
			return r.parseNumber()
		}
		r.next()
	}
}

func (r *reader) parseObject() map[string]any {
	obj := make(map[string]any)
	r.consume('{')
	r.skipWhitespace()

	if r.peek() == '}' {
		r.consume('}')
		return obj
	}

	for {
		r.skipWhitespace()
		if !r.hasMore() {
			break
		}
		if r.peek() == '}' {
			r.consume('}')
			break
		}

		// A key position that does not open with a quote means the file
		// carries commentary or a damaged entry. Drop everything up to the
		// next delimiter and end the object there.
		if r.peek() != '"' {
			r.skipUntil("},")
			if r.hasMore() && r.peek() == '}' {
				r.consume('}')
			}
			break
		}

		key := r.parseString()
		r.skipWhitespace()
		r.consume(':')
		obj[key] = r.parseValue()

		r.skipWhitespace()
		if r.peek() == '}' {
			r.consume('}')
			break
		}
		if r.peek() == ',' {
			r.consume(',')
			r.skipWhitespace()
		}
	}

	return obj
}

func (r *reader) parseArray() []any {
	arr := make([]any, 0)
	r.consume('[')
	r.skipWhitespace()

	if r.peek() == ']' {
		r.consume(']')
		return arr
	}

	for {
		r.skipWhitespace()
		if !r.hasMore() {
			break
		}
		if r.peek() == ']' {
			r.consume(']')
			break
		}

		arr = append(arr, r.parseValue())

		r.skipWhitespace()
		if r.peek() == ']' {
			r.consume(']')
			break
		}
		if r.peek() == ',' {
			r.consume(',')
			r.skipWhitespace()
		}
	}

	return arr
}

func (r *reader) parseString() string {
	r.consume('"')
	var sb strings.Builder

	for r.hasMore() && r.peek() != '"' {
		c := r.next()
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		if !r.hasMore() {
			break
		}
		switch esc := r.next(); esc {
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		case '/':
			sb.WriteByte('/')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'u':
			sb.WriteString(r.unicodeEscape())
		default:
			// Unknown escape: keep the escaped character itself.
			sb.WriteByte(esc)
		}
	}

	if r.hasMore() && r.peek() == '"' {
		r.consume('"')
	}
	return sb.String()
}

// unicodeEscape reads the four hex digits of a \uXXXX escape. Anything that
// does not parse as hex (including a truncated escape at end of input)
// degrades to "?" rather than failing the string.
func (r *reader) unicodeEscape() string {
	end := r.pos + 4
	if end > len(r.src) {
		end = len(r.src)
	}
	hex := r.src[r.pos:end]
	r.pos = end

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) < 4 {
		return "?"
	}
	return string(rune(v))
}

// parseNumber scans a numeric literal. Literals without '.', 'e' or 'E'
// parse as int64; everything else as float64. A literal neither parser
// accepts (the scan is permissive about sign and exponent placement)
// degrades to nil.
func (r *reader) parseNumber() any {
	start := r.pos
	if r.peek() == '-' {
		r.next()
	}
	for r.hasMore() {
		c := r.peek()
		if c >= '0' && c <= '9' || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-' {
			r.next()
			continue
		}
		break
	}

	lit := r.src[start:r.pos]
	if !strings.ContainsAny(lit, ".eE") {
		if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return n
		}
	}
	if f, err := strconv.ParseFloat(lit, 64); err == nil {
		return f
	}
	return nil
}

func (r *reader) parseBool() bool {
	if r.peek() == 't' {
		r.consume('t')
		r.consume('r')
		r.consume('u')
		r.consume('e')
		return true
	}
	r.consume('f')
	r.consume('a')
	r.consume('l')
	r.consume('s')
	r.consume('e')
	return false
}

func (r *reader) parseNull() any {
	r.consume('n')
	r.consume('u')
	r.consume('l')
	r.consume('l')
	return nil
}
