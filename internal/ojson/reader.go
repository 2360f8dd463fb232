/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package ojson

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	dxerrors "github.com/deepdreamgames/pachka/dxcore/errors"
)

// Reader parses JSON text into a Value tree.
//
// Only a single JSON value (an object or an array, per the supporting
// grammar this registry relies on) is accepted at the top level; trailing
// non-whitespace is an error. Duplicate keys within one object are
// rejected rather than silently overwriting the earlier value, so that a
// malformed package.json fails ingestion loudly instead of dropping
// fields.
type Reader struct {
	// CaseInsensitiveKeys, when true, makes Object.Get-style lookups
	// performed during parsing compare keys without regard to case. Keys
	// are still stored exactly as they appeared in the input.
	CaseInsensitiveKeys bool
}

// Parse parses data as a single JSON value and returns it.
func (r Reader) Parse(data []byte) (Value, error) {
	p := &parser{src: string(data), foldKeys: r.CaseInsensitiveKeys}
	p.skipWS()
	v, err := p.parseValue()
	if err != nil {
		return Value{}, err
	}
	p.skipWS()
	if p.pos != len(p.src) {
		return Value{}, p.errorf("trailing data after top-level value")
	}
	if v.Kind() != KindObject && v.Kind() != KindArray {
		return Value{}, fmt.Errorf("ojson: top-level value must be an object or array")
	}
	return v, nil
}

type parser struct {
	src      string
	pos      int
	foldKeys bool
}

func (p *parser) errorf(format string, args ...any) error {
	return &dxerrors.UnmarshalError{
		Type:   "JSON",
		Data:   []byte(p.src),
		Reason: fmt.Sprintf(format, args...) + fmt.Sprintf(" at offset %d", p.pos),
	}
}

func (p *parser) skipWS() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) parseValue() (Value, error) {
	if p.pos >= len(p.src) {
		return Value{}, p.errorf("unexpected end of input")
	}
	switch c := p.src[p.pos]; {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		s, err := p.parseString()
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	case c == 't':
		return p.parseLiteral("true", Bool(true))
	case c == 'f':
		return p.parseLiteral("false", Bool(false))
	case c == 'n':
		return p.parseLiteral("null", Null())
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return Value{}, p.errorf("unexpected character %q", c)
	}
}

func (p *parser) parseLiteral(lit string, v Value) (Value, error) {
	if p.pos+len(lit) > len(p.src) || p.src[p.pos:p.pos+len(lit)] != lit {
		return Value{}, p.errorf("invalid literal, expected %q", lit)
	}
	p.pos += len(lit)
	return v, nil
}

func (p *parser) parseObject() (Value, error) {
	p.pos++ // consume '{'
	o := NewObject()
	seen := make(map[string]bool)

	p.skipWS()
	if p.pos < len(p.src) && p.src[p.pos] == '}' {
		p.pos++
		return FromObject(o), nil
	}

	for {
		p.skipWS()
		if p.pos >= len(p.src) || p.src[p.pos] != '"' {
			return Value{}, p.errorf("expected string key")
		}
		key, err := p.parseString()
		if err != nil {
			return Value{}, err
		}

		dedupeKey := key
		if p.foldKeys {
			dedupeKey = strings.ToLower(key)
		}
		if seen[dedupeKey] {
			return Value{}, p.errorf("duplicate key %q", key)
		}
		seen[dedupeKey] = true

		p.skipWS()
		if p.pos >= len(p.src) || p.src[p.pos] != ':' {
			return Value{}, p.errorf("expected ':' after key")
		}
		p.pos++
		p.skipWS()

		val, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		o.Set(key, val)

		p.skipWS()
		if p.pos >= len(p.src) {
			return Value{}, p.errorf("unterminated object")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
			continue
		case '}':
			p.pos++
			return FromObject(o), nil
		default:
			return Value{}, p.errorf("expected ',' or '}'")
		}
	}
}

func (p *parser) parseArray() (Value, error) {
	p.pos++ // consume '['
	a := NewArray()

	p.skipWS()
	if p.pos < len(p.src) && p.src[p.pos] == ']' {
		p.pos++
		return FromArray(a), nil
	}

	for {
		p.skipWS()
		val, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		a.Append(val)

		p.skipWS()
		if p.pos >= len(p.src) {
			return Value{}, p.errorf("unterminated array")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
			continue
		case ']':
			p.pos++
			return FromArray(a), nil
		default:
			return Value{}, p.errorf("expected ',' or ']'")
		}
	}
}

func (p *parser) parseString() (string, error) {
	p.pos++ // consume opening quote
	start := p.pos
	var b strings.Builder
	plain := true

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '"' {
			s := p.src[start:p.pos]
			p.pos++
			if plain {
				return s, nil
			}
			return b.String(), nil
		}
		if c == '\\' {
			if plain {
				b.WriteString(p.src[start:p.pos])
				plain = false
			}
			p.pos++
			if p.pos >= len(p.src) {
				return "", p.errorf("unterminated escape sequence")
			}
			esc := p.src[p.pos]
			switch esc {
			case '"', '\\', '/':
				b.WriteByte(esc)
				p.pos++
			case 'b':
				b.WriteByte('\b')
				p.pos++
			case 'f':
				b.WriteByte('\f')
				p.pos++
			case 'n':
				b.WriteByte('\n')
				p.pos++
			case 'r':
				b.WriteByte('\r')
				p.pos++
			case 't':
				b.WriteByte('\t')
				p.pos++
			case 'u':
				r, err := p.parseUnicodeEscape()
				if err != nil {
					return "", err
				}
				b.WriteRune(r)
			default:
				return "", p.errorf("invalid escape character %q", esc)
			}
			continue
		}
		if !plain {
			b.WriteByte(c)
		}
		p.pos++
	}
	return "", p.errorf("unterminated string")
}

func (p *parser) parseUnicodeEscape() (rune, error) {
	p.pos++ // consume 'u'
	hi, err := p.readHex4()
	if err != nil {
		return 0, err
	}
	if utf16.IsSurrogate(rune(hi)) {
		if p.pos+1 < len(p.src) && p.src[p.pos] == '\\' && p.src[p.pos+1] == 'u' {
			save := p.pos
			p.pos += 2
			lo, err := p.readHex4()
			if err == nil {
				if r := utf16.DecodeRune(rune(hi), rune(lo)); r != utf8.RuneError {
					return r, nil
				}
			}
			p.pos = save
		}
		return utf8.RuneError, nil
	}
	return rune(hi), nil
}

func (p *parser) readHex4() (uint16, error) {
	if p.pos+4 > len(p.src) {
		return 0, p.errorf("truncated unicode escape")
	}
	v, err := strconv.ParseUint(p.src[p.pos:p.pos+4], 16, 16)
	if err != nil {
		return 0, p.errorf("invalid unicode escape")
	}
	p.pos += 4
	return uint16(v), nil
}

func (p *parser) parseNumber() (Value, error) {
	start := p.pos
	isFloat := false

	if p.pos < len(p.src) && p.src[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
	}
	if p.pos < len(p.src) && p.src[p.pos] == '.' {
		isFloat = true
		p.pos++
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
	}
	if p.pos < len(p.src) && (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') {
		isFloat = true
		p.pos++
		if p.pos < len(p.src) && (p.src[p.pos] == '+' || p.src[p.pos] == '-') {
			p.pos++
		}
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
	}

	lit := p.src[start:p.pos]
	if lit == "" || lit == "-" {
		return Value{}, p.errorf("invalid number")
	}

	if isFloat {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return Value{}, p.errorf("invalid number %q", lit)
		}
		return Float(f), nil
	}
	i, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return Value{}, p.errorf("invalid number %q", lit)
	}
	return Int(i), nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
