package legacy

import (
	"net/url"
	"strconv"
	"strings"
)

// Query is a parsed legacy query string.
type Query struct {
	values url.Values
}

// ParseQuery parses a raw legacy query string.
// When doubleDecode is set and raw contains a percent escape, raw is unescaped
// once before parsing; escapes that are not valid are kept as they are.
// Semicolons separate parameters like ampersands. Malformed pairs are skipped.
func ParseQuery(raw string, doubleDecode bool) Query {
	if doubleDecode && hasPercentEscape(raw) {
		raw = unescape(raw)
	}
	raw = strings.ReplaceAll(raw, ";", "&")

	// ParseQuery keeps every well-formed pair even when it reports an error.
	values, _ := url.ParseQuery(raw)
	return Query{values: values}
}

// Has reports whether key is present, even with an empty value.
func (q Query) Has(key string) bool {
	return len(q.values[key]) > 0
}

// Get returns the last value of key.
func (q Query) Get(key string) (string, bool) {
	vs := q.values[key]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

// Int returns the integer prefix of the last value of key.
// Leading whitespace and a sign are accepted and trailing garbage is ignored,
// so "12abc" yields 12. A value without leading digits yields 0 and false,
// callers that treat a present key as zero can ignore ok.
func (q Query) Int(key string) (int64, bool) {
	v, ok := q.Get(key)
	if !ok {
		return 0, false
	}
	return parseLeadingInt(v)
}

func parseLeadingInt(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// unescape decodes every valid %XX escape and '+' in s and copies anything
// else through, including a '%' not followed by two hex digits.
func unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// hasPercentEscape reports whether s contains % followed by a hex digit.
func hasPercentEscape(s string) bool {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '%' && isHex(s[i+1]) {
			return true
		}
	}
	return false
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
