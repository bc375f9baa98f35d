package rules

import (
	"strconv"
	"strings"

	"github.com/ava12/nabu/feeder"
	"github.com/ava12/nabu/ret"
)

// Lit matches a single character.
func Lit(c byte) Rule {
	return RuleFunc(func(fd *feeder.Feeder) (ret.Value, bool) {
		n := fd.Next()
		if n != rune(c) {
			return nil, fd.Unread(n)
		}
		return ret.Char(c), true
	})
}

// SpaceLit skips whitespace and matches a single character.
func SpaceLit(c byte) Rule {
	return Skip(Lit(c))
}

// Str matches exact string.
func Str(s string) Rule {
	return RuleFunc(func(fd *feeder.Feeder) (ret.Value, bool) {
		m := fd.Mark()
		defer m.Release()
		if fd.ReadN(len(s)) != s {
			return nil, false
		}
		m.Commit()
		return ret.String(s), true
	})
}

// DelimStr matches text up to delimiter c and returns it without the delimiter.
// Fails if the delimiter is not found. The delimiter is consumed only if consume is true.
func DelimStr(c byte, consume bool) Rule {
	return RuleFunc(func(fd *feeder.Feeder) (ret.Value, bool) {
		m := fd.Mark()
		defer m.Release()
		found, text := fd.ReadUntil(c)
		if !found {
			return nil, false
		}
		if !consume {
			fd.Backup(1)
		}
		m.Commit()
		return ret.String(text), true
	})
}

func class(pred func(rune) bool, value func(rune) ret.Value) Rule {
	return RuleFunc(func(fd *feeder.Feeder) (ret.Value, bool) {
		c := fd.Next()
		if c == feeder.EOF || !pred(c) {
			return nil, fd.Unread(c)
		}
		return value(c), true
	})
}

func charValue(c rune) ret.Value {
	return ret.Char(c)
}

func anyChar(rune) bool {
	return true
}

var (
	// Digit matches decimal digit, returns its value as ret.Int.
	Digit = class(feeder.IsDigit, func(c rune) ret.Value { return ret.Int(c - '0') })

	// Alpha matches ASCII letter.
	Alpha = class(feeder.IsAlpha, charValue)

	// Alnum matches digit or letter.
	Alnum = Alt(Digit, Alpha)

	// AnyChar matches any character.
	AnyChar = class(anyChar, charValue)

	// Space matches one whitespace character.
	Space = class(feeder.IsSpace, charValue)

	// Identifier matches [_a-zA-Z][_a-zA-Z0-9]*.
	Identifier Rule = RuleFunc(matchIdentifier)

	// Word matches non-empty run of non-whitespace characters.
	Word Rule = RuleFunc(matchWord)

	// CChar matches single-quoted character with optional escape.
	CChar Rule = RuleFunc(matchCChar)

	// CStr matches double-quoted string with escapes.
	CStr Rule = RuleFunc(matchCStr)
)

func isIdentStart(c rune) bool {
	return c == '_' || feeder.IsAlpha(c)
}

func isIdentChar(c rune) bool {
	return c == '_' || feeder.IsAlpha(c) || feeder.IsDigit(c)
}

func readWhile(fd *feeder.Feeder, pred func(rune) bool) string {
	sb := &strings.Builder{}
	for {
		c := fd.Peek()
		if c == feeder.EOF || !pred(c) {
			return sb.String()
		}
		sb.WriteByte(byte(c))
		fd.Advance(1)
	}
}

func matchIdentifier(fd *feeder.Feeder) (ret.Value, bool) {
	c := fd.Peek()
	if c == feeder.EOF || !isIdentStart(c) {
		return nil, false
	}
	return ret.String(readWhile(fd, isIdentChar)), true
}

func matchWord(fd *feeder.Feeder) (ret.Value, bool) {
	text := readWhile(fd, func(c rune) bool { return !feeder.IsSpace(c) })
	if text == "" {
		return nil, false
	}
	return ret.String(text), true
}

var escapes = map[rune]byte{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'v':  '\v',
	'0':  0,
}

// readEscaped reads one possibly escaped character, returns false on unknown escape or EOF.
func readEscaped(fd *feeder.Feeder) (byte, bool) {
	c := fd.Next()
	if c == feeder.EOF {
		return 0, false
	}
	if c != '\\' {
		return byte(c), true
	}

	e, ok := escapes[fd.Next()]
	return e, ok
}

func matchCChar(fd *feeder.Feeder) (ret.Value, bool) {
	m := fd.Mark()
	defer m.Release()
	if fd.Next() != '\'' || fd.Peek() == '\'' {
		return nil, false
	}
	c, ok := readEscaped(fd)
	if !ok || fd.Next() != '\'' {
		return nil, false
	}
	m.Commit()
	return ret.Char(c), true
}

func matchCStr(fd *feeder.Feeder) (ret.Value, bool) {
	m := fd.Mark()
	defer m.Release()
	if fd.Next() != '"' {
		return nil, false
	}

	sb := &strings.Builder{}
	for fd.Peek() != '"' {
		c, ok := readEscaped(fd)
		if !ok {
			return nil, false
		}
		sb.WriteByte(c)
	}
	fd.Advance(1)
	m.Commit()
	return ret.String(sb.String()), true
}

// Uint matches decimal digits, returns ret.Int.
// Fails without consuming input if the number does not fit int64.
var Uint Rule = RuleFunc(func(fd *feeder.Feeder) (ret.Value, bool) {
	m := fd.Mark()
	defer m.Release()

	text := readWhile(fd, feeder.IsDigit)
	if text == "" {
		return nil, false
	}
	x, e := strconv.ParseInt(text, 10, 64)
	if e != nil {
		return nil, false
	}
	m.Commit()
	return ret.Int(x), true
})

// Float matches decimal number with optional fraction and exponent, returns ret.Float.
// Leading dot is allowed if followed by a digit. Incomplete exponent is not consumed.
var Float Rule = RuleFunc(func(fd *feeder.Feeder) (ret.Value, bool) {
	m := fd.Mark()
	defer m.Release()
	start := fd.Index()

	digits := len(readWhile(fd, feeder.IsDigit))
	if fd.Peek() == '.' {
		fd.Advance(1)
		fraction := len(readWhile(fd, feeder.IsDigit))
		if fraction == 0 {
			fd.Backup(1)
		}
		digits += fraction
	}
	if digits == 0 {
		return nil, false
	}

	if c := fd.Peek(); c == 'e' || c == 'E' {
		mantissa := fd.Index()
		fd.Advance(1)
		if c = fd.Peek(); c == '+' || c == '-' {
			fd.Advance(1)
		}
		if readWhile(fd, feeder.IsDigit) == "" {
			fd.Advance(mantissa - fd.Index())
		}
	}

	text := fd.Slice(start, fd.Index())
	x, e := strconv.ParseFloat(text, 64)
	if e != nil {
		return nil, false
	}
	m.Commit()
	return ret.Float(x), true
})
