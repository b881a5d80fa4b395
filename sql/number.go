package sql

import (
	"math"
	"strconv"
	"strings"

	"github.com/nickyhof/MiniDB/core"
)

// ParseNumber reports whether a token reads as a number and returns it.
// Accepted forms are decimal and exponent floats, 0x/0o/0b integers and
// (+/-)Infinity. An empty token reads as 0.
func ParseNumber(token string) (float64, bool) {
	s := strings.TrimSpace(token)
	if s == "" {
		return 0, true
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			if strings.ContainsRune(s[2:], '_') {
				return 0, false
			}
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return 0, false
			}
			return float64(n), true
		}
	}

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if !isDigit(ch) && ch != '.' && ch != 'e' && ch != 'E' && ch != '+' && ch != '-' {
			return 0, false
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Out of range values saturate to +/-Inf, everything else is not a number.
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return f, true
		}
		return 0, false
	}
	return f, true
}

// literal converts a token to a number when it looks numeric and keeps it
// as a string otherwise.
func literal(token string) core.Value {
	if f, ok := ParseNumber(token); ok {
		return core.Number(f)
	}
	return core.String(token)
}

// numeric always produces a number; tokens that do not read as one become
// NaN, which matches no stored value.
func numeric(token string) core.Value {
	if f, ok := ParseNumber(token); ok {
		return core.Number(f)
	}
	return core.Number(math.NaN())
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
