package sql

import (
	"strings"
)

var delimiterPadding = strings.NewReplacer(
	"(", " ( ",
	")", " ) ",
	",", " , ",
	";", "",
)

// Tokenize splits a query into string tokens. Parentheses and commas always
// become tokens of their own, semicolons are dropped, and a single double
// quote is trimmed from each end of every token. Keywords keep their case.
func Tokenize(query string) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &EmptyInputError{}
	}

	fields := strings.Fields(delimiterPadding.Replace(query))

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		tokens = append(tokens, unquote(field))
	}

	return tokens, nil
}

// unquote strips at most one leading and one trailing double quote.
func unquote(token string) string {
	token = strings.TrimPrefix(token, `"`)
	return strings.TrimSuffix(token, `"`)
}

// toUpper converts a string to uppercase without allocating for ASCII strings
func toUpper(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'a' && s[i] <= 'z' {
			// Need to convert, allocate a new string
			b := make([]byte, len(s))
			for j := 0; j < len(s); j++ {
				if s[j] >= 'a' && s[j] <= 'z' {
					b[j] = s[j] - 32
				} else {
					b[j] = s[j]
				}
			}
			return string(b)
		}
	}
	return s
}
