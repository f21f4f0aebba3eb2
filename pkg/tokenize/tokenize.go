// Package tokenize splits a raw argument string into quote-aware tokens.
// It mimics shell word splitting but keeps quote characters in place: a token
// like `"two words"` is emitted verbatim, and callers decide later whether to
// strip the quotes (values) or not (argument keys are never quoted).
package tokenize

import (
	"errors"
	"fmt"
	"strings"
)

// QuoteChars are the characters that open and close a quoted region.
const QuoteChars = `"'`

// ErrUnterminatedQuote is returned when a quote is opened and never closed.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Token is a single unit of argument text. The raw text keeps any wrapping
// quote characters so downstream code can tell a quoted token from a bare one.
type Token struct {
	raw string
}

// Raw returns the token text exactly as it appeared in the input,
// quotes included.
func (t Token) Raw() string { return t.raw }

// Quoted reports whether the token is wrapped in a matching pair of
// quote characters.
func (t Token) Quoted() bool { return IsQuoted(t.raw) }

// Value returns the token text with one wrapping quote pair removed.
// Unquoted tokens are returned as-is.
func (t Token) Value() string { return Unquote(t.raw) }

// IsQuoted reports whether s starts and ends with the same quote character.
func IsQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	for _, q := range QuoteChars {
		if rune(s[0]) == q && rune(s[len(s)-1]) == q {
			return true
		}
	}
	return false
}

// Unquote strips one wrapping quote pair from s, if present.
func Unquote(s string) string {
	if IsQuoted(s) {
		return s[1 : len(s)-1]
	}
	return s
}

func (t Token) String() string { return t.raw }

func isSpace(r rune) bool { return r == ' ' || r == '\t' }

func isQuote(r rune) bool { return strings.ContainsRune(QuoteChars, r) }

// Split splits text into tokens in a single left-to-right scan.
//
// Whitespace outside quotes separates tokens and consecutive whitespace
// collapses. A quote character opens a quoted region closed only by the same
// character; the other quote kind is an ordinary character inside it. Within
// a quoted region a backslash followed by the open quote character decodes to
// a literal quote; every other backslash passes through unchanged.
func Split(text string) ([]Token, error) {
	var (
		tokens  []Token
		current strings.Builder
		started bool
		quote   rune // open quote char, 0 when outside a quoted region
	)

	flush := func() {
		if started {
			tokens = append(tokens, Token{raw: current.String()})
			current.Reset()
			started = false
		}
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if quote != 0 {
			if r == '\\' && i+1 < len(runes) && runes[i+1] == quote {
				current.WriteRune(quote)
				i++
				continue
			}
			current.WriteRune(r)
			if r == quote {
				quote = 0
			}
			continue
		}

		switch {
		case isSpace(r):
			flush()
		case isQuote(r):
			quote = r
			started = true
			current.WriteRune(r)
		default:
			started = true
			current.WriteRune(r)
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("%w: missing closing %q", ErrUnterminatedQuote, quote)
	}
	flush()
	return tokens, nil
}
