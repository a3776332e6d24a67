package brain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Render reassembles tokens into displayable text. Spacing rules: quotes
// toggle between opening (space before, none after) and closing; an opening
// parenthesis gets a space before it and bumps a depth counter; $ # * & force
// a preceding space; / suppresses the next automatic space; words, digits and
// the literal -- get an automatic preceding space unless suppressed; anything
// else is appended flush.
func Render(words []string) string {
	var sb strings.Builder
	quoteOpen := false
	parenDepth := 0
	suppress := false

	for _, w := range words {
		if w == EndToken {
			continue
		}
		first, _ := utf8.DecodeRuneInString(w)
		space := false
		nextSuppress := false

		switch {
		case first == '"':
			if quoteOpen {
				quoteOpen = false
			} else {
				quoteOpen = true
				space = true
				nextSuppress = true
			}
		case first == '(':
			space = true
			parenDepth++
			nextSuppress = true
		case first == ')':
			if parenDepth > 0 {
				parenDepth--
			}
		case first == '/':
			nextSuppress = true
		case first == '$' || first == '#' || first == '*' || first == '&':
			space = true
		case unicode.IsLetter(first) || unicode.IsDigit(first) || w == "--":
			space = !suppress
		}

		if space && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(w)
		suppress = nextSuppress
	}
	return sb.String()
}
