package brain

import (
	"regexp"
	"strings"
	"unicode"
)

// EndToken marks the end of a learned word sequence. It is stored in the trie
// like any other word so generation can sample a natural sentence end.
const EndToken = ""

// A token is either a word (letters, digits, apostrophes; URLs stay embedded
// after a "://") or a maximal run of punctuation.
var tokenRe = regexp.MustCompile(`[\pL\pN']+(?:://[^\s]+)?|[^\pL\pN\s]+`)

// Tokenize splits text into lowercase word and punctuation tokens.
func Tokenize(text string) []string {
	return tokenRe.FindAllString(strings.ToLower(text), -1)
}

// TokenizeWithEnd tokenizes and appends the end sentinel. An empty input
// yields nil, not a lone sentinel.
func TokenizeWithEnd(text string) []string {
	words := Tokenize(text)
	if len(words) == 0 {
		return nil
	}
	return append(words, EndToken)
}

func startsWithLetter(w string) bool {
	for _, r := range w {
		return unicode.IsLetter(r)
	}
	return false
}

func startsWithAlnum(w string) bool {
	for _, r := range w {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	return false
}
