package brain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	t.Run("words and punctuation runs", func(t *testing.T) {
		assert.Equal(t, []string{"hello", ",", "world", "!"}, Tokenize("Hello, World!"))
		assert.Equal(t, []string{"wait", "..."}, Tokenize("wait..."))
	})

	t.Run("case folding", func(t *testing.T) {
		assert.Equal(t, []string{"shout"}, Tokenize("SHOUT"))
	})

	t.Run("embedded url stays one token", func(t *testing.T) {
		got := Tokenize("see http://example.com/a?b=1 now")
		assert.Equal(t, []string{"see", "http://example.com/a?b=1", "now"}, got)
	})

	t.Run("apostrophes stay inside words", func(t *testing.T) {
		assert.Equal(t, []string{"don't", "stop"}, Tokenize("don't stop"))
	})
}

func TestTokenizeWithEnd(t *testing.T) {
	assert.Nil(t, TokenizeWithEnd("   "))
	assert.Equal(t, []string{"a", "b", EndToken}, TokenizeWithEnd("a b"))
}
