package brain

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetResponse(t *testing.T) {
	t.Run("replies to known input", func(t *testing.T) {
		b := trainedBrain(11)
		text, ok := b.GetResponse("tell me about the cat", 3, false, false, nil)
		require.True(t, ok)
		assert.NotEmpty(t, text)
	})

	t.Run("empty input", func(t *testing.T) {
		b := trainedBrain(11)
		_, ok := b.GetResponse("", 1, false, false, nil)
		assert.False(t, ok)
	})

	t.Run("all tokens unknown", func(t *testing.T) {
		b := trainedBrain(11)
		_, ok := b.GetResponse("quantum flux capacitor", 1, false, false, nil)
		assert.False(t, ok)
	})

	t.Run("all tokens bad keywords", func(t *testing.T) {
		lex := NewLexicon()
		lex.AddBadKeyword("cat")
		b := NewBrain(lex, nil)
		b.SetRand(rand.New(rand.NewSource(5)))
		b.Learn("the cat sat on the mat", false)
		lex.AddBadKeyword("the")
		lex.AddBadKeyword("sat")
		lex.AddBadKeyword("on")
		lex.AddBadKeyword("mat")
		_, ok := b.GetResponse("cat sat mat", 1, false, false, nil)
		assert.False(t, ok)
	})

	t.Run("non-positive scores are rejected", func(t *testing.T) {
		b := trainedBrain(11)
		_, ok := b.GetResponse("the cat", 3, false, false, func(*Utterance) float64 { return -1 })
		assert.False(t, ok)
	})

	t.Run("scorer picks the winner", func(t *testing.T) {
		b := trainedBrain(11)
		text, ok := b.GetResponse("cat dog bird", 5, false, false, func(u *Utterance) float64 {
			return float64(len(u.Words))
		})
		require.True(t, ok)
		assert.NotEmpty(t, text)
	})

	t.Run("spelling correction recovers the keyword", func(t *testing.T) {
		lex := NewLexicon()
		lex.AddSpelling("kat", "cat")
		b := NewBrain(lex, nil)
		b.SetRand(rand.New(rand.NewSource(9)))
		b.Learn("the cat sat on the mat", false)
		b.Learn("the cat chased a mouse", false)
		_, ok := b.GetResponse("kat", 1, false, true, nil)
		assert.True(t, ok)
	})
}

func TestGetRandomUtterance(t *testing.T) {
	t.Run("empty brain stays silent", func(t *testing.T) {
		b := NewBrain(NewLexicon(), nil)
		_, ok := b.GetRandomUtterance(false)
		assert.False(t, ok)
	})

	t.Run("trained brain speaks", func(t *testing.T) {
		b := trainedBrain(13)
		text, ok := b.GetRandomUtterance(false)
		require.True(t, ok)
		assert.NotEmpty(t, text)
	})

	t.Run("never contains a bad keyword", func(t *testing.T) {
		lex := NewLexicon()
		lex.AddBadKeyword("rug")
		b := NewBrain(lex, nil)
		b.SetRand(rand.New(rand.NewSource(17)))
		b.Learn("the cat sat on the mat", false)
		b.Learn("the dog sat on the rug", false)
		for i := 0; i < 50; i++ {
			text, ok := b.GetRandomUtterance(false)
			if !ok {
				continue
			}
			for _, w := range Tokenize(text) {
				assert.NotEqual(t, "rug", w)
			}
		}
	})
}

func TestGetGreeting(t *testing.T) {
	lex := NewLexicon()
	lex.AddGreeting("hello")
	lex.AddGreeting("morning")
	b := NewBrain(lex, nil)
	b.SetRand(rand.New(rand.NewSource(21)))

	_, ok := b.GetGreeting(false)
	assert.False(t, ok, "greeting words must be known before greeting")

	b.Learn("hello there my old friend", false)
	text, ok := b.GetGreeting(false)
	require.True(t, ok)
	assert.True(t, strings.Contains(text, "hello"))
}
