package brain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLexiconFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadLexicon(t *testing.T) {
	dir := t.TempDir()
	writeLexiconFile(t, dir, "badwords", "# boring words\nThe\na\n\nan\n")
	writeLexiconFile(t, dir, "greetings", "hello\nhi\n")
	writeLexiconFile(t, dir, "spellings", "teh the\ngrammer grammar one-way\n")
	writeLexiconFile(t, dir, "swaps", "you me\nyour my\n")

	lex, err := LoadLexicon(dir)
	require.NoError(t, err)

	assert.True(t, lex.IsBadKeyword("the"))
	assert.True(t, lex.IsBadKeyword("an"))
	assert.False(t, lex.IsBadKeyword("cat"))
	assert.True(t, lex.IsBadKeyword("..."), "punctuation can never seed")

	assert.Equal(t, []string{"hello", "hi"}, lex.Greetings())

	assert.Equal(t, "the", lex.CorrectSpelling("teh"))
	assert.Equal(t, "teh", lex.CorrectSpelling("the"), "pairs are symmetric by default")
	assert.Equal(t, "grammar", lex.CorrectSpelling("grammer"))
	assert.Equal(t, "grammar", lex.CorrectSpelling("grammar"), "marked pairs are one-way")
	assert.Equal(t, "'tis", lex.CorrectSpelling("'tis"), "non-letter leads are untouched")

	s, ok := lex.Swap("you")
	assert.True(t, ok)
	assert.Equal(t, "me", s)
	_, ok = lex.Swap("them")
	assert.False(t, ok)
}

func TestLoadLexiconMissingFiles(t *testing.T) {
	lex, err := LoadLexicon(t.TempDir())
	require.NoError(t, err)
	assert.False(t, lex.IsBadKeyword("cat"))
	assert.Empty(t, lex.Greetings())
}
