package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gabble/internal/brain"
	"gabble/internal/state"
)

func TestAppendFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "training.txt")
	require.NoError(t, os.WriteFile(src, []byte(
		"# header comment\nthe cat sat on the mat\n\nthe dog sat on the rug\n"), 0o644))

	corpus := state.NewCorpus(filepath.Join(dir, "corpus.txt"))
	n, err := appendFile(corpus, src)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var lines []string
	require.NoError(t, corpus.Replay(func(l string) { lines = append(lines, l) }))
	assert.Len(t, lines, 2)
}

func TestChatScorerRejectsEcho(t *testing.T) {
	score := chatScorer("the cat sat")
	echo := &brain.Utterance{
		Keyword:                "cat",
		Words:                  []string{"the", "cat", "sat"},
		AverageWordProbability: 0.4,
	}
	assert.Zero(t, score(echo))

	fresh := &brain.Utterance{
		Keyword:                "cat",
		Words:                  []string{"the", "cat", "slept"},
		AverageWordProbability: 0.4,
	}
	assert.Equal(t, 0.4, score(fresh))
}
