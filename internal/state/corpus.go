package state

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Corpus is the line-oriented training text file: the only form the learned
// model is persisted in. Lines are appended as they are learned and replayed
// through the brain at startup.
type Corpus struct {
	path string
}

func NewCorpus(path string) *Corpus {
	return &Corpus{path: path}
}

// Append adds one training line. Inner whitespace (newlines included) is
// collapsed so the file stays one-line-per-fact.
func (c *Corpus) Append(line string) error {
	line = strings.Join(strings.Fields(line), " ")
	if line == "" {
		return nil
	}
	f, err := os.OpenFile(c.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("corpus append: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("corpus append: %w", err)
	}
	return nil
}

// Replay feeds every stored line to fn. A missing corpus file is an empty
// corpus.
func (c *Corpus) Replay(fn func(line string)) error {
	f, err := os.Open(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("corpus replay: %w", err)
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			fn(line)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("corpus replay: %w", err)
	}
	return nil
}
