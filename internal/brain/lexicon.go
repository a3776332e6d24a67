package brain

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Lexicon holds the static lookup tables shared by every brain in the
// process: words never used as keywords, greeting seeds, spelling fixes and
// synonym swaps. Loaded once at startup and read-only afterwards.
type Lexicon struct {
	bad       map[string]struct{}
	greetings []string
	spellings map[string]string
	swaps     map[string]string
}

// NewLexicon returns an empty lexicon. Useful for tests and for brains that
// run without resource files.
func NewLexicon() *Lexicon {
	return &Lexicon{
		bad:       map[string]struct{}{},
		spellings: map[string]string{},
		swaps:     map[string]string{},
	}
}

// LoadLexicon reads badwords, greetings, spellings and swaps files from dir.
// Missing files are fine; an unreadable file is not.
func LoadLexicon(dir string) (*Lexicon, error) {
	lex := NewLexicon()
	if err := readLines(filepath.Join(dir, "badwords"), func(fields []string) {
		lex.bad[fields[0]] = struct{}{}
	}); err != nil {
		return nil, err
	}
	if err := readLines(filepath.Join(dir, "greetings"), func(fields []string) {
		lex.greetings = append(lex.greetings, fields[0])
	}); err != nil {
		return nil, err
	}
	if err := readLines(filepath.Join(dir, "spellings"), func(fields []string) {
		if len(fields) < 2 {
			return
		}
		lex.spellings[fields[0]] = fields[1]
		// pairs are symmetric unless a third field marks them one-way
		if len(fields) == 2 {
			lex.spellings[fields[1]] = fields[0]
		}
	}); err != nil {
		return nil, err
	}
	if err := readLines(filepath.Join(dir, "swaps"), func(fields []string) {
		if len(fields) < 2 {
			return
		}
		lex.swaps[fields[0]] = fields[1]
	}); err != nil {
		return nil, err
	}
	return lex, nil
}

// readLines feeds the whitespace-split fields of every non-comment line to
// fn, case-folded. A missing file is treated as empty.
func readLines(path string, fn func(fields []string)) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(strings.ToLower(sc.Text()))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 0 {
			fn(fields)
		}
	}
	return sc.Err()
}

// IsBadKeyword reports whether w must not seed an utterance: listed words and
// anything that does not start with a letter or digit.
func (l *Lexicon) IsBadKeyword(w string) bool {
	if !startsWithAlnum(w) {
		return true
	}
	_, ok := l.bad[w]
	return ok
}

// CorrectSpelling returns the corrected form of w, or w itself. Tokens that
// do not start with a letter are left alone.
func (l *Lexicon) CorrectSpelling(w string) string {
	if !startsWithLetter(w) {
		return w
	}
	if c, ok := l.spellings[strings.ToLower(w)]; ok {
		return c
	}
	return w
}

// Swap returns the synonym for w and whether one exists.
func (l *Lexicon) Swap(w string) (string, bool) {
	s, ok := l.swaps[w]
	return s, ok
}

// Greetings returns the greeting seed words.
func (l *Lexicon) Greetings() []string { return l.greetings }

// AddBadKeyword and friends exist for tests and embedded setups that build a
// lexicon in code instead of from files.
func (l *Lexicon) AddBadKeyword(w string) { l.bad[strings.ToLower(w)] = struct{}{} }

func (l *Lexicon) AddGreeting(w string) { l.greetings = append(l.greetings, strings.ToLower(w)) }

func (l *Lexicon) AddSpelling(from, to string) {
	l.spellings[strings.ToLower(from)] = strings.ToLower(to)
}

func (l *Lexicon) AddSwap(from, to string) { l.swaps[strings.ToLower(from)] = strings.ToLower(to) }
