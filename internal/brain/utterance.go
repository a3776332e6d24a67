package brain

// Utterance is an immutable generation result. AverageWordProbability is the
// mean corpus probability of the generated words (keyword excluded); only its
// relative ordering means anything.
type Utterance struct {
	Keyword                string
	Words                  []string
	AverageWordProbability float64
}

// Text renders the utterance for display.
func (u *Utterance) Text() string {
	return Render(u.Words)
}

func (u *Utterance) containsBadKeyword(lex *Lexicon) bool {
	for _, w := range u.Words {
		if startsWithAlnum(w) && lex.IsBadKeyword(w) {
			return true
		}
	}
	return false
}
