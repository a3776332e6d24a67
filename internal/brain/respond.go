package brain

import "sort"

const (
	triesPerCandidate = 5
	randomTries       = 10
)

// Scorer ranks a candidate utterance. Only results with a positive score are
// ever returned.
type Scorer func(*Utterance) float64

// usageCount is how often word has been seen as a root: the larger of its
// forward and backward root frequencies, summed across the blend chain.
func (b *Brain) usageCount(word string, blend bool) int {
	total := 0
	for cur := b; cur != nil; cur = cur.parent {
		b.withBrain(cur, func() {
			f := cur.forward.rootCount(word)
			bk := cur.backward.rootCount(word)
			if bk > f {
				f = bk
			}
			total += f
		})
		if !blend {
			break
		}
	}
	return total
}

// pickKeyword draws a candidate with weight maxCount-count+1: rarer words are
// favored, every known word keeps a nonzero chance.
func (b *Brain) pickKeyword(words []string, counts []int) string {
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	sum := 0
	for _, c := range counts {
		sum += maxCount - c + 1
	}
	left := b.rng.Intn(sum) + 1
	for i, c := range counts {
		left -= maxCount - c + 1
		if left <= 0 {
			return words[i]
		}
	}
	return words[len(words)-1]
}

// GetResponse generates a reply to input. Keywords come from the input's
// usable tokens (bad keywords dropped, swaps applied at random); count
// candidates are generated with up to 5 attempts each, scored, and the best
// positively-scored one is rendered. A nil scorer ranks by average word
// probability. Returns false when nothing can be said.
func (b *Brain) GetResponse(input string, count int, blend, correctSpelling bool, score Scorer) (string, bool) {
	tokens := Tokenize(input)
	if len(tokens) == 0 {
		return "", false
	}
	if count < 1 {
		count = 1
	}
	if score == nil {
		score = func(u *Utterance) float64 { return u.AverageWordProbability }
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var words []string
	var counts []int
	seen := map[string]struct{}{}
	for _, w := range tokens {
		if correctSpelling {
			w = b.lex.CorrectSpelling(w)
		}
		if b.lex.IsBadKeyword(w) {
			continue
		}
		if s, ok := b.lex.Swap(w); ok && b.flip(0.5) {
			w = s
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if c := b.usageCount(w, blend); c > 0 {
			words = append(words, w)
			counts = append(counts, c)
		}
	}
	if len(words) == 0 {
		return "", false
	}

	var best *Utterance
	var bestScore float64
	for i := 0; i < count; i++ {
		var u *Utterance
		for try := 0; try < triesPerCandidate && u == nil; try++ {
			u = b.generateUtterance(b.pickKeyword(words, counts), blend)
		}
		if u == nil {
			continue
		}
		if s := score(u); s > 0 && (best == nil || s > bestScore) {
			best, bestScore = u, s
		}
	}
	if best == nil {
		return "", false
	}
	return best.Text(), true
}

// GetRandomUtterance speaks unprompted: a rarity-weighted seed from the
// brain's own root words (or, when blending, the nearest ancestor that knows
// anything) anchors a normal generation. Results containing bad keywords are
// retried within the attempt budget.
func (b *Brain) GetRandomUtterance(blend bool) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	src := b
	for blend && src != nil {
		empty := false
		b.withBrain(src, func() { empty = len(src.forward) == 0 })
		if !empty {
			break
		}
		src = src.parent
	}
	if src == nil {
		return "", false
	}

	var words []string
	b.withBrain(src, func() {
		for w := range src.forward {
			if !b.lex.IsBadKeyword(w) {
				words = append(words, w)
			}
		}
	})
	if len(words) == 0 {
		return "", false
	}
	sort.Strings(words)
	counts := make([]int, len(words))
	for i, w := range words {
		b.withBrain(src, func() {
			f := src.forward.rootCount(w)
			if bk := src.backward.rootCount(w); bk > f {
				f = bk
			}
			counts[i] = f
		})
	}

	for try := 0; try < randomTries; try++ {
		u := b.generateUtterance(b.pickKeyword(words, counts), blend)
		if u == nil || u.containsBadKeyword(b.lex) {
			continue
		}
		return u.Text(), true
	}
	return "", false
}

// GetGreeting generates an utterance seeded by a known greeting word.
func (b *Brain) GetGreeting(blend bool) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var words []string
	var counts []int
	for _, w := range b.lex.Greetings() {
		if c := b.usageCount(w, blend); c > 0 {
			words = append(words, w)
			counts = append(counts, c)
		}
	}
	if len(words) == 0 {
		return "", false
	}
	for try := 0; try < triesPerCandidate; try++ {
		if u := b.generateUtterance(b.pickKeyword(words, counts), blend); u != nil {
			return u.Text(), true
		}
	}
	return "", false
}
