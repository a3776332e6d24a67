package brain

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const (
	// DefaultMarkovOrder bounds chain depth per root word.
	DefaultMarkovOrder = 3
	// DefaultMaxBlendChance caps how often lookups defer to an ancestor.
	DefaultMaxBlendChance = 0.75

	// Hard ceiling per generated direction. Continuation re-anchoring makes
	// unbounded rambles possible on pathological tries; everything sane ends
	// on a sentinel long before this.
	maxUtteranceWords = 256
)

// Brain learns word-sequence statistics and generates utterances from them.
// It may hold a read-only reference to a parent Brain whose statistics are
// probabilistically blended in; the parent must outlive this Brain and the
// chain must be acyclic.
//
// Every public call locks the instance, so one Brain is safe for concurrent
// use. Ancestor brains are locked briefly per access while blending.
type Brain struct {
	mu sync.Mutex

	forward  model
	backward model
	parent   *Brain
	lex      *Lexicon

	order     int
	maxBlend  float64
	rootCount int

	rng *rand.Rand
}

// NewBrain creates an empty brain. parent may be nil; lex must not be.
func NewBrain(lex *Lexicon, parent *Brain) *Brain {
	if lex == nil {
		panic("brain: nil lexicon")
	}
	return &Brain{
		forward:  model{},
		backward: model{},
		parent:   parent,
		lex:      lex,
		order:    DefaultMarkovOrder,
		maxBlend: DefaultMaxBlendChance,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetMarkovOrder sets the maximum chain depth per root. Rejects values < 1.
func (b *Brain) SetMarkovOrder(n int) error {
	if n < 1 {
		return fmt.Errorf("brain: markov order %d out of range (want >= 1)", n)
	}
	b.mu.Lock()
	b.order = n
	b.mu.Unlock()
	return nil
}

// SetMaxBlendChance sets the ceiling on the chance of deferring to an
// ancestor during lookup. Rejects values outside [0,1].
func (b *Brain) SetMaxBlendChance(p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("brain: max blend chance %v out of range (want 0..1)", p)
	}
	b.mu.Lock()
	b.maxBlend = p
	b.mu.Unlock()
	return nil
}

// SetRand replaces the random source. A seeded source makes generation
// reproducible.
func (b *Brain) SetRand(rng *rand.Rand) {
	b.mu.Lock()
	b.rng = rng
	b.mu.Unlock()
}

// TotalRootCount returns the number of learning events applied to this brain.
func (b *Brain) TotalRootCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rootCount
}

// Reset drops everything the brain has learned. Individual facts are never
// deleted; this is the only way back.
func (b *Brain) Reset() {
	b.mu.Lock()
	b.forward = model{}
	b.backward = model{}
	b.rootCount = 0
	b.mu.Unlock()
}

// Learn records one line of training text. Lines whose token count (sentinel
// included) does not exceed the markov order are ignored: short inputs make
// trivial chains. Empty input is a no-op.
func (b *Brain) Learn(line string, correctSpelling bool) {
	words := TokenizeWithEnd(line)
	if words == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(words) <= b.order {
		return
	}
	if correctSpelling {
		for i, w := range words[:len(words)-1] {
			words[i] = b.lex.CorrectSpelling(w)
		}
	}

	b.learnSequence(b.forward, words)

	rev := make([]string, 0, len(words))
	for i := len(words) - 2; i >= 0; i-- {
		rev = append(rev, words[i])
	}
	rev = append(rev, EndToken)
	b.learnSequence(b.backward, rev)
}

// learnSequence records every depth-limited chain window of words into m.
// The last real word is reached only as a child (with its sentinel), never
// as a root, so one line of N words adds N-1 root events.
func (b *Brain) learnSequence(m model, words []string) {
	for i := 0; i < len(words)-2; i++ {
		cur := m.root(words[i])
		b.rootCount++
		for j := i + 1; j < i+b.order && j < len(words); j++ {
			cur = cur.addChild(words[j])
		}
	}
}

func (b *Brain) modelFor(forward bool) model {
	if forward {
		return b.forward
	}
	return b.backward
}

// withBrain runs fn with other's lock held. The caller already holds b's own
// lock; ascent only ever locks upward, so the ordering cannot deadlock.
func (b *Brain) withBrain(other *Brain, fn func()) {
	if other == b {
		fn()
		return
	}
	other.mu.Lock()
	fn()
	other.mu.Unlock()
}

// blendChance is the probability of deferring from cur to cur.parent: the
// parent's share of the combined corpus, capped by the generating brain's
// ceiling.
func (b *Brain) blendChance(cur *Brain) float64 {
	var p, c int
	b.withBrain(cur, func() { c = cur.rootCount })
	b.withBrain(cur.parent, func() { p = cur.parent.rootCount })
	if p+c == 0 {
		return 0
	}
	chance := float64(p) / float64(p+c)
	if chance > b.maxBlend {
		chance = b.maxBlend
	}
	return chance
}

func (b *Brain) flip(p float64) bool {
	return b.rng.Float64() < p
}

// WordProbability returns the word's share of all root events, summed across
// the blend chain when blending. A relative signal only.
func (b *Brain) WordProbability(word string, blend bool) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.wordProbabilityFrom(b, word, blend)
}

func (b *Brain) wordProbabilityFrom(from *Brain, word string, blend bool) float64 {
	count, total := 0, 0
	for cur := from; cur != nil; cur = cur.parent {
		b.withBrain(cur, func() {
			count += cur.forward.rootCount(word) + cur.backward.rootCount(word)
			total += cur.rootCount
		})
		if !blend {
			break
		}
	}
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}
