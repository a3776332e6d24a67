package brain

import (
	"math/rand"
	"sort"
)

// node is one position in a markov trie: a word observed count times in its
// parent's context, with a weighted table of the words that followed it.
// children stays sorted by word so lookup is a binary search; childSum always
// equals the sum of the children's counts so a weighted draw is one scan.
type node struct {
	word     string
	count    int
	childSum int
	children []*node
	scanFrom int
}

func newNode(word string) *node {
	return &node{word: word}
}

// addChild bumps the child for word, inserting it in sorted position first if
// needed, and returns it. The parent's childSum moves in lockstep.
func (n *node) addChild(word string) *node {
	i := sort.Search(len(n.children), func(i int) bool {
		return n.children[i].word >= word
	})
	if i == len(n.children) || n.children[i].word != word {
		c := newNode(word)
		if len(n.children) == cap(n.children) {
			grown := make([]*node, len(n.children), max(4, cap(n.children)*2))
			copy(grown, n.children)
			n.children = grown
		}
		n.children = append(n.children, nil)
		copy(n.children[i+1:], n.children[i:])
		n.children[i] = c
	}
	n.children[i].count++
	n.childSum++
	return n.children[i]
}

// child returns the child for word, or nil.
func (n *node) child(word string) *node {
	i := sort.Search(len(n.children), func(i int) bool {
		return n.children[i].word >= word
	})
	if i < len(n.children) && n.children[i].word == word {
		return n.children[i]
	}
	return nil
}

// randomChild draws a child weighted by count. The cumulative scan starts at
// a rotating index so equal-count children do not favor the front of the
// slice. Returns nil when the node has no children.
func (n *node) randomChild(rng *rand.Rand) *node {
	if len(n.children) == 0 {
		return nil
	}
	n.scanFrom = (n.scanFrom + 1) % len(n.children)
	left := rng.Intn(n.childSum) + 1
	for i := 0; i < len(n.children); i++ {
		c := n.children[(n.scanFrom+i)%len(n.children)]
		left -= c.count
		if left <= 0 {
			return c
		}
	}
	// unreachable while the childSum invariant holds
	return n.children[0]
}
