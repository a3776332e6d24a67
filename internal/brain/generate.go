package brain

// chooseFrom resolves the root node for word, starting at brain start and
// ascending the parent chain. Every step upward is gated by the blend coin,
// so a zero blend ceiling pins lookups to the starting brain. A hit in a
// brain that has a parent flips the coin too; when it wins and the ancestor
// chain can also serve the word, the ancestor's node is preferred. The
// supplying brain is returned so probability lookups query the instance that
// produced the match.
func (b *Brain) chooseFrom(start *Brain, word string, forward, blend bool) (*node, *Brain) {
	for cur := start; cur != nil; cur = cur.parent {
		var n *node
		b.withBrain(cur, func() { n = cur.modelFor(forward).lookup(word) })
		if n != nil {
			if blend && cur.parent != nil && b.flip(b.blendChance(cur)) {
				if up, upBrain := b.chooseFrom(cur.parent, word, forward, blend); up != nil {
					return up, upBrain
				}
			}
			return n, cur
		}
		if !blend || cur.parent == nil || !b.flip(b.blendChance(cur)) {
			break
		}
	}
	return nil, nil
}

// continuationFrom re-anchors an in-progress sequence: it looks up the root
// for the last order-1 context words and walks the remaining context down the
// trie. Escalation and blending mirror chooseFrom. Nodes with no children
// cannot extend anything and count as misses.
func (b *Brain) continuationFrom(start *Brain, ctx []string, forward, blend bool) (*node, *Brain) {
	for cur := start; cur != nil; cur = cur.parent {
		var n *node
		b.withBrain(cur, func() {
			n = lookupContinuation(cur.modelFor(forward), ctx, b.order)
			if n != nil && len(n.children) == 0 {
				n = nil
			}
		})
		if n != nil {
			if blend && cur.parent != nil && b.flip(b.blendChance(cur)) {
				if up, upBrain := b.continuationFrom(cur.parent, ctx, forward, blend); up != nil {
					return up, upBrain
				}
			}
			return n, cur
		}
		if !blend || cur.parent == nil || !b.flip(b.blendChance(cur)) {
			break
		}
	}
	return nil, nil
}

func lookupContinuation(m model, ctx []string, order int) *node {
	start := len(ctx) - order + 1
	if start < 0 {
		start = 0
	}
	if start >= len(ctx) {
		start = len(ctx) - 1
	}
	n := m.lookup(ctx[start])
	for k := start + 1; n != nil && k < len(ctx); k++ {
		n = n.child(ctx[k])
	}
	return n
}

// addWords extends the sequence from node start by weighted random walk. The
// fallback order on an exhausted chain is fixed: re-anchor via continuation
// lookup first, then retry the starting node once, then stop. Returns the
// generated sequence (keyword first) and the summed corpus probability of the
// generated words.
func (b *Brain) addWords(keyword string, start *node, src *Brain, forward, blend bool) ([]string, float64) {
	seq := []string{keyword}
	cur, curSrc := start, src
	triedStart := false
	var probSum float64

	for len(seq) < maxUtteranceWords {
		var child *node
		b.withBrain(curSrc, func() { child = cur.randomChild(b.rng) })
		if child == nil {
			if cont, contSrc := b.continuationFrom(b, seq, forward, blend); cont != nil {
				cur, curSrc = cont, contSrc
				continue
			}
			if !triedStart {
				triedStart = true
				cur, curSrc = start, src
				continue
			}
			break
		}
		if child.word == EndToken {
			break
		}
		seq = append(seq, child.word)
		probSum += b.wordProbabilityFrom(curSrc, child.word, blend)
		cur = child
	}
	return seq, probSum
}

// GenerateUtterance builds one candidate utterance anchored at keyword, or
// nil when the keyword is unknown or the result would be a single word.
func (b *Brain) GenerateUtterance(keyword string, blend bool) *Utterance {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.generateUtterance(keyword, blend)
}

func (b *Brain) generateUtterance(keyword string, blend bool) *Utterance {
	// The direction generated first anchors harder: its continuations see
	// only its own context.
	dirs := [2]bool{true, false}
	if b.flip(0.5) {
		dirs[0], dirs[1] = false, true
	}

	var fwd, bwd []string
	var probSum float64
	for _, forward := range dirs {
		n, src := b.chooseFrom(b, keyword, forward, blend)
		if n == nil {
			continue
		}
		seq, p := b.addWords(keyword, n, src, forward, blend)
		probSum += p
		if forward {
			fwd = seq[1:]
		} else {
			bwd = seq[1:]
		}
	}

	total := 1 + len(fwd) + len(bwd)
	if total < 2 {
		return nil
	}

	words := make([]string, 0, total)
	for i := len(bwd) - 1; i >= 0; i-- {
		words = append(words, bwd[i])
	}
	words = append(words, keyword)
	words = append(words, fwd...)

	return &Utterance{
		Keyword:                keyword,
		Words:                  words,
		AverageWordProbability: probSum / float64(total-1),
	}
}
