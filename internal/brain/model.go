package brain

// model maps a root word to the trie of chains rooted at it. A root node's
// count is its root frequency: how many times the word opened a chain.
type model map[string]*node

// root bumps (creating if needed) the root node for word and returns it.
func (m model) root(word string) *node {
	n, ok := m[word]
	if !ok {
		n = newNode(word)
		m[word] = n
	}
	n.count++
	return n
}

// lookup returns the root node for word without side effects.
func (m model) lookup(word string) *node {
	return m[word]
}

// rootCount returns the root frequency of word, zero if unknown.
func (m model) rootCount(word string) int {
	if n, ok := m[word]; ok {
		return n.count
	}
	return 0
}
