package feed

import (
	"bytes"
	"time"

	"go.uber.org/zap"

	"gabble/internal/brain"
	"gabble/internal/state"
)

// Ingester feeds unseen feed items through the brain: fetch, strip markup,
// split into sentences, learn each one, append it to the corpus and mark the
// GUID seen. Feed trouble is logged and skipped, never fatal.
type Ingester struct {
	DB              *state.DB
	Corpus          *state.Corpus
	Brain           *brain.Brain
	Log             *zap.Logger
	CorrectSpelling bool
}

// IngestURL runs one pass over a single feed and returns how many items were
// newly learned.
func (in *Ingester) IngestURL(url string) (int, error) {
	body, err := Fetch(url)
	if err != nil {
		return 0, err
	}
	items, err := Parse(bytes.NewReader(body))
	if err != nil {
		return 0, err
	}

	learned := 0
	for _, it := range items {
		if it.GUID == "" || in.DB.SeenFeedItem(it.GUID) {
			continue
		}
		text := HTMLToText(it.Body)
		for _, sentence := range SplitSentences(text) {
			in.Brain.Learn(sentence, in.CorrectSpelling)
			if in.Corpus != nil {
				if err := in.Corpus.Append(sentence); err != nil {
					in.Log.Warn("corpus append failed", zap.Error(err))
				}
			}
		}
		in.DB.MarkFeedItem(it.GUID, url, it.Title)
		learned++
	}
	in.Log.Info("feed pass done",
		zap.String("url", url),
		zap.Int("items", len(items)),
		zap.Int("learned", learned))
	return learned, nil
}

// IngestAll runs one pass over every feed.
func (in *Ingester) IngestAll(urls []string) {
	for _, url := range urls {
		if _, err := in.IngestURL(url); err != nil {
			in.Log.Warn("feed pass failed", zap.String("url", url), zap.Error(err))
		}
	}
}

// Start polls the feeds on a ticker after one immediate pass. The returned
// stop func ends the loop.
func (in *Ingester) Start(urls []string, interval time.Duration) (stop func()) {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	t := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		in.IngestAll(urls)
		for {
			select {
			case <-t.C:
				in.IngestAll(urls)
			case <-done:
				t.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}
