package feed

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Item is one feed entry reduced to what ingestion needs. Body may still
// contain HTML.
type Item struct {
	GUID  string
	Title string
	Body  string
}

type rssDoc struct {
	XMLName xml.Name  `xml:"rss"`
	Items   []rssItem `xml:"channel>item"`
}

type rssItem struct {
	GUID        string `xml:"guid"`
	Link        string `xml:"link"`
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Content     string `xml:"http://purl.org/rss/1.0/modules/content/ encoded"`
}

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID      string `xml:"id"`
	Title   string `xml:"title"`
	Summary string `xml:"summary"`
	Content string `xml:"content"`
}

// Parse reads an RSS 2.0 or Atom document.
func Parse(r io.Reader) ([]Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("feed: read: %w", err)
	}

	var rd rssDoc
	if err := xml.Unmarshal(data, &rd); err == nil {
		items := make([]Item, 0, len(rd.Items))
		for _, it := range rd.Items {
			body := it.Content
			if body == "" {
				body = it.Description
			}
			items = append(items, Item{
				GUID:  firstNonEmpty(it.GUID, it.Link, it.Title),
				Title: it.Title,
				Body:  body,
			})
		}
		return items, nil
	}

	var ad atomFeed
	if err := xml.Unmarshal(data, &ad); err == nil {
		items := make([]Item, 0, len(ad.Entries))
		for _, e := range ad.Entries {
			body := e.Content
			if body == "" {
				body = e.Summary
			}
			items = append(items, Item{
				GUID:  firstNonEmpty(e.ID, e.Title),
				Title: e.Title,
				Body:  body,
			})
		}
		return items, nil
	}

	return nil, errors.New("feed: neither RSS nor Atom")
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

var client = &http.Client{Timeout: 30 * time.Second}

// Fetch downloads a feed document, bounded to 2 MB.
func Fetch(rawURL string) ([]byte, error) {
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "gabble/0.1 (feed reader)")
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, errors.New("feed: http status " + resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 2_000_000))
}
