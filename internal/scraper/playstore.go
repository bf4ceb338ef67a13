package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/seenimoa/reviewpulse/pkg/models"
)

// Play Store review listing goes through the batchexecute RPC endpoint
// used by the web store. Each page returns up to pageSize reviews plus a
// continuation token; an absent token means the feed is exhausted.
const (
	playRPCID    = "UsvDTd"
	playPageSize = 150
	playSortNew  = 2
)

// scrapePlayStore pages through the review feed, newest first, keeping
// records at or after the cutoff. Any per-page error ends the feed.
func (s *Scraper) scrapePlayStore(ctx context.Context) models.Collection {
	fmt.Printf("🤖 Scraping Play Store reviews for %s...\n", s.cfg.AndroidAppID)

	var out models.Collection
	token := ""
	for {
		reviews, next, err := s.fetchPlayPage(ctx, token)
		if err != nil {
			s.log.WithError(err).Warn("play store page fetch failed, treating as end of feed")
			break
		}
		if len(reviews) == 0 {
			break
		}

		pastCutoff := false
		for _, r := range reviews {
			if r.Date.Before(s.cutoff) {
				pastCutoff = true
				continue
			}
			out = append(out, r)
		}
		// Feed is newest-first, so once a page crosses the cutoff
		// everything after it is older.
		if pastCutoff || next == "" {
			break
		}
		token = next
	}

	fmt.Printf("✅ Collected %d Android reviews\n", len(out))
	return out
}

// fetchPlayPage requests one batchexecute page and parses its reviews.
func (s *Scraper) fetchPlayPage(ctx context.Context, token string) ([]models.Review, string, error) {
	reqBody := playRequestBody(s.cfg.AndroidAppID, token)

	endpoint := fmt.Sprintf("%s?hl=en&gl=%s", s.playURL, s.cfg.Country)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(reqBody))
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("play store POST: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", &ErrHTTP{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	return parsePlayBatch(body)
}

// playRequestBody builds the f.req form payload for one review page.
func playRequestBody(appID, token string) string {
	tok := "null"
	if token != "" {
		b, _ := json.Marshal(token)
		tok = string(b)
	}
	inner := fmt.Sprintf(`[null,null,[2,%d,[%d,null,%s],null,[]],["%s",7]]`,
		playSortNew, playPageSize, tok, appID)
	escaped, _ := json.Marshal(inner)
	freq := fmt.Sprintf(`[[["%s",%s,null,"generic"]]]`, playRPCID, string(escaped))
	return "f.req=" + url.QueryEscape(freq)
}

// parsePlayBatch unwraps the anti-XSSI envelope and extracts reviews
// plus the continuation token. The payload is a doubly JSON-encoded
// positional array, so every access is defensive.
func parsePlayBatch(body []byte) ([]models.Review, string, error) {
	text := string(body)
	if i := strings.Index(text, "\n"); i >= 0 && strings.HasPrefix(text, ")]}'") {
		text = text[i+1:]
	}

	var envelope []any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &envelope); err != nil {
		return nil, "", fmt.Errorf("parse envelope: %w", err)
	}

	payload, ok := stringAt(envelope, 0, 2)
	if !ok || payload == "" {
		// No payload means no more reviews.
		return nil, "", nil
	}

	var parsed []any
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, "", fmt.Errorf("parse payload: %w", err)
	}
	if len(parsed) == 0 {
		return nil, "", nil
	}

	items, _ := parsed[0].([]any)
	reviews := make([]models.Review, 0, len(items))
	for _, it := range items {
		item, ok := it.([]any)
		if !ok {
			continue
		}
		r, ok := parsePlayReview(item)
		if !ok {
			continue
		}
		reviews = append(reviews, r)
	}

	token := ""
	if len(parsed) >= 2 {
		if tail, ok := parsed[len(parsed)-1].([]any); ok && len(tail) > 0 {
			token, _ = tail[len(tail)-1].(string)
		}
	}
	return reviews, token, nil
}

// parsePlayReview maps one positional review entry to a Review.
// Known offsets: score [2], text [4], timestamp [5][0] (unix seconds),
// thumbs-up [6], app version [10].
func parsePlayReview(item []any) (models.Review, bool) {
	rating, ok := numberAt(item, 2)
	if !ok || rating < 1 || rating > 5 {
		return models.Review{}, false
	}
	text, _ := stringAt(item, 4)
	secs, ok := numberAt(item, 5, 0)
	if !ok {
		return models.Review{}, false
	}
	r := models.Review{
		Platform: models.PlatformAndroid,
		Rating:   int(rating),
		Text:     text,
		Date:     time.Unix(int64(secs), 0),
	}
	if thumbs, ok := numberAt(item, 6); ok {
		r.ThumbsUp = int(thumbs)
	}
	if version, ok := stringAt(item, 10); ok {
		r.AppVersion = version
		r.Title = version // the feed carries no title field
	}
	return r, true
}

// stringAt walks nested []any by index and returns a string leaf.
func stringAt(v any, path ...int) (string, bool) {
	node, ok := walk(v, path)
	if !ok {
		return "", false
	}
	s, ok := node.(string)
	return s, ok
}

// numberAt walks nested []any by index and returns a numeric leaf.
func numberAt(v any, path ...int) (float64, bool) {
	node, ok := walk(v, path)
	if !ok {
		return 0, false
	}
	n, ok := node.(float64)
	return n, ok
}

func walk(v any, path []int) (any, bool) {
	node := v
	for _, i := range path {
		arr, ok := node.([]any)
		if !ok || i < 0 || i >= len(arr) {
			return nil, false
		}
		node = arr[i]
	}
	return node, node != nil
}
