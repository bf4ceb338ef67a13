package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/seenimoa/reviewpulse/pkg/models"
)

// The App Store syndication feed serves ~50 reviews per page and tops
// out around page 10.
const iosMaxPages = 10

// itunesDateLayouts covers the timestamp shapes the feed emits.
var itunesDateLayouts = []string{
	"2006-01-02T15:04:05-07:00",
	time.RFC3339,
	"2006-01-02",
}

// scrapeAppStore iterates the customer-reviews feed, preferring the JSON
// shape and degrading to the Atom and legacy HTML shapes per page. The
// loop stops at the first page that yields zero parseable entries.
func (s *Scraper) scrapeAppStore(ctx context.Context) models.Collection {
	fmt.Printf("🍎 Scraping App Store reviews for app ID %s...\n", s.cfg.IOSAppID)

	var out models.Collection
	for page := 1; page <= iosMaxPages; page++ {
		reviews := s.fetchAppStorePage(ctx, page)
		if len(reviews) == 0 {
			break
		}
		for _, r := range reviews {
			if !r.Date.Before(s.cutoff) {
				out = append(out, r)
			}
		}
	}

	fmt.Printf("✅ Collected %d iOS reviews\n", len(out))
	return out
}

// fetchAppStorePage returns the parseable reviews of one feed page,
// trying JSON, then Atom (gofeed), then the legacy HTML endpoint.
// All errors degrade to an empty page.
func (s *Scraper) fetchAppStorePage(ctx context.Context, page int) []models.Review {
	if reviews, err := s.fetchJSONFeedPage(ctx, page); err == nil {
		return reviews
	} else {
		s.log.WithError(err).WithField("page", page).Debug("json feed failed, trying atom")
	}

	if reviews, err := s.fetchAtomFeedPage(ctx, page); err == nil && len(reviews) > 0 {
		return reviews
	}

	reviews, err := s.fetchHTMLReviewsPage(ctx, page)
	if err != nil {
		s.log.WithError(err).WithField("page", page).Debug("html fallback failed")
		return nil
	}
	return reviews
}

// ── JSON feed shape ──

type itunesLabel struct {
	Label string `json:"label"`
}

type itunesEntry struct {
	Rating  itunesLabel `json:"im:rating"`
	Version itunesLabel `json:"im:version"`
	Title   itunesLabel `json:"title"`
	Content itunesLabel `json:"content"`
	Updated itunesLabel `json:"updated"`
}

type itunesFeedDoc struct {
	Feed struct {
		Entry json.RawMessage `json:"entry"`
	} `json:"feed"`
}

func (s *Scraper) jsonFeedURL(page int) string {
	return fmt.Sprintf("%s/%s/rss/customerreviews/page=%d/id=%s/sortby=mostrecent/json",
		s.itunesBase, s.cfg.Country, page, s.cfg.IOSAppID)
}

func (s *Scraper) fetchJSONFeedPage(ctx context.Context, page int) ([]models.Review, error) {
	body, err := s.doGet(ctx, s.jsonFeedURL(page), map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}

	var doc itunesFeedDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse feed json: %w", err)
	}
	if len(doc.Feed.Entry) == 0 {
		return nil, nil
	}

	// "entry" is an array normally, but a bare object when the page
	// holds a single review.
	var entries []itunesEntry
	if err := json.Unmarshal(doc.Feed.Entry, &entries); err != nil {
		var single itunesEntry
		if err := json.Unmarshal(doc.Feed.Entry, &single); err != nil {
			return nil, fmt.Errorf("parse feed entries: %w", err)
		}
		entries = []itunesEntry{single}
	}

	reviews := make([]models.Review, 0, len(entries))
	for _, e := range entries {
		rating, err := strconv.Atoi(e.Rating.Label)
		if err != nil || rating < 1 || rating > 5 {
			// The first entry of page 1 describes the app itself.
			continue
		}
		reviews = append(reviews, models.Review{
			Platform:   models.PlatformIOS,
			Rating:     rating,
			Title:      e.Title.Label,
			Text:       e.Content.Label,
			Date:       parseITunesDate(e.Updated.Label, s.now),
			AppVersion: e.Version.Label,
		})
	}
	return reviews, nil
}

// ── Atom feed shape (gofeed) ──

func (s *Scraper) atomFeedURL(page int) string {
	return fmt.Sprintf("%s/%s/rss/customerreviews/page=%d/id=%s/sortby=mostrecent/xml",
		s.itunesBase, s.cfg.Country, page, s.cfg.IOSAppID)
}

func (s *Scraper) fetchAtomFeedPage(ctx context.Context, page int) ([]models.Review, error) {
	body, err := s.doGet(ctx, s.atomFeedURL(page), map[string]string{"Accept": "application/atom+xml"})
	if err != nil {
		return nil, err
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse atom feed: %w", err)
	}

	reviews := make([]models.Review, 0, len(feed.Items))
	for _, item := range feed.Items {
		rating, ok := itunesExtension(item, "rating")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rating)
		if err != nil || n < 1 || n > 5 {
			continue
		}
		r := models.Review{
			Platform: models.PlatformIOS,
			Rating:   n,
			Title:    item.Title,
			Text:     strings.TrimSpace(item.Content),
		}
		if r.Text == "" {
			r.Text = strings.TrimSpace(item.Description)
		}
		if item.UpdatedParsed != nil {
			r.Date = *item.UpdatedParsed
		} else {
			r.Date = s.now()
		}
		if version, ok := itunesExtension(item, "version"); ok {
			r.AppVersion = version
		}
		reviews = append(reviews, r)
	}
	return reviews, nil
}

// itunesExtension reads one "im" namespace extension value off an item.
func itunesExtension(item *gofeed.Item, name string) (string, bool) {
	ns, ok := item.Extensions["im"]
	if !ok {
		return "", false
	}
	exts, ok := ns[name]
	if !ok || len(exts) == 0 {
		return "", false
	}
	return exts[0].Value, true
}

// ── Legacy HTML shape (goquery) ──

func (s *Scraper) htmlReviewsURL(page int) string {
	return fmt.Sprintf("%s/%s/customer-reviews/id%s?page=%d&sortOrdering=2",
		s.itunesBase, s.cfg.Country, s.cfg.IOSAppID, page)
}

func (s *Scraper) fetchHTMLReviewsPage(ctx context.Context, page int) ([]models.Review, error) {
	body, err := s.doGet(ctx, s.htmlReviewsURL(page), map[string]string{
		"Accept":              "text/html",
		"X-Apple-Store-Front": "143467-2,32", // India store front
	})
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var reviews []models.Review
	doc.Find("div.customer-review, div.review").Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find(".review-title, h3").First().Text())
		text := strings.TrimSpace(sel.Find(".review-body, p").First().Text())
		if text == "" {
			return
		}
		rating := htmlRating(sel)
		if rating < 1 || rating > 5 {
			return
		}
		date := s.now()
		if d := strings.TrimSpace(sel.Find(".review-date, time").First().Text()); d != "" {
			date = parseITunesDate(d, s.now)
		}
		reviews = append(reviews, models.Review{
			Platform: models.PlatformIOS,
			Rating:   rating,
			Title:    title,
			Text:     text,
			Date:     date,
		})
	})
	return reviews, nil
}

// htmlRating pulls the star rating out of an aria-label like
// "4 stars" or a rating class suffix.
func htmlRating(sel *goquery.Selection) int {
	label, ok := sel.Find("[aria-label]").First().Attr("aria-label")
	if ok {
		fields := strings.Fields(label)
		if len(fields) > 0 {
			if n, err := strconv.Atoi(fields[0]); err == nil {
				return n
			}
		}
	}
	return 0
}

// parseITunesDate tries the known feed layouts and falls back to now.
func parseITunesDate(s string, now func() time.Time) time.Time {
	for _, layout := range itunesDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	if i := strings.Index(s, "T"); i > 0 {
		if t, err := time.Parse("2006-01-02", s[:i]); err == nil {
			return t
		}
	}
	return now()
}
