// Package scraper collects recent app-store reviews for one app from the
// Play Store and the App Store, normalizes them into models.Review, and
// writes the combined collection to a CSV audit file.
//
// Collection is best-effort: a page that fails to fetch or parse is
// treated as end-of-data for that feed, and a feed that fails outright
// contributes an empty slice rather than an error.
package scraper

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/seenimoa/reviewpulse/pkg/models"
)

// DefaultUserAgent is the browser user agent used for feed requests.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// ErrHTTP wraps a non-2xx response.
type ErrHTTP struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// Config selects the app and window to collect.
type Config struct {
	AndroidAppID string
	IOSAppID     string
	Country      string // store country code, e.g. "in"
	Weeks        int    // trailing window in weeks
	DataDir      string // CSV output directory
}

// Scraper fetches reviews from both stores.
type Scraper struct {
	cfg    Config
	cutoff time.Time
	client *http.Client
	log    *logrus.Entry
	now    func() time.Time

	// endpoint bases, overridable in tests
	playURL    string
	itunesBase string
}

// New creates a scraper with a cutoff of now − cfg.Weeks.
func New(cfg Config, log *logrus.Logger) *Scraper {
	if cfg.Country == "" {
		cfg.Country = "in"
	}
	if cfg.Weeks <= 0 {
		cfg.Weeks = 10
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data/raw"
	}
	now := time.Now()
	return &Scraper{
		cfg:        cfg,
		cutoff:     now.AddDate(0, 0, -7*cfg.Weeks),
		client:     &http.Client{Timeout: 15 * time.Second},
		log:        log.WithField("component", "scraper"),
		now:        time.Now,
		playURL:    "https://play.google.com/_/PlayStoreUi/data/batchexecute",
		itunesBase: "https://itunes.apple.com",
	}
}

// Cutoff returns the oldest review date the scraper retains.
func (s *Scraper) Cutoff() time.Time { return s.cutoff }

// ScrapeAll collects from both platforms, concatenates, and sorts the
// result newest-first. An empty collection is a valid outcome and is
// signaled by a zero-length slice, not an error.
func (s *Scraper) ScrapeAll(ctx context.Context) models.Collection {
	fmt.Printf("📱 Starting review collection (last %d weeks)\n", s.cfg.Weeks)

	android := s.scrapePlayStore(ctx)
	ios := s.scrapeAppStore(ctx)

	all := make(models.Collection, 0, len(android)+len(ios))
	all = append(all, android...)
	all = append(all, ios...)
	all.SortByDateDesc()

	fmt.Printf("✅ Total reviews collected: %d (Android: %d, iOS: %d)\n",
		len(all), len(android), len(ios))
	return all
}

// SaveCSV writes the collection to a timestamped CSV under the data
// directory and returns the file path.
func (s *Scraper) SaveCSV(reviews models.Collection) (string, error) {
	if err := os.MkdirAll(s.cfg.DataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}

	path := filepath.Join(s.cfg.DataDir,
		fmt.Sprintf("%s_reviews_%s.csv", s.cfg.AndroidAppID, s.now().Format("20060102_150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"platform", "rating", "title", "text", "date", "thumbs_up", "app_version"}); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range reviews {
		record := []string{
			string(r.Platform),
			strconv.Itoa(r.Rating),
			r.Title,
			r.Text,
			r.Date.Format("2006-01-02"),
			strconv.Itoa(r.ThumbsUp),
			r.AppVersion,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	fmt.Printf("💾 Reviews saved to: %s\n", path)
	return path, nil
}

// doGet performs a GET with browser headers and returns the body.
// The caller closes the returned ReadCloser.
func (s *Scraper) doGet(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "application/json, text/html, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET %s: %w", url, err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &ErrHTTP{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}

	return resp.Body, nil
}
