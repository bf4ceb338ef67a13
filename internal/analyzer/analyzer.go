// Package analyzer turns a review collection into an analysis result by
// prompting a text-generation provider and parsing its JSON replies.
//
// Analysis is degrade-not-fail: every generation call returns an explicit
// error kind (upstream unavailable or malformed response), and the
// analyzers' degrade policy substitutes a hardcoded fallback payload so
// the pipeline can proceed. Aggregate statistics are always computed from
// the collection itself, never taken from the model.
package analyzer

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/seenimoa/reviewpulse/internal/analyzer/prompts"
	"github.com/seenimoa/reviewpulse/internal/llm"
	"github.com/seenimoa/reviewpulse/pkg/models"
)

const (
	// simpleSampleMax bounds the prompt listing for the simple analyzer.
	simpleSampleMax = 200
	// simpleTruncate bounds each review body in the listing.
	simpleTruncate = 200
	// sampleSeed keeps the down-sample reproducible across runs on the
	// same collection.
	sampleSeed = 42
)

// Analyzer is the simple three-call variant: themes, quotes, actions.
type Analyzer struct {
	provider  llm.Provider
	appName   string
	maxThemes int
	log       *logrus.Entry
}

// New creates a simple analyzer.
func New(provider llm.Provider, appName string, maxThemes int, log *logrus.Logger) *Analyzer {
	if maxThemes <= 0 {
		maxThemes = 5
	}
	return &Analyzer{
		provider:  provider,
		appName:   appName,
		maxThemes: maxThemes,
		log:       log.WithField("component", "analyzer"),
	}
}

// Analyze produces a SimpleAnalysis for the collection. Failed
// generation calls are replaced by fallback content; Analyze itself
// never fails.
func (a *Analyzer) Analyze(ctx context.Context, reviews models.Collection) *models.SimpleAnalysis {
	fmt.Printf("🧠 Analyzing %d reviews\n", len(reviews))

	stats := models.ComputeStats(reviews)
	listing := formatListing(sampleReviews(reviews, simpleSampleMax), simpleTruncate, false)

	fmt.Println("🔍 Step 1: Extracting themes...")
	themes, err := a.extractThemes(ctx, listing, len(reviews))
	if err != nil {
		a.degrade("themes", err)
		themes = fallbackThemes(len(reviews))
	}

	fmt.Println("💬 Step 2: Selecting representative quotes...")
	quotes, err := a.selectQuotes(ctx, listing, themes)
	if err != nil {
		a.degrade("quotes", err)
		quotes = fallbackQuotes()
	}

	fmt.Println("💡 Step 3: Generating action recommendations...")
	actions, err := a.recommendActions(ctx, themes, stats.AvgRating)
	if err != nil {
		a.degrade("actions", err)
		actions = fallbackActions()
	}

	fmt.Println("✅ Analysis complete!")
	return &models.SimpleAnalysis{
		Meta:    stats,
		Themes:  themes,
		Quotes:  quotes,
		Actions: actions,
	}
}

func (a *Analyzer) extractThemes(ctx context.Context, listing string, total int) ([]models.Theme, error) {
	resp, err := a.provider.Generate(ctx, prompts.Themes(a.appName, a.maxThemes, listing), nil)
	if err != nil {
		return nil, classifyCallError(err)
	}

	var themes []models.Theme
	if err := decodeResponse(resp.Content, &themes); err != nil {
		return nil, err
	}
	if len(themes) > a.maxThemes {
		themes = themes[:a.maxThemes]
	}
	for i := range themes {
		themes[i].DeriveCount(total)
	}
	return themes, nil
}

func (a *Analyzer) selectQuotes(ctx context.Context, listing string, themes []models.Theme) ([]models.Quote, error) {
	resp, err := a.provider.Generate(ctx, prompts.Quotes(a.appName, themes, listing), nil)
	if err != nil {
		return nil, classifyCallError(err)
	}

	var quotes []models.Quote
	if err := decodeResponse(resp.Content, &quotes); err != nil {
		return nil, err
	}
	if len(quotes) > 3 {
		quotes = quotes[:3]
	}
	return quotes, nil
}

func (a *Analyzer) recommendActions(ctx context.Context, themes []models.Theme, avgRating float64) ([]string, error) {
	resp, err := a.provider.Generate(ctx, prompts.Actions(a.appName, themes, avgRating), nil)
	if err != nil {
		return nil, classifyCallError(err)
	}

	var actions []string
	if err := decodeResponse(resp.Content, &actions); err != nil {
		return nil, err
	}
	if len(actions) > 3 {
		actions = actions[:3]
	}
	return actions, nil
}

// degrade records why a call's result was replaced with fallback content.
func (a *Analyzer) degrade(step string, err error) {
	a.log.WithError(err).Warnf("%s call degraded to fallback content", step)
	fmt.Printf("❌ Error generating %s, using fallback\n", step)
}

// ── Shared listing helpers ──

// sampleReviews returns up to max reviews as a seeded random sample so
// the prompt stays within the provider's token budget.
func sampleReviews(c models.Collection, max int) models.Collection {
	if len(c) <= max {
		return c
	}
	rng := rand.New(rand.NewSource(sampleSeed))
	idx := rng.Perm(len(c))[:max]
	out := make(models.Collection, 0, max)
	for _, i := range idx {
		out = append(out, c[i])
	}
	return out
}

// formatListing serializes reviews into the compact one-line-per-review
// form the prompts embed. withDate switches to the executive shape.
func formatListing(c models.Collection, truncateAt int, withDate bool) string {
	var b strings.Builder
	for _, r := range c {
		if withDate {
			fmt.Fprintf(&b, "[%s | %d★ | %s] %s\n",
				r.Platform, r.Rating, r.Date.Format("2006-01-02"), truncate(r.Text, truncateAt))
		} else {
			fmt.Fprintf(&b, "[%s | Rating: %d/5] %s\n",
				r.Platform, r.Rating, truncate(r.Text, truncateAt))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// truncate cuts a string to n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
