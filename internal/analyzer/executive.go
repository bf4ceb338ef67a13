package analyzer

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/seenimoa/reviewpulse/internal/analyzer/prompts"
	"github.com/seenimoa/reviewpulse/internal/llm"
	"github.com/seenimoa/reviewpulse/pkg/models"
)

const (
	// Stratified sample quotas applied when the collection exceeds
	// their sum. Negative reviews are over-weighted on purpose.
	execNegativeQuota = 100
	execNeutralQuota  = 50
	execPositiveQuota = 150
	// execTruncate bounds each review body in the executive listing.
	execTruncate = 300
)

// ExecutiveAnalyzer produces the leadership-oriented report in one
// consolidated generation call.
type ExecutiveAnalyzer struct {
	provider llm.Provider
	appName  string
	log      *logrus.Entry
}

// NewExecutive creates an executive analyzer.
func NewExecutive(provider llm.Provider, appName string, log *logrus.Logger) *ExecutiveAnalyzer {
	return &ExecutiveAnalyzer{
		provider: provider,
		appName:  appName,
		log:      log.WithField("component", "analyzer_executive"),
	}
}

// Analyze produces an ExecutiveAnalysis for the collection. On any call
// failure the hardcoded fallback report is returned instead; Analyze
// itself never fails.
func (a *ExecutiveAnalyzer) Analyze(ctx context.Context, reviews models.Collection) *models.ExecutiveAnalysis {
	fmt.Printf("🧠 Generating executive analysis for %d reviews\n", len(reviews))

	stats := models.ComputeStats(reviews)
	listing := formatListing(stratifySample(reviews), execTruncate, true)

	report, err := a.generateReport(ctx, stats, listing)
	if err != nil {
		a.log.WithError(err).Warn("executive call degraded to fallback content")
		fmt.Println("❌ Error generating executive analysis, using fallback")
		return fallbackExecutive(stats)
	}

	fmt.Println("✅ Executive analysis complete!")
	return report
}

func (a *ExecutiveAnalyzer) generateReport(ctx context.Context, stats models.Stats, listing string) (*models.ExecutiveAnalysis, error) {
	resp, err := a.provider.Generate(ctx, prompts.Executive(a.appName, stats, listing), nil)
	if err != nil {
		return nil, classifyCallError(err)
	}

	var report models.ExecutiveAnalysis
	if err := decodeResponse(resp.Content, &report); err != nil {
		return nil, err
	}

	report.Meta = stats
	for i := range report.Themes {
		report.Themes[i].DeriveCount(stats.TotalReviews)
	}
	return &report, nil
}

// stratifySample keeps the collection intact when it fits the combined
// quota, otherwise draws per-sentiment-band quotas so negative feedback
// stays over-represented in the prompt.
func stratifySample(c models.Collection) models.Collection {
	total := execNegativeQuota + execNeutralQuota + execPositiveQuota
	if len(c) <= total {
		return c
	}

	var negative, neutral, positive models.Collection
	for _, r := range c {
		switch {
		case r.Rating <= 2:
			negative = append(negative, r)
		case r.Rating == 3:
			neutral = append(neutral, r)
		default:
			positive = append(positive, r)
		}
	}

	out := make(models.Collection, 0, total)
	out = append(out, sampleReviews(negative, execNegativeQuota)...)
	out = append(out, sampleReviews(neutral, execNeutralQuota)...)
	out = append(out, sampleReviews(positive, execPositiveQuota)...)
	return out
}
