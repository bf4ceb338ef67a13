package analyzer

import (
	"fmt"

	"github.com/seenimoa/reviewpulse/pkg/models"
)

// Hardcoded substitutes used when a generation call fails or returns
// unparseable output. They keep the pipeline moving with plausible,
// clearly generic content.

func fallbackThemes(total int) []models.Theme {
	themes := []models.Theme{
		{Name: "KYC & Verification", Description: "Issues with account verification", Percentage: 30},
		{Name: "Payment Issues", Description: "Problems with deposits/withdrawals", Percentage: 25},
		{Name: "App Performance", Description: "Bugs, crashes, slow loading", Percentage: 20},
	}
	for i := range themes {
		themes[i].DeriveCount(total)
	}
	return themes
}

func fallbackQuotes() []models.Quote {
	return []models.Quote{
		{Text: "KYC verification is taking too long, been waiting for 3 days", Theme: "KYC & Verification", Sentiment: "negative"},
		{Text: "Great app for beginners, easy to understand", Theme: "User Experience", Sentiment: "positive"},
		{Text: "Withdrawal is stuck, customer support not responding", Theme: "Payment Issues", Sentiment: "negative"},
	}
}

func fallbackActions() []string {
	return []string{
		"Reduce KYC verification time by implementing automated document verification",
		"Add real-time withdrawal status tracking to reduce support queries",
		"Improve app performance by optimizing API calls and caching frequently accessed data",
	}
}

// fallbackExecutive is the substitute for the consolidated executive
// report; it carries the real computed stats and flags the failure for
// manual follow-up.
func fallbackExecutive(stats models.Stats) *models.ExecutiveAnalysis {
	themes := []models.Theme{
		{Name: "KYC & Verification", Percentage: 30, Severity: "High", BusinessRisk: "Trust", Description: "Account verification delays"},
		{Name: "Payment Issues", Percentage: 25, Severity: "High", BusinessRisk: "Revenue", Description: "Withdrawal and deposit problems"},
		{Name: "App Performance", Percentage: 20, Severity: "Medium", BusinessRisk: "Experience", Description: "Crashes and bugs"},
	}
	for i := range themes {
		themes[i].DeriveCount(stats.TotalReviews)
	}

	return &models.ExecutiveAnalysis{
		Meta: stats,
		ExecutiveSummary: []string{
			fmt.Sprintf("Analyzed %d reviews with %.2f/5 average rating", stats.TotalReviews, stats.AvgRating),
			"Unable to generate detailed insights due to API error",
			"Manual review recommended for this period",
		},
		Themes:          themes,
		RatingDrivers:   []string{"Analysis unavailable - API error"},
		PositiveSignals: []string{"Analysis unavailable - API error"},
		Recommendations: []models.Recommendation{
			{Action: "Review API configuration", Problem: "Analysis failed", UserImpact: "N/A", BusinessImpact: "N/A", Priority: "P0"},
		},
		LeadershipDecisions: []string{"Investigate why AI analysis failed"},
	}
}
