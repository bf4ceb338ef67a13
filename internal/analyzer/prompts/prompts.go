// Package prompts holds the natural-language request templates sent to
// the text-generation provider.
package prompts

import (
	"fmt"
	"strings"

	"github.com/seenimoa/reviewpulse/pkg/models"
)

// Themes asks for the top N discussion themes as a JSON array.
func Themes(appName string, maxThemes int, reviews string) string {
	return fmt.Sprintf(`
You are analyzing app reviews for %s, an investment and trading platform in India.

Analyze these reviews and identify the TOP %d themes/topics that users are discussing.

For each theme:
1. Give it a clear, concise name (2-4 words)
2. Provide a brief description (1 sentence)
3. Estimate the percentage of reviews discussing this theme

Focus on themes related to: KYC/verification, payments/withdrawals, UI/UX, customer support, features, bugs, performance.

Reviews:
%s

Return ONLY a JSON array with this exact structure:
[
  {
    "theme": "Theme Name",
    "description": "Brief description",
    "percentage": 25
  }
]

Return ONLY valid JSON, no other text.
`, appName, maxThemes, reviews)
}

// Quotes asks for three representative user quotes as a JSON array.
func Quotes(appName string, themes []models.Theme, reviews string) string {
	names := make([]string, 0, 3)
	for i, t := range themes {
		if i == 3 {
			break
		}
		names = append(names, t.Name)
	}

	return fmt.Sprintf(`
From these app reviews for %s, select 3 REAL, AUTHENTIC user quotes that best represent user sentiment.

Requirements:
- Select quotes that relate to these themes: %s
- Each quote should be 1-2 sentences, clear and impactful
- Remove any personally identifiable information (names, emails, phone numbers)
- Keep the original tone and language
- Choose quotes that highlight both problems and positive feedback

Reviews:
%s

Return ONLY a JSON array with this exact structure:
[
  {
    "quote": "The actual user quote here",
    "theme": "Related theme name",
    "sentiment": "positive/negative/neutral"
  }
]

Return ONLY valid JSON, no other text.
`, appName, strings.Join(names, ", "), reviews)
}

// Actions asks for three prioritized recommendations as a JSON string array.
func Actions(appName string, themes []models.Theme, avgRating float64) string {
	var summary strings.Builder
	for i, t := range themes {
		if i == 3 {
			break
		}
		fmt.Fprintf(&summary, "- %s: %s (%.0f%%)\n", t.Name, t.Description, t.Percentage)
	}

	return fmt.Sprintf(`
You are a product manager analyzing user feedback for %s app.

Based on these top themes from user reviews:
%s
Average Rating: %.2f/5

Generate 3 SPECIFIC, ACTIONABLE recommendations that the product/engineering team can implement.

Each recommendation should:
- Be concrete and implementable
- Address the most critical user pain points
- Be prioritized by impact
- Be 1-2 sentences max

Return ONLY a JSON array of strings:
["Recommendation 1", "Recommendation 2", "Recommendation 3"]

Return ONLY valid JSON, no other text.
`, appName, summary.String(), avgRating)
}

// Executive asks for the consolidated executive report in one call.
func Executive(appName string, stats models.Stats, reviews string) string {
	return fmt.Sprintf(`
You are a Group Product Manager analyzing App Store reviews for %s, a consumer fintech app in India.

Your goal is NOT to summarize reviews, but to convert raw review data into executive-ready product insights that drive decisions.

Input Data:
- Total reviews: %d
- Average rating: %.2f/5
- Positive (4-5 stars): %.1f%%
- Neutral (3 stars): %.1f%%
- Negative (1-2 stars): %.1f%%
- Date range: %s to %s

Reviews:
%s

Produce a structured analysis with these sections:

1. EXECUTIVE SUMMARY (3-5 bullets)
- Highlight major sentiment patterns
- Call out trust- or money-related risks explicitly
- End with clear leadership takeaway

2. THEME SEGMENTATION (Impact-Oriented)
Identify top 5 themes with:
- Theme name (2-4 words)
- %% of reviews
- Severity: High/Medium/Low
- Business risk: Trust/Revenue/Onboarding/Experience
- Brief description

Rank by business impact, not just volume.

3. HIGH-IMPACT INSIGHTS
For top 3 themes:
- Problem statement (1 sentence)
- Why this matters for product & business
- Representative user quote
- User segments affected (new users, active users, etc.)

4. RATING CORRELATION
- Which themes drive 1-2 star ratings most
- Quantify impact where possible

5. POSITIVE SIGNALS
- What's working well
- Evidence from reviews

6. DECISION-ORIENTED RECOMMENDATIONS (3-5 actions)
For each:
- Problem addressed
- Expected user impact
- Expected business impact
- Priority: P0/P1/P2

7. LEADERSHIP DECISIONS REQUIRED
- What alignment or decisions are needed
- Ownership, prioritization, or resourcing questions

Return as JSON with this structure:
{
  "executive_summary": ["bullet 1", "bullet 2"],
  "themes": [
    {
      "theme": "Theme Name",
      "percentage": 25,
      "severity": "High",
      "business_risk": "Trust",
      "description": "Brief description"
    }
  ],
  "deep_dives": [
    {
      "theme": "Theme Name",
      "problem": "Problem statement",
      "why_matters": "Business impact",
      "quote": "User quote",
      "segments": "User segments affected"
    }
  ],
  "rating_drivers": ["Theme 1 drives 45%% of 1-2 star reviews"],
  "positive_signals": ["Signal 1", "Signal 2"],
  "recommendations": [
    {
      "action": "Specific action",
      "problem": "Problem addressed",
      "user_impact": "Expected user impact",
      "business_impact": "Expected business impact",
      "priority": "P0"
    }
  ],
  "leadership_decisions": ["Decision 1", "Decision 2"]
}

Return ONLY valid JSON, no other text.
`, appName,
		stats.TotalReviews, stats.AvgRating,
		stats.Sentiment.PositivePct, stats.Sentiment.NeutralPct, stats.Sentiment.NegativePct,
		stats.StartDate, stats.EndDate,
		reviews)
}
