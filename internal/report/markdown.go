package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/seenimoa/reviewpulse/pkg/models"
)

// sentimentEmoji decorates a quote with the tone it carries.
func sentimentEmoji(sentiment string) string {
	switch strings.ToLower(sentiment) {
	case "positive":
		return "😊"
	case "negative":
		return "😞"
	default:
		return "😐"
	}
}

// renderMarkdown produces the full Markdown document for either
// analysis variant.
func renderMarkdown(analysis models.Analysis, appName string, now time.Time) string {
	var b strings.Builder
	writeHeader(&b, analysis.Stats(), appName)

	switch a := analysis.(type) {
	case *models.SimpleAnalysis:
		writeSimpleBody(&b, a)
	case *models.ExecutiveAnalysis:
		writeExecutiveBody(&b, a)
	}

	writeFooter(&b, now)
	return b.String()
}

func writeHeader(b *strings.Builder, stats models.Stats, appName string) {
	fmt.Fprintf(b, "# 📊 %s Weekly Review Insights\n\n", appName)
	fmt.Fprintf(b, "**Period:** %s to %s\n\n", stats.StartDate, stats.EndDate)
	fmt.Fprintf(b, "**Total Reviews Analyzed:** %d\n\n", stats.TotalReviews)
	fmt.Fprintf(b, "**Average Rating:** %.2f/5\n\n", stats.AvgRating)

	b.WriteString("## 💭 Sentiment Overview\n\n")
	fmt.Fprintf(b, "- 😊 Positive (4-5⭐): %.1f%%\n", stats.Sentiment.PositivePct)
	fmt.Fprintf(b, "- 😐 Neutral (3⭐): %.1f%%\n", stats.Sentiment.NeutralPct)
	fmt.Fprintf(b, "- 😞 Negative (1-2⭐): %.1f%%\n\n", stats.Sentiment.NegativePct)
}

func writeSimpleBody(b *strings.Builder, a *models.SimpleAnalysis) {
	b.WriteString("## 🔥 Top Themes This Week\n\n")
	for i, theme := range a.Themes {
		if i == 3 {
			break
		}
		fmt.Fprintf(b, "### %d. %s (%.0f%% of reviews)\n\n", i+1, theme.Name, theme.Percentage)
		fmt.Fprintf(b, "%s\n\n", theme.Description)
		fmt.Fprintf(b, "*Approximately %d reviews mention this theme.*\n\n", theme.ReviewCount)
	}

	b.WriteString("## 💬 What Users Are Saying\n\n")
	for _, q := range a.Quotes {
		fmt.Fprintf(b, "> %s \"%s\"\n>\n> — on %s\n\n", sentimentEmoji(q.Sentiment), q.Text, q.Theme)
	}

	b.WriteString("## ✅ Recommended Actions\n\n")
	for i, action := range a.Actions {
		fmt.Fprintf(b, "%d. **%s**\n", i+1, action)
	}
	b.WriteString("\n")
}

func writeExecutiveBody(b *strings.Builder, a *models.ExecutiveAnalysis) {
	b.WriteString("## 🎯 Executive Summary\n\n")
	for _, line := range a.ExecutiveSummary {
		fmt.Fprintf(b, "- %s\n", line)
	}
	b.WriteString("\n")

	b.WriteString("## 🔥 Theme Segmentation\n\n")
	b.WriteString("| Theme | % of Reviews | Severity | Business Risk | Description |\n")
	b.WriteString("|-------|-------------|----------|---------------|-------------|\n")
	for _, t := range a.Themes {
		fmt.Fprintf(b, "| %s | %.0f%% (~%d) | %s | %s | %s |\n",
			t.Name, t.Percentage, t.ReviewCount, t.Severity, t.BusinessRisk, t.Description)
	}
	b.WriteString("\n")

	if len(a.DeepDives) > 0 {
		b.WriteString("## 🔍 High-Impact Insights\n\n")
		for i, d := range a.DeepDives {
			fmt.Fprintf(b, "### %d. %s\n\n", i+1, d.Theme)
			fmt.Fprintf(b, "**Problem:** %s\n\n", d.Problem)
			fmt.Fprintf(b, "**Why it matters:** %s\n\n", d.WhyMatters)
			fmt.Fprintf(b, "> \"%s\"\n\n", d.Quote)
			fmt.Fprintf(b, "**Segments affected:** %s\n\n", d.Segments)
		}
	}

	if len(a.RatingDrivers) > 0 {
		b.WriteString("## 📉 Rating Drivers\n\n")
		for _, line := range a.RatingDrivers {
			fmt.Fprintf(b, "- %s\n", line)
		}
		b.WriteString("\n")
	}

	if len(a.PositiveSignals) > 0 {
		b.WriteString("## 🌟 Positive Signals\n\n")
		for _, line := range a.PositiveSignals {
			fmt.Fprintf(b, "- %s\n", line)
		}
		b.WriteString("\n")
	}

	b.WriteString("## ✅ Recommendations\n\n")
	for i, r := range a.Recommendations {
		fmt.Fprintf(b, "%d. **[%s] %s**\n", i+1, r.Priority, r.Action)
		fmt.Fprintf(b, "   - Problem: %s\n", r.Problem)
		fmt.Fprintf(b, "   - User impact: %s\n", r.UserImpact)
		fmt.Fprintf(b, "   - Business impact: %s\n", r.BusinessImpact)
	}
	b.WriteString("\n")

	if len(a.LeadershipDecisions) > 0 {
		b.WriteString("## 🧭 Leadership Decisions Required\n\n")
		for _, line := range a.LeadershipDecisions {
			fmt.Fprintf(b, "- %s\n", line)
		}
		b.WriteString("\n")
	}
}

func writeFooter(b *strings.Builder, now time.Time) {
	b.WriteString("---\n\n")
	fmt.Fprintf(b, "*Report generated on %s*\n", now.Format("January 2, 2006 at 3:04 PM"))
}
