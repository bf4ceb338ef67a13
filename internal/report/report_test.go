package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/seenimoa/reviewpulse/pkg/models"
)

func sampleStats() models.Stats {
	return models.Stats{
		TotalReviews: 120,
		AvgRating:    3.42,
		Sentiment: models.SentimentBands{
			PositivePct: 50.0,
			NeutralPct:  16.7,
			NegativePct: 33.3,
		},
		StartDate: "2026-06-19",
		EndDate:   "2026-08-28",
	}
}

func sampleSimple() *models.SimpleAnalysis {
	return &models.SimpleAnalysis{
		Meta: sampleStats(),
		Themes: []models.Theme{
			{Name: "KYC Delays", Description: "Verification stuck for days", Percentage: 40, ReviewCount: 48},
			{Name: "Payment Issues", Description: "Withdrawals fail", Percentage: 25, ReviewCount: 30},
		},
		Quotes: []models.Quote{
			{Text: "stuck on KYC for a week", Theme: "KYC Delays", Sentiment: "negative"},
			{Text: "clean and simple UI", Theme: "User Experience", Sentiment: "positive"},
		},
		Actions: []string{"Automate document verification", "Add withdrawal status tracking"},
	}
}

func sampleExecutive() *models.ExecutiveAnalysis {
	return &models.ExecutiveAnalysis{
		Meta:             sampleStats(),
		ExecutiveSummary: []string{"Negative sentiment concentrated in KYC and payments"},
		Themes: []models.Theme{
			{Name: "KYC Delays", Percentage: 40, ReviewCount: 48, Severity: "High", BusinessRisk: "Trust", Description: "Verification stuck"},
		},
		DeepDives: []models.DeepDive{
			{Theme: "KYC Delays", Problem: "Manual review backlog", WhyMatters: "Blocks onboarding", Quote: "stuck for a week", Segments: "new users"},
		},
		RatingDrivers:   []string{"KYC drives 45% of 1-2 star reviews"},
		PositiveSignals: []string{"UI consistently praised"},
		Recommendations: []models.Recommendation{
			{Action: "Automate KYC", Problem: "Backlog", UserImpact: "Faster onboarding", BusinessImpact: "Higher activation", Priority: "P0"},
		},
		LeadershipDecisions: []string{"Staff KYC operations"},
	}
}

func testGenerator(t *testing.T) *Generator {
	t.Helper()
	log := logrus.New()
	log.SetOutput(&strings.Builder{})
	g := NewGenerator("Groww", t.TempDir(), log)
	g.now = func() time.Time { return time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC) }
	return g
}

func TestGenerateSimpleWritesBothFiles(t *testing.T) {
	g := testGenerator(t)

	result, err := g.Generate(sampleSimple())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if filepath.Base(result.MarkdownPath) != "weekly_report_20260828.md" {
		t.Errorf("markdown name = %s", filepath.Base(result.MarkdownPath))
	}
	if filepath.Base(result.PDFPath) != "weekly_report_20260828.pdf" {
		t.Errorf("pdf name = %s", filepath.Base(result.PDFPath))
	}

	md, err := os.ReadFile(result.MarkdownPath)
	if err != nil {
		t.Fatalf("read markdown: %v", err)
	}
	for _, want := range []string{
		"# 📊 Groww Weekly Review Insights",
		"**Total Reviews Analyzed:** 120",
		"**Average Rating:** 3.42/5",
		"### 1. KYC Delays (40% of reviews)",
		"😞 \"stuck on KYC for a week\"",
		"😊 \"clean and simple UI\"",
		"1. **Automate document verification**",
		"*Report generated on August 28, 2026 at 10:30 AM*",
	} {
		if !strings.Contains(string(md), want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	pdf, err := os.ReadFile(result.PDFPath)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !strings.HasPrefix(string(pdf), "%PDF-") {
		t.Error("pdf file missing %PDF- header")
	}
}

func TestGenerateExecutiveMarkdownSections(t *testing.T) {
	g := testGenerator(t)

	result, err := g.Generate(sampleExecutive())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	md, err := os.ReadFile(result.MarkdownPath)
	if err != nil {
		t.Fatalf("read markdown: %v", err)
	}
	for _, want := range []string{
		"## 🎯 Executive Summary",
		"| KYC Delays | 40% (~48) | High | Trust |",
		"**Why it matters:** Blocks onboarding",
		"KYC drives 45% of 1-2 star reviews",
		"1. **[P0] Automate KYC**",
		"## 🧭 Leadership Decisions Required",
	} {
		if !strings.Contains(string(md), want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	g := testGenerator(t)

	r1, err := g.Generate(sampleSimple())
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	first, _ := os.ReadFile(r1.MarkdownPath)

	r2, err := g.Generate(sampleSimple())
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	second, _ := os.ReadFile(r2.MarkdownPath)

	if string(first) != string(second) {
		t.Error("re-rendering the same analysis changed the markdown output")
	}
}
