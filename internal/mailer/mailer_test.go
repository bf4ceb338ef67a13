package mailer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/seenimoa/reviewpulse/pkg/models"
)

func sampleSimple() *models.SimpleAnalysis {
	return &models.SimpleAnalysis{
		Meta: models.Stats{
			TotalReviews: 80,
			AvgRating:    3.75,
			Sentiment:    models.SentimentBands{PositivePct: 55.0, NeutralPct: 10.0, NegativePct: 35.0},
			StartDate:    "2026-06-19",
			EndDate:      "2026-08-28",
		},
		Themes: []models.Theme{
			{Name: "KYC Delays", Description: "Verification stuck", Percentage: 40, ReviewCount: 32},
		},
		Quotes: []models.Quote{
			{Text: "stuck on verification", Theme: "KYC Delays", Sentiment: "negative"},
		},
		Actions: []string{"Automate document checks"},
	}
}

func sampleExecutive() *models.ExecutiveAnalysis {
	return &models.ExecutiveAnalysis{
		Meta:             sampleSimple().Meta,
		ExecutiveSummary: []string{"KYC dominates negative sentiment"},
		Themes: []models.Theme{
			{Name: "KYC Delays", Percentage: 40, Severity: "High", BusinessRisk: "Trust"},
		},
		Recommendations: []models.Recommendation{
			{Action: "Automate KYC", Priority: "P0"},
		},
		LeadershipDecisions: []string{"Staff KYC ops"},
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in   string
		want Style
	}{
		{"plain", StylePlain},
		{"Executive", StyleExecutive},
		{" dashboard ", StyleDashboard},
		{"", StylePlain},
		{"nonsense", StylePlain},
	}
	for _, tt := range tests {
		if got := ParseStyle(tt.in); got != tt.want {
			t.Errorf("ParseStyle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSubject(t *testing.T) {
	got := Subject("Groww", sampleSimple())
	want := "📊 Groww Weekly Insights - 2026-08-28 (Avg Rating: 3.75/5)"
	if got != want {
		t.Errorf("Subject = %q, want %q", got, want)
	}
}

func TestRenderBodyAllStylesAllVariants(t *testing.T) {
	analyses := map[string]models.Analysis{
		"simple":    sampleSimple(),
		"executive": sampleExecutive(),
	}
	styles := []Style{StylePlain, StyleExecutive, StyleDashboard}

	for name, a := range analyses {
		for _, style := range styles {
			body, err := renderBody(style, "Groww", a)
			if err != nil {
				t.Fatalf("renderBody(%s, %s): %v", style, name, err)
			}
			if !strings.Contains(body, "80") {
				t.Errorf("%s/%s body missing review count", style, name)
			}
			if !strings.Contains(body, "3.75") {
				t.Errorf("%s/%s body missing avg rating", style, name)
			}
			if !strings.Contains(body, "KYC") {
				t.Errorf("%s/%s body missing theme content", style, name)
			}
		}
	}
}

func TestRenderBodyExecutiveSections(t *testing.T) {
	body, err := renderBody(StyleExecutive, "Groww", sampleExecutive())
	if err != nil {
		t.Fatalf("renderBody: %v", err)
	}
	for _, want := range []string{"Executive Summary", "[P0]", "Leadership Decisions"} {
		if !strings.Contains(body, want) {
			t.Errorf("executive body missing %q", want)
		}
	}
}

func quietLogger() (*logrus.Logger, *strings.Builder) {
	var buf strings.Builder
	log := logrus.New()
	log.SetOutput(&buf)
	return log, &buf
}

func TestExistingAttachmentsSkipsMissing(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(present, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "gone.md")

	log, buf := quietLogger()
	m := New(Config{Address: "a@example.com", AppPassword: "x"}, log)

	got := m.existingAttachments([]string{present, missing, ""})
	if len(got) != 1 || got[0] != present {
		t.Errorf("existingAttachments = %v, want only %s", got, present)
	}
	if !strings.Contains(buf.String(), "attachment missing") {
		t.Error("missing attachment was not logged")
	}
}

func TestSendWithoutCredentials(t *testing.T) {
	log, _ := quietLogger()
	m := New(Config{AppName: "Groww"}, log)

	if m.Send(sampleSimple(), nil) {
		t.Error("Send without credentials returned true")
	}
}

func TestNewDefaults(t *testing.T) {
	log, _ := quietLogger()
	m := New(Config{Address: "a@example.com", AppPassword: "x"}, log)

	if m.cfg.Host != "smtp.gmail.com" {
		t.Errorf("default host = %q", m.cfg.Host)
	}
	if m.cfg.Port != 465 {
		t.Errorf("default port = %d", m.cfg.Port)
	}
	if m.cfg.Recipient != "a@example.com" {
		t.Errorf("default recipient = %q", m.cfg.Recipient)
	}
	if m.cfg.Style != StylePlain {
		t.Errorf("default style = %q", m.cfg.Style)
	}
}

func TestAttachmentContentType(t *testing.T) {
	if got := attachmentContentType("r.pdf"); got != "application/pdf" {
		t.Errorf("pdf content type = %q", got)
	}
	if got := attachmentContentType("r.bin"); got != "application/octet-stream" {
		t.Errorf("bin content type = %q", got)
	}
}
