package analyzer

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/seenimoa/reviewpulse/internal/llm"
	"github.com/seenimoa/reviewpulse/pkg/models"
)

// fakeProvider returns canned responses per call, in order.
type fakeProvider struct {
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(_ context.Context, prompt string, _ *llm.Options) (*llm.Response, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	if f.calls >= len(f.responses) {
		return nil, fmt.Errorf("unexpected call %d", f.calls)
	}
	content := f.responses[f.calls]
	f.calls++
	return &llm.Response{Content: content, Provider: "fake"}, nil
}

func (f *fakeProvider) Ping(context.Context) error { return f.err }

func testReviews(n int) models.Collection {
	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	c := make(models.Collection, 0, n)
	for i := 0; i < n; i++ {
		c = append(c, models.Review{
			Platform: models.PlatformAndroid,
			Rating:   i%5 + 1,
			Text:     fmt.Sprintf("review number %d", i),
			Date:     base.AddDate(0, 0, -i%7),
		})
	}
	return c
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(&strings.Builder{})
	return log
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `[{"theme":"KYC"}]`, `[{"theme":"KYC"}]`},
		{"fenced json tag", "```json\n[{\"theme\":\"KYC\"}]\n```", `[{"theme":"KYC"}]`},
		{"fenced no tag", "```\n[1,2]\n```", `[1,2]`},
		{"leading whitespace", "  \n```json\n{}\n```", `{}`},
		{"fence only", "```", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.in); got != tt.want {
				t.Errorf("StripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAnalyzeFencedAndUnfencedEquivalent(t *testing.T) {
	themesJSON := `[{"theme":"KYC Delays","description":"Verification stuck","percentage":40}]`
	quotesJSON := `[{"quote":"stuck for days","theme":"KYC Delays","sentiment":"negative"}]`
	actionsJSON := `["Automate document checks"]`

	reviews := testReviews(10)

	plain := &fakeProvider{responses: []string{themesJSON, quotesJSON, actionsJSON}}
	fenced := &fakeProvider{responses: []string{
		"```json\n" + themesJSON + "\n```",
		"```json\n" + quotesJSON + "\n```",
		"```json\n" + actionsJSON + "\n```",
	}}

	a1 := New(plain, "Groww", 5, quietLogger())
	a2 := New(fenced, "Groww", 5, quietLogger())

	r1 := a1.Analyze(context.Background(), reviews)
	r2 := a2.Analyze(context.Background(), reviews)

	if len(r1.Themes) != 1 || len(r2.Themes) != 1 {
		t.Fatalf("theme counts = %d, %d; want 1, 1", len(r1.Themes), len(r2.Themes))
	}
	if r1.Themes[0] != r2.Themes[0] {
		t.Errorf("fenced theme %+v differs from plain %+v", r2.Themes[0], r1.Themes[0])
	}
	if r1.Quotes[0] != r2.Quotes[0] {
		t.Errorf("fenced quote %+v differs from plain %+v", r2.Quotes[0], r1.Quotes[0])
	}
	if r1.Actions[0] != r2.Actions[0] {
		t.Errorf("fenced action %q differs from plain %q", r2.Actions[0], r1.Actions[0])
	}
}

func TestAnalyzeDerivesThemeCounts(t *testing.T) {
	themesJSON := `[{"theme":"Payments","description":"d","percentage":25}]`
	p := &fakeProvider{responses: []string{themesJSON, `[]`, `[]`}}

	a := New(p, "Groww", 5, quietLogger())
	result := a.Analyze(context.Background(), testReviews(200))

	if got := result.Themes[0].ReviewCount; got != 50 {
		t.Errorf("ReviewCount = %d, want 50", got)
	}
}

func TestAnalyzeFallbackOnProviderError(t *testing.T) {
	p := &fakeProvider{err: llm.ErrRateLimit}
	a := New(p, "Groww", 5, quietLogger())

	result := a.Analyze(context.Background(), testReviews(20))

	if result == nil {
		t.Fatal("Analyze returned nil on provider error")
	}
	if len(result.Themes) == 0 || len(result.Quotes) == 0 || len(result.Actions) == 0 {
		t.Errorf("fallback content missing: themes=%d quotes=%d actions=%d",
			len(result.Themes), len(result.Quotes), len(result.Actions))
	}
	if result.Meta.TotalReviews != 20 {
		t.Errorf("Meta.TotalReviews = %d, want 20", result.Meta.TotalReviews)
	}
}

func TestAnalyzeFallbackOnMalformedResponse(t *testing.T) {
	p := &fakeProvider{responses: []string{"I could not produce JSON, sorry.", "nope", "still no"}}
	a := New(p, "Groww", 5, quietLogger())

	result := a.Analyze(context.Background(), testReviews(20))

	if len(result.Themes) != 3 {
		t.Errorf("fallback themes = %d, want 3", len(result.Themes))
	}
	if result.Themes[0].Name != "KYC & Verification" {
		t.Errorf("fallback theme name = %q", result.Themes[0].Name)
	}
}

func TestAnalyzeCapsThemesAtMax(t *testing.T) {
	themesJSON := `[
		{"theme":"A","description":"d","percentage":20},
		{"theme":"B","description":"d","percentage":20},
		{"theme":"C","description":"d","percentage":20},
		{"theme":"D","description":"d","percentage":20}
	]`
	p := &fakeProvider{responses: []string{themesJSON, `[]`, `[]`}}

	a := New(p, "Groww", 2, quietLogger())
	result := a.Analyze(context.Background(), testReviews(10))

	if len(result.Themes) != 2 {
		t.Errorf("themes = %d, want cap of 2", len(result.Themes))
	}
}

func TestSampleReviewsDeterministic(t *testing.T) {
	c := testReviews(500)

	s1 := sampleReviews(c, 200)
	s2 := sampleReviews(c, 200)

	if len(s1) != 200 {
		t.Fatalf("sample size = %d, want 200", len(s1))
	}
	for i := range s1 {
		if s1[i].Text != s2[i].Text {
			t.Fatalf("sample not deterministic at index %d", i)
		}
	}
}

func TestSampleReviewsSmallCollectionUntouched(t *testing.T) {
	c := testReviews(50)
	if got := sampleReviews(c, 200); len(got) != 50 {
		t.Errorf("sample size = %d, want all 50", len(got))
	}
}

func TestFormatListingTruncates(t *testing.T) {
	long := strings.Repeat("x", 300)
	c := models.Collection{{Platform: models.PlatformIOS, Rating: 2, Text: long, Date: time.Now()}}

	line := formatListing(c, 200, false)
	if !strings.HasPrefix(line, "[iOS | Rating: 2/5] ") {
		t.Errorf("unexpected listing prefix: %q", line[:30])
	}
	if want := 200; strings.Count(line, "x") != want {
		t.Errorf("body length = %d, want %d", strings.Count(line, "x"), want)
	}
}

func TestExecutiveAnalyze(t *testing.T) {
	execJSON := `{
		"executive_summary": ["Negative sentiment concentrated in KYC"],
		"themes": [{"theme":"KYC Delays","percentage":30,"severity":"High","business_risk":"Trust","description":"d"}],
		"deep_dives": [{"theme":"KYC Delays","problem":"p","why_matters":"w","quote":"q","segments":"new users"}],
		"rating_drivers": ["KYC drives 45% of 1-2 star reviews"],
		"positive_signals": ["UI praised"],
		"recommendations": [{"action":"a","problem":"p","user_impact":"u","business_impact":"b","priority":"P0"}],
		"leadership_decisions": ["Staff KYC ops"]
	}`
	p := &fakeProvider{responses: []string{execJSON}}

	a := NewExecutive(p, "Groww", quietLogger())
	result := a.Analyze(context.Background(), testReviews(100))

	if result.Kind() != models.KindExecutive {
		t.Errorf("Kind = %q, want executive", result.Kind())
	}
	if result.Meta.TotalReviews != 100 {
		t.Errorf("Meta.TotalReviews = %d, want 100", result.Meta.TotalReviews)
	}
	if got := result.Themes[0].ReviewCount; got != 30 {
		t.Errorf("derived ReviewCount = %d, want 30", got)
	}
	if len(result.Recommendations) != 1 || result.Recommendations[0].Priority != "P0" {
		t.Errorf("recommendations not parsed: %+v", result.Recommendations)
	}
}

func TestExecutiveFallbackOnError(t *testing.T) {
	p := &fakeProvider{err: llm.ErrProviderDown}
	a := NewExecutive(p, "Groww", quietLogger())

	result := a.Analyze(context.Background(), testReviews(40))

	if result.Meta.TotalReviews != 40 {
		t.Errorf("fallback Meta.TotalReviews = %d, want 40", result.Meta.TotalReviews)
	}
	if len(result.Recommendations) == 0 || result.Recommendations[0].Priority != "P0" {
		t.Errorf("fallback recommendations missing: %+v", result.Recommendations)
	}
	found := false
	for _, line := range result.ExecutiveSummary {
		if strings.Contains(line, "Unable to generate") {
			found = true
		}
	}
	if !found {
		t.Error("fallback summary does not flag the failure")
	}
}

func TestStratifySample(t *testing.T) {
	var c models.Collection
	add := func(rating, n int) {
		for i := 0; i < n; i++ {
			c = append(c, models.Review{Rating: rating, Text: fmt.Sprintf("r%d-%d", rating, i), Date: time.Now()})
		}
	}
	add(1, 200)
	add(3, 200)
	add(5, 400)

	out := stratifySample(c)
	if len(out) != 300 {
		t.Fatalf("sample size = %d, want 300", len(out))
	}

	counts := map[string]int{}
	for _, r := range out {
		switch {
		case r.Rating <= 2:
			counts["neg"]++
		case r.Rating == 3:
			counts["neu"]++
		default:
			counts["pos"]++
		}
	}
	if counts["neg"] != 100 || counts["neu"] != 50 || counts["pos"] != 150 {
		t.Errorf("band counts = %v, want neg=100 neu=50 pos=150", counts)
	}
}

func TestStratifySampleSmallCollectionUntouched(t *testing.T) {
	c := testReviews(250)
	if got := stratifySample(c); len(got) != 250 {
		t.Errorf("sample size = %d, want all 250", len(got))
	}
}
