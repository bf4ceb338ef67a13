package models

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, 8, d, 12, 0, 0, 0, time.UTC)
}

func TestSortByDateDesc(t *testing.T) {
	c := Collection{
		{Text: "old", Date: day(1)},
		{Text: "new", Date: day(20)},
		{Text: "mid", Date: day(10)},
	}
	c.SortByDateDesc()

	if c[0].Text != "new" || c[1].Text != "mid" || c[2].Text != "old" {
		t.Errorf("order = %s, %s, %s", c[0].Text, c[1].Text, c[2].Text)
	}
}

func TestFilterSince(t *testing.T) {
	c := Collection{
		{Text: "keep-new", Date: day(20)},
		{Text: "keep-boundary", Date: day(10)},
		{Text: "drop", Date: day(9)},
	}

	got := c.FilterSince(day(10))
	if len(got) != 2 {
		t.Fatalf("kept %d reviews, want 2", len(got))
	}
	for _, r := range got {
		if r.Text == "drop" {
			t.Error("review older than cutoff survived the filter")
		}
	}
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"empty", nil, 0},
		{"single", []int{4}, 4.0},
		{"rounds to two decimals", []int{5, 4, 4}, 4.33},
		{"rounds up", []int{5, 5, 4}, 4.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Collection
			for _, r := range tt.ratings {
				c = append(c, Review{Rating: r, Date: day(1)})
			}
			if got := c.AverageRating(); got != tt.want {
				t.Errorf("AverageRating() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSentimentPartitions(t *testing.T) {
	var c Collection
	for rating, n := range map[int]int{1: 1, 2: 1, 3: 2, 4: 1, 5: 2} {
		for i := 0; i < n; i++ {
			c = append(c, Review{Rating: rating, Date: day(1)})
		}
	}

	s := c.Sentiment()
	if s.PositivePct != 42.9 {
		t.Errorf("PositivePct = %v, want 42.9", s.PositivePct)
	}
	if s.NeutralPct != 28.6 {
		t.Errorf("NeutralPct = %v, want 28.6", s.NeutralPct)
	}
	if s.NegativePct != 28.6 {
		t.Errorf("NegativePct = %v, want 28.6", s.NegativePct)
	}
}

func TestSentimentEmpty(t *testing.T) {
	s := Collection{}.Sentiment()
	if s.PositivePct != 0 || s.NeutralPct != 0 || s.NegativePct != 0 {
		t.Errorf("empty sentiment = %+v, want zeros", s)
	}
}

func TestDateRange(t *testing.T) {
	c := Collection{
		{Date: day(10)},
		{Date: day(3)},
		{Date: day(25)},
	}
	start, end := c.DateRange()
	if !start.Equal(day(3)) || !end.Equal(day(25)) {
		t.Errorf("range = %v..%v, want day 3..25", start, end)
	}
}

func TestComputeStats(t *testing.T) {
	c := Collection{
		{Rating: 5, Date: day(20)},
		{Rating: 3, Date: day(10)},
		{Rating: 1, Date: day(5)},
	}
	stats := ComputeStats(c)

	if stats.TotalReviews != 3 {
		t.Errorf("TotalReviews = %d", stats.TotalReviews)
	}
	if stats.AvgRating != 3.0 {
		t.Errorf("AvgRating = %v", stats.AvgRating)
	}
	if stats.StartDate != "2026-08-05" || stats.EndDate != "2026-08-20" {
		t.Errorf("dates = %s..%s", stats.StartDate, stats.EndDate)
	}
}

func TestDeriveCount(t *testing.T) {
	tests := []struct {
		total int
		pct   float64
		want  int
	}{
		{200, 25, 50},
		{7, 33, 2},   // truncates, never rounds up
		{100, 0, 0},
		{0, 50, 0},
		{3, 99.9, 2},
	}

	for _, tt := range tests {
		th := Theme{Percentage: tt.pct}
		th.DeriveCount(tt.total)
		if th.ReviewCount != tt.want {
			t.Errorf("DeriveCount(%d) with %v%% = %d, want %d", tt.total, tt.pct, th.ReviewCount, tt.want)
		}
	}
}

func TestAnalysisKinds(t *testing.T) {
	var a Analysis = &SimpleAnalysis{}
	if a.Kind() != KindSimple {
		t.Errorf("SimpleAnalysis.Kind() = %q", a.Kind())
	}
	a = &ExecutiveAnalysis{}
	if a.Kind() != KindExecutive {
		t.Errorf("ExecutiveAnalysis.Kind() = %q", a.Kind())
	}
}

func TestCountByPlatform(t *testing.T) {
	c := Collection{
		{Platform: PlatformAndroid, Date: day(1)},
		{Platform: PlatformAndroid, Date: day(2)},
		{Platform: PlatformIOS, Date: day(3)},
	}
	if got := c.CountByPlatform(PlatformAndroid); got != 2 {
		t.Errorf("android count = %d", got)
	}
	if got := c.CountByPlatform(PlatformIOS); got != 1 {
		t.Errorf("ios count = %d", got)
	}
}
