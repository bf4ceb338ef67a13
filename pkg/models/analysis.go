package models

// Stats holds the aggregate figures computed directly from the collection,
// never taken from the LLM.
type Stats struct {
	TotalReviews int            `json:"total_reviews"`
	AvgRating    float64        `json:"avg_rating"`
	Sentiment    SentimentBands `json:"sentiment"`
	StartDate    string         `json:"start_date"` // YYYY-MM-DD
	EndDate      string         `json:"end_date"`   // YYYY-MM-DD
}

// ComputeStats derives the aggregate figures for a collection.
func ComputeStats(c Collection) Stats {
	s := Stats{
		TotalReviews: len(c),
		AvgRating:    c.AverageRating(),
		Sentiment:    c.Sentiment(),
	}
	if len(c) > 0 {
		start, end := c.DateRange()
		s.StartDate = start.Format("2006-01-02")
		s.EndDate = end.Format("2006-01-02")
	}
	return s
}

// AnalysisKind tags the two analysis schema variants.
type AnalysisKind string

const (
	KindSimple    AnalysisKind = "simple"
	KindExecutive AnalysisKind = "executive"
)

// Analysis is the structured output of the summarization stage.
// It is a closed sum of SimpleAnalysis and ExecutiveAnalysis; consumers
// type-switch on the concrete type instead of probing for optional keys.
type Analysis interface {
	Kind() AnalysisKind
	Stats() Stats
}

// Theme is a named topic cluster with an estimated share of the collection.
// Severity and BusinessRisk are populated only by the executive analyzer.
type Theme struct {
	Name         string  `json:"theme"`
	Description  string  `json:"description"`
	Percentage   float64 `json:"percentage"`
	ReviewCount  int     `json:"review_count"`
	Severity     string  `json:"severity,omitempty"`      // High / Medium / Low
	BusinessRisk string  `json:"business_risk,omitempty"` // Trust / Revenue / Onboarding / Experience
}

// DeriveCount converts the theme's percentage share into an absolute review
// count, truncating toward zero.
func (t *Theme) DeriveCount(total int) {
	t.ReviewCount = int(float64(total) * t.Percentage / 100)
}

// Quote is one illustrative user quote tied to a theme.
type Quote struct {
	Text      string `json:"quote"`
	Theme     string `json:"theme"`
	Sentiment string `json:"sentiment"` // positive / negative / neutral
}

// DeepDive is the executive variant's per-theme insight block.
type DeepDive struct {
	Theme      string `json:"theme"`
	Problem    string `json:"problem"`
	WhyMatters string `json:"why_matters"`
	Quote      string `json:"quote"`
	Segments   string `json:"segments"`
}

// Recommendation is a prioritized action item from the executive analyzer.
type Recommendation struct {
	Action         string `json:"action"`
	Problem        string `json:"problem"`
	UserImpact     string `json:"user_impact"`
	BusinessImpact string `json:"business_impact"`
	Priority       string `json:"priority"` // P0 / P1 / P2
}

// SimpleAnalysis is the themes/quotes/actions variant.
type SimpleAnalysis struct {
	Meta    Stats    `json:"metadata"`
	Themes  []Theme  `json:"themes"`
	Quotes  []Quote  `json:"quotes"`
	Actions []string `json:"actions"`
}

func (a *SimpleAnalysis) Kind() AnalysisKind { return KindSimple }
func (a *SimpleAnalysis) Stats() Stats       { return a.Meta }

// ExecutiveAnalysis is the richer variant with severity and business-risk
// tagging, deep dives, and leadership decision items.
type ExecutiveAnalysis struct {
	Meta                Stats            `json:"metadata"`
	ExecutiveSummary    []string         `json:"executive_summary"`
	Themes              []Theme          `json:"themes"`
	DeepDives           []DeepDive       `json:"deep_dives"`
	RatingDrivers       []string         `json:"rating_drivers"`
	PositiveSignals     []string         `json:"positive_signals"`
	Recommendations     []Recommendation `json:"recommendations"`
	LeadershipDecisions []string         `json:"leadership_decisions"`
}

func (a *ExecutiveAnalysis) Kind() AnalysisKind { return KindExecutive }
func (a *ExecutiveAnalysis) Stats() Stats       { return a.Meta }
