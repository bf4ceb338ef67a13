package mailer

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/seenimoa/reviewpulse/pkg/models"
)

// Style selects the HTML body layout. All styles render from the same
// extracted view data, so every analysis variant works with every style.
type Style string

const (
	StylePlain     Style = "plain"
	StyleExecutive Style = "executive"
	StyleDashboard Style = "dashboard"
)

// ParseStyle normalizes a config value, defaulting to plain.
func ParseStyle(s string) Style {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(StyleExecutive):
		return StyleExecutive
	case string(StyleDashboard):
		return StyleDashboard
	default:
		return StylePlain
	}
}

// bodyData is the style-independent view of an analysis.
type bodyData struct {
	AppName   string
	Stats     models.Stats
	Themes    []models.Theme
	Quotes    []models.Quote
	Actions   []string
	Summary   []string
	DeepDives []models.DeepDive
	Recs      []models.Recommendation
	Decisions []string
}

// extractBodyData flattens either analysis variant into the shared view.
func extractBodyData(appName string, analysis models.Analysis) bodyData {
	data := bodyData{AppName: appName, Stats: analysis.Stats()}

	switch a := analysis.(type) {
	case *models.SimpleAnalysis:
		data.Themes = a.Themes
		data.Quotes = a.Quotes
		data.Actions = a.Actions
	case *models.ExecutiveAnalysis:
		data.Themes = a.Themes
		data.Summary = a.ExecutiveSummary
		data.DeepDives = a.DeepDives
		data.Recs = a.Recommendations
		data.Decisions = a.LeadershipDecisions
	}
	return data
}

// Subject builds the mail subject line for an analysis.
func Subject(appName string, analysis models.Analysis) string {
	stats := analysis.Stats()
	return fmt.Sprintf("📊 %s Weekly Insights - %s (Avg Rating: %.2f/5)",
		appName, stats.EndDate, stats.AvgRating)
}

var bodyTemplates = template.Must(template.New("mail").Parse(`
{{define "header"}}
<h1 style="color:#1a1a2e;">📊 {{.AppName}} Weekly Review Insights</h1>
<p><strong>Period:</strong> {{.Stats.StartDate}} to {{.Stats.EndDate}}<br>
<strong>Total Reviews:</strong> {{.Stats.TotalReviews}}<br>
<strong>Average Rating:</strong> {{printf "%.2f" .Stats.AvgRating}}/5</p>
<p>😊 {{printf "%.1f" .Stats.Sentiment.PositivePct}}% positive &nbsp;|&nbsp;
😐 {{printf "%.1f" .Stats.Sentiment.NeutralPct}}% neutral &nbsp;|&nbsp;
😞 {{printf "%.1f" .Stats.Sentiment.NegativePct}}% negative</p>
{{end}}

{{define "footer"}}
<hr>
<p style="color:#888;font-size:12px;">Full Markdown and PDF reports are attached.</p>
{{end}}

{{define "plain"}}
<html><body style="font-family:Arial,sans-serif;max-width:700px;margin:0 auto;">
{{template "header" .}}
{{if .Themes}}<h2>🔥 Top Themes</h2><ul>
{{range .Themes}}<li><strong>{{.Name}}</strong> ({{printf "%.0f" .Percentage}}%): {{.Description}}</li>{{end}}
</ul>{{end}}
{{if .Quotes}}<h2>💬 What Users Are Saying</h2>
{{range .Quotes}}<blockquote style="border-left:3px solid #ccc;padding-left:10px;">"{{.Text}}" <em>({{.Sentiment}})</em></blockquote>{{end}}
{{end}}
{{if .Actions}}<h2>✅ Recommended Actions</h2><ol>
{{range .Actions}}<li>{{.}}</li>{{end}}
</ol>{{end}}
{{template "footer" .}}
</body></html>
{{end}}

{{define "executive"}}
<html><body style="font-family:Georgia,serif;max-width:700px;margin:0 auto;">
{{template "header" .}}
{{if .Summary}}<h2>🎯 Executive Summary</h2><ul>
{{range .Summary}}<li>{{.}}</li>{{end}}
</ul>{{end}}
{{if .Themes}}<h2>🔥 Theme Segmentation</h2>
<table border="1" cellpadding="6" cellspacing="0" style="border-collapse:collapse;">
<tr style="background:#1a1a2e;color:#fff;"><th>Theme</th><th>%</th><th>Severity</th><th>Risk</th></tr>
{{range .Themes}}<tr><td>{{.Name}}</td><td>{{printf "%.0f" .Percentage}}%</td><td>{{.Severity}}</td><td>{{.BusinessRisk}}</td></tr>{{end}}
</table>{{end}}
{{if .DeepDives}}<h2>🔍 High-Impact Insights</h2>
{{range .DeepDives}}<p><strong>{{.Theme}}:</strong> {{.Problem}}<br><em>"{{.Quote}}"</em></p>{{end}}
{{end}}
{{if .Recs}}<h2>✅ Recommendations</h2><ol>
{{range .Recs}}<li><strong>[{{.Priority}}]</strong> {{.Action}}</li>{{end}}
</ol>{{end}}
{{if .Decisions}}<h2>🧭 Leadership Decisions Required</h2><ul>
{{range .Decisions}}<li>{{.}}</li>{{end}}
</ul>{{end}}
{{template "footer" .}}
</body></html>
{{end}}

{{define "dashboard"}}
<html><body style="font-family:Arial,sans-serif;max-width:700px;margin:0 auto;background:#f4f4f8;">
<div style="background:#1a1a2e;color:#fff;padding:20px;border-radius:8px 8px 0 0;">
<h1 style="margin:0;">📊 {{.AppName}} Review Pulse</h1>
<p style="margin:4px 0 0;color:#bbb;">{{.Stats.StartDate}} to {{.Stats.EndDate}}</p>
</div>
<div style="padding:20px;background:#fff;">
<table width="100%" cellpadding="10"><tr>
<td align="center" style="background:#eef;border-radius:8px;"><strong style="font-size:24px;">{{.Stats.TotalReviews}}</strong><br>reviews</td>
<td align="center" style="background:#efe;border-radius:8px;"><strong style="font-size:24px;">{{printf "%.2f" .Stats.AvgRating}}</strong><br>avg rating</td>
<td align="center" style="background:#fee;border-radius:8px;"><strong style="font-size:24px;">{{printf "%.1f" .Stats.Sentiment.NegativePct}}%</strong><br>negative</td>
</tr></table>
{{if .Themes}}<h2>🔥 Top Themes</h2>
{{range .Themes}}<div style="margin:8px 0;"><strong>{{.Name}}</strong> {{printf "%.0f" .Percentage}}%
<div style="background:#ddd;border-radius:4px;"><div style="background:#4a4ae6;height:8px;border-radius:4px;width:{{printf "%.0f" .Percentage}}%;"></div></div></div>{{end}}
{{end}}
{{if .Quotes}}<h2>💬 Voices</h2>
{{range .Quotes}}<blockquote style="border-left:3px solid #4a4ae6;padding-left:10px;">"{{.Text}}"</blockquote>{{end}}
{{end}}
{{if .Summary}}<h2>🎯 Summary</h2><ul>{{range .Summary}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{if .Actions}}<h2>✅ Actions</h2><ol>{{range .Actions}}<li>{{.}}</li>{{end}}</ol>{{end}}
{{if .Recs}}<h2>✅ Actions</h2><ol>{{range .Recs}}<li><strong>[{{.Priority}}]</strong> {{.Action}}</li>{{end}}</ol>{{end}}
{{template "footer" .}}
</div>
</body></html>
{{end}}
`))

// renderBody produces the HTML body for the given style.
func renderBody(style Style, appName string, analysis models.Analysis) (string, error) {
	var b strings.Builder
	if err := bodyTemplates.ExecuteTemplate(&b, string(style), extractBodyData(appName, analysis)); err != nil {
		return "", fmt.Errorf("render %s body: %w", style, err)
	}
	return b.String(), nil
}
