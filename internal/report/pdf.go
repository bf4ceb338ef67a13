package report

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/seenimoa/reviewpulse/pkg/models"
)

// renderPDF writes the analysis as an A4 PDF. The core fonts are
// latin-1 only, so the PDF uses plain-text labels where the Markdown
// report uses emoji.
func renderPDF(analysis models.Analysis, appName string, now time.Time, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	stats := analysis.Stats()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("%s Weekly Review Insights", appName)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	meta := [][2]string{
		{"Period", fmt.Sprintf("%s to %s", stats.StartDate, stats.EndDate)},
		{"Total Reviews", fmt.Sprintf("%d", stats.TotalReviews)},
		{"Average Rating", fmt.Sprintf("%.2f / 5", stats.AvgRating)},
		{"Positive (4-5 stars)", fmt.Sprintf("%.1f%%", stats.Sentiment.PositivePct)},
		{"Neutral (3 stars)", fmt.Sprintf("%.1f%%", stats.Sentiment.NeutralPct)},
		{"Negative (1-2 stars)", fmt.Sprintf("%.1f%%", stats.Sentiment.NegativePct)},
	}
	for _, row := range meta {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(50, 7, tr(row[0]), "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 7, tr(row[1]), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	switch a := analysis.(type) {
	case *models.SimpleAnalysis:
		writeSimplePDF(pdf, tr, a)
	case *models.ExecutiveAnalysis:
		writeExecutivePDF(pdf, tr, a)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Report generated on %s", now.Format("January 2, 2006 at 3:04 PM"))), "", 1, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}

func pdfHeading(pdf *fpdf.Fpdf, tr func(string) string, text string) {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, tr(text), "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func pdfBody(pdf *fpdf.Fpdf, tr func(string) string, text string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5.5, tr(text), "", "L", false)
	pdf.Ln(1)
}

func writeSimplePDF(pdf *fpdf.Fpdf, tr func(string) string, a *models.SimpleAnalysis) {
	pdfHeading(pdf, tr, "Top Themes This Week")
	for i, t := range a.Themes {
		if i == 3 {
			break
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, tr(fmt.Sprintf("%d. %s (%.0f%% of reviews, ~%d reviews)", i+1, t.Name, t.Percentage, t.ReviewCount)), "", 1, "L", false, 0, "")
		pdfBody(pdf, tr, t.Description)
	}
	pdf.Ln(3)

	pdfHeading(pdf, tr, "What Users Are Saying")
	for _, q := range a.Quotes {
		pdfBody(pdf, tr, fmt.Sprintf("\"%s\" (%s, %s)", q.Text, q.Theme, q.Sentiment))
	}
	pdf.Ln(3)

	pdfHeading(pdf, tr, "Recommended Actions")
	for i, action := range a.Actions {
		pdfBody(pdf, tr, fmt.Sprintf("%d. %s", i+1, action))
	}
}

func writeExecutivePDF(pdf *fpdf.Fpdf, tr func(string) string, a *models.ExecutiveAnalysis) {
	pdfHeading(pdf, tr, "Executive Summary")
	for _, line := range a.ExecutiveSummary {
		pdfBody(pdf, tr, "- "+line)
	}
	pdf.Ln(3)

	pdfHeading(pdf, tr, "Theme Segmentation")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(50, 7, "Theme", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "% Reviews", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 7, "Severity", "1", 0, "C", false, 0, "")
	pdf.CellFormat(0, 7, "Business Risk", "1", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, t := range a.Themes {
		pdf.CellFormat(50, 7, tr(t.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.0f%%", t.Percentage), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, tr(t.Severity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(0, 7, tr(t.BusinessRisk), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	if len(a.DeepDives) > 0 {
		pdfHeading(pdf, tr, "High-Impact Insights")
		for i, d := range a.DeepDives {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(0, 7, tr(fmt.Sprintf("%d. %s", i+1, d.Theme)), "", 1, "L", false, 0, "")
			pdfBody(pdf, tr, fmt.Sprintf("Problem: %s", d.Problem))
			pdfBody(pdf, tr, fmt.Sprintf("Why it matters: %s", d.WhyMatters))
			pdfBody(pdf, tr, fmt.Sprintf("\"%s\"", d.Quote))
			pdfBody(pdf, tr, fmt.Sprintf("Segments: %s", d.Segments))
		}
		pdf.Ln(3)
	}

	if len(a.RatingDrivers) > 0 {
		pdfHeading(pdf, tr, "Rating Drivers")
		for _, line := range a.RatingDrivers {
			pdfBody(pdf, tr, "- "+line)
		}
		pdf.Ln(3)
	}

	if len(a.PositiveSignals) > 0 {
		pdfHeading(pdf, tr, "Positive Signals")
		for _, line := range a.PositiveSignals {
			pdfBody(pdf, tr, "- "+line)
		}
		pdf.Ln(3)
	}

	pdfHeading(pdf, tr, "Recommendations")
	for i, r := range a.Recommendations {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("%d. [%s] %s", i+1, r.Priority, r.Action)), "", 1, "L", false, 0, "")
		pdfBody(pdf, tr, fmt.Sprintf("Problem: %s | User impact: %s | Business impact: %s", r.Problem, r.UserImpact, r.BusinessImpact))
	}

	if len(a.LeadershipDecisions) > 0 {
		pdf.Ln(3)
		pdfHeading(pdf, tr, "Leadership Decisions Required")
		for _, line := range a.LeadershipDecisions {
			pdfBody(pdf, tr, "- "+line)
		}
	}
}
