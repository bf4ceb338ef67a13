// Package report renders an analysis result into Markdown and PDF
// documents on disk.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/seenimoa/reviewpulse/pkg/models"
)

// Generator writes the weekly report files into an output directory.
type Generator struct {
	appName string
	outDir  string
	log     *logrus.Entry
	now     func() time.Time
}

// NewGenerator creates a report generator. outDir defaults to "reports".
func NewGenerator(appName, outDir string, log *logrus.Logger) *Generator {
	if outDir == "" {
		outDir = "reports"
	}
	return &Generator{
		appName: appName,
		outDir:  outDir,
		log:     log.WithField("component", "report"),
		now:     time.Now,
	}
}

// Result names the files a Generate call produced.
type Result struct {
	MarkdownPath string
	PDFPath      string
}

// Generate renders the analysis into weekly_report_<yyyymmdd>.md and .pdf
// under the output directory. Rendering is deterministic for a given
// analysis and date.
func (g *Generator) Generate(analysis models.Analysis) (*Result, error) {
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}

	now := g.now()
	stamp := now.Format("20060102")

	mdPath := filepath.Join(g.outDir, fmt.Sprintf("weekly_report_%s.md", stamp))
	md := renderMarkdown(analysis, g.appName, now)
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return nil, fmt.Errorf("write markdown report: %w", err)
	}
	fmt.Printf("📄 Markdown report saved: %s\n", mdPath)

	pdfPath := filepath.Join(g.outDir, fmt.Sprintf("weekly_report_%s.pdf", stamp))
	if err := renderPDF(analysis, g.appName, now, pdfPath); err != nil {
		return nil, fmt.Errorf("write pdf report: %w", err)
	}
	fmt.Printf("📑 PDF report saved: %s\n", pdfPath)

	g.log.WithFields(logrus.Fields{
		"markdown": mdPath,
		"pdf":      pdfPath,
		"kind":     analysis.Kind(),
	}).Info("report generated")

	return &Result{MarkdownPath: mdPath, PDFPath: pdfPath}, nil
}
