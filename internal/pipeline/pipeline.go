// Package pipeline wires collection, analysis, rendering and delivery
// into one sequential weekly run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/seenimoa/reviewpulse/internal/analyzer"
	"github.com/seenimoa/reviewpulse/internal/config"
	"github.com/seenimoa/reviewpulse/internal/llm"
	"github.com/seenimoa/reviewpulse/internal/mailer"
	"github.com/seenimoa/reviewpulse/internal/report"
	"github.com/seenimoa/reviewpulse/internal/scraper"
	"github.com/seenimoa/reviewpulse/pkg/models"
)

// Collector produces the review collection for a run.
type Collector interface {
	ScrapeAll(ctx context.Context) models.Collection
	SaveCSV(c models.Collection) (string, error)
}

// Renderer writes the report files for an analysis.
type Renderer interface {
	Generate(analysis models.Analysis) (*report.Result, error)
}

// Sender delivers the report mail.
type Sender interface {
	Send(analysis models.Analysis, attachments []string) bool
}

// Pipeline runs the five weekly stages in order. Each run carries a
// unique ID through its log entries.
type Pipeline struct {
	cfg       *config.Config
	collector Collector
	provider  llm.Provider
	renderer  Renderer
	sender    Sender
	log       *logrus.Logger
	skipMail  bool
}

// Option adjusts a Pipeline before first use.
type Option func(*Pipeline)

// WithCollector replaces the default store scraper.
func WithCollector(c Collector) Option { return func(p *Pipeline) { p.collector = c } }

// WithRenderer replaces the default report generator.
func WithRenderer(r Renderer) Option { return func(p *Pipeline) { p.renderer = r } }

// WithSender replaces the default SMTP mailer.
func WithSender(s Sender) Option { return func(p *Pipeline) { p.sender = s } }

// WithProvider replaces the default text-generation provider.
func WithProvider(prov llm.Provider) Option { return func(p *Pipeline) { p.provider = prov } }

// SkipMail disables the delivery stage.
func SkipMail() Option { return func(p *Pipeline) { p.skipMail = true } }

// New assembles a pipeline from the configuration. The provider is
// constructed eagerly so credential problems surface before scraping.
func New(cfg *config.Config, log *logrus.Logger, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{cfg: cfg, log: log}

	for _, opt := range opts {
		opt(p)
	}

	if p.collector == nil {
		p.collector = scraper.New(scraper.Config{
			AndroidAppID: cfg.App.AndroidID,
			IOSAppID:     cfg.App.IOSID,
			Country:      cfg.App.Country,
			Weeks:        cfg.Report.Weeks,
			DataDir:      cfg.Report.DataDir,
		}, log)
	}

	if p.provider == nil {
		key, err := cfg.ActiveLLMKey()
		if err != nil {
			return nil, err
		}
		provider, err := llm.New(llm.Config{
			Provider:    cfg.LLM.Provider,
			APIKey:      key,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		})
		if err != nil {
			return nil, err
		}
		p.provider = provider
	}

	if p.renderer == nil {
		p.renderer = report.NewGenerator(cfg.App.Name, cfg.Report.OutputDir, log)
	}

	if p.sender == nil {
		p.sender = mailer.New(mailer.Config{
			Host:        cfg.Mail.Host,
			Port:        cfg.Mail.Port,
			Address:     cfg.Mail.Address,
			AppPassword: cfg.Mail.AppPassword,
			Recipient:   cfg.Mail.Recipient,
			Style:       mailer.ParseStyle(cfg.Mail.Style),
			AppName:     cfg.App.Name,
		}, log)
	}

	return p, nil
}

// Run executes one weekly cycle. An empty collection ends the run
// early without error; stage failures after analysis propagate so the
// process can exit nonzero.
func (p *Pipeline) Run(ctx context.Context) error {
	runID := uuid.NewString()
	log := p.log.WithFields(logrus.Fields{"run_id": runID, "app": p.cfg.App.Name})
	started := time.Now()

	fmt.Println("🚀 Starting weekly review insights pipeline")
	fmt.Printf("   App: %s | Window: %d weeks | Provider: %s\n\n",
		p.cfg.App.Name, p.cfg.Report.Weeks, p.cfg.LLM.Provider)
	log.Info("pipeline started")

	// Stage 1: collect.
	reviews := p.collector.ScrapeAll(ctx)
	if len(reviews) == 0 {
		fmt.Println("⚠️  No reviews found in the window, nothing to report")
		log.Warn("no reviews collected, stopping")
		return nil
	}

	if path, err := p.collector.SaveCSV(reviews); err != nil {
		log.WithError(err).Warn("raw review export failed")
	} else {
		log.WithField("path", path).Info("raw reviews exported")
	}

	// Stage 2: analyze.
	var analysis models.Analysis
	if p.cfg.Report.Executive {
		analysis = analyzer.NewExecutive(p.provider, p.cfg.App.Name, p.log).Analyze(ctx, reviews)
	} else {
		analysis = analyzer.New(p.provider, p.cfg.App.Name, p.cfg.Report.MaxThemes, p.log).Analyze(ctx, reviews)
	}

	// Stage 3: render.
	result, err := p.renderer.Generate(analysis)
	if err != nil {
		log.WithError(err).Error("report generation failed")
		return fmt.Errorf("generate report: %w", err)
	}

	// Stage 4: deliver.
	mailed := false
	if p.skipMail {
		fmt.Println("📪 Mail delivery skipped")
	} else {
		mailed = p.sender.Send(analysis, []string{result.MarkdownPath, result.PDFPath})
	}

	// Stage 5: summarize.
	stats := analysis.Stats()
	fmt.Println("\n══════════════════════════════════════")
	fmt.Println("✅ Pipeline complete!")
	fmt.Printf("   Reviews analyzed: %d\n", stats.TotalReviews)
	fmt.Printf("   Average rating:   %.2f/5\n", stats.AvgRating)
	fmt.Printf("   Markdown report:  %s\n", result.MarkdownPath)
	fmt.Printf("   PDF report:       %s\n", result.PDFPath)
	fmt.Printf("   Email delivered:  %v\n", mailed)
	fmt.Printf("   Duration:         %s\n", time.Since(started).Round(time.Second))
	fmt.Println("══════════════════════════════════════")

	log.WithFields(logrus.Fields{
		"reviews":  stats.TotalReviews,
		"mailed":   mailed,
		"duration": time.Since(started).Round(time.Millisecond).String(),
	}).Info("pipeline finished")

	return nil
}
