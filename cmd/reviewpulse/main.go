// ReviewPulse — Weekly app store review insights.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/seenimoa/reviewpulse/internal/config"
	"github.com/seenimoa/reviewpulse/internal/mailer"
	"github.com/seenimoa/reviewpulse/internal/pipeline"
	"github.com/seenimoa/reviewpulse/pkg/models"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger
var (
	cfg *config.Config
	log = logrus.New()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reviewpulse",
	Short: "ReviewPulse — Weekly app store review insights",
	Long: `ReviewPulse collects the week's Google Play and App Store reviews,
distills them into themes, quotes and recommended actions, renders
Markdown and PDF reports, and emails them to your team.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		configureLogging(cmd)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(testEmailCmd)
	rootCmd.AddCommand(statusCmd)
}

// configureLogging applies config and flag overrides to the global logger.
func configureLogging(cmd *cobra.Command) {
	level := cfg.Logging.Level
	if override, _ := cmd.Flags().GetString("log-level"); override != "" {
		level = override
	}
	if parsed, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(parsed)
	}
	if cfg.Logging.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ReviewPulse %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Run Command ---

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the weekly insights pipeline",
	Long:  "Collect reviews, analyze them, render reports and email the result.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if weeks, _ := cmd.Flags().GetInt("weeks"); weeks > 0 {
			cfg.Report.Weeks = weeks
		}
		if executive, _ := cmd.Flags().GetBool("executive"); executive {
			cfg.Report.Executive = true
		}

		opts := []pipeline.Option{}
		if noMail, _ := cmd.Flags().GetBool("no-email"); noMail {
			opts = append(opts, pipeline.SkipMail())
		}

		p, err := pipeline.New(cfg, log, opts...)
		if err != nil {
			return err
		}
		return p.Run(cmd.Context())
	},
}

func init() {
	runCmd.Flags().Int("weeks", 0, "override the review window in weeks")
	runCmd.Flags().Bool("executive", false, "generate the executive report variant")
	runCmd.Flags().Bool("no-email", false, "skip email delivery")
}

// --- Setup Command ---

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactively create a config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("output")

		fmt.Println("🛠  ReviewPulse Setup")
		fmt.Println("   Press Enter to keep the value shown in brackets.")
		fmt.Println()

		reader := bufio.NewReader(os.Stdin)
		if config.Exists(path) {
			if !confirm(reader, fmt.Sprintf("%s already exists. Overwrite?", path)) {
				fmt.Println("Aborted, existing config kept.")
				return nil
			}
		}

		cfg.App.Name = prompt(reader, "App name", cfg.App.Name)
		cfg.App.AndroidID = prompt(reader, "Play Store package ID", cfg.App.AndroidID)
		cfg.App.IOSID = prompt(reader, "App Store app ID", cfg.App.IOSID)
		cfg.App.Country = prompt(reader, "Store country code", cfg.App.Country)
		cfg.LLM.Provider = prompt(reader, "LLM provider (gemini/openai)", cfg.LLM.Provider)
		switch cfg.LLM.Provider {
		case "openai":
			cfg.LLM.OpenAIKey = prompt(reader, "OpenAI API key", cfg.LLM.OpenAIKey)
		default:
			cfg.LLM.GeminiKey = prompt(reader, "Gemini API key", cfg.LLM.GeminiKey)
		}
		cfg.Mail.Address = prompt(reader, "Gmail address", cfg.Mail.Address)
		cfg.Mail.AppPassword = prompt(reader, "Gmail app password", cfg.Mail.AppPassword)
		cfg.Mail.Recipient = prompt(reader, "Report recipient", cfg.Mail.Recipient)
		cfg.Mail.Style = prompt(reader, "Mail style (plain/executive/dashboard)", cfg.Mail.Style)

		if err := config.Save(cfg, path); err != nil {
			return err
		}
		fmt.Printf("\n✅ Configuration saved to %s\n", path)
		return nil
	},
}

func init() {
	setupCmd.Flags().String("output", "config.yaml", "where to write the config file")
}

func prompt(reader *bufio.Reader, label, current string) string {
	fmt.Printf("  %s [%s]: ", label, current)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	return line
}

func confirm(reader *bufio.Reader, question string) bool {
	fmt.Printf("  %s (y/N): ", question)
	line, _ := reader.ReadString('\n')
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}

// --- Test Email Command ---

var testEmailCmd = &cobra.Command{
	Use:   "test-email",
	Short: "Send a test email with the configured account",
	RunE: func(cmd *cobra.Command, args []string) error {
		m := mailer.New(mailer.Config{
			Host:        cfg.Mail.Host,
			Port:        cfg.Mail.Port,
			Address:     cfg.Mail.Address,
			AppPassword: cfg.Mail.AppPassword,
			Recipient:   cfg.Mail.Recipient,
			Style:       mailer.ParseStyle(cfg.Mail.Style),
			AppName:     cfg.App.Name,
		}, log)

		now := time.Now()
		probe := &models.SimpleAnalysis{
			Meta: models.Stats{
				TotalReviews: 1,
				AvgRating:    5.0,
				Sentiment:    models.SentimentBands{PositivePct: 100},
				StartDate:    now.Format("2006-01-02"),
				EndDate:      now.Format("2006-01-02"),
			},
			Themes:  []models.Theme{{Name: "Test Delivery", Description: "This is a delivery test from ReviewPulse.", Percentage: 100, ReviewCount: 1}},
			Actions: []string{"If you can read this, mail delivery works."},
		}

		if !m.Send(probe, nil) {
			return fmt.Errorf("test email failed")
		}
		return nil
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  ReviewPulse — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:       %s (%s)\n", version, commit)
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    App:           %s (android: %s, ios: %s, store: %s)\n",
			cfg.App.Name, cfg.App.AndroidID, cfg.App.IOSID, cfg.App.Country)
		fmt.Printf("    LLM Provider:  %s (model: %s)\n", cfg.LLM.Provider, cfg.LLM.Model)
		fmt.Printf("    Review window: %d weeks\n", cfg.Report.Weeks)
		fmt.Printf("    Report style:  executive=%v, mail=%s\n", cfg.Report.Executive, cfg.Mail.Style)
		fmt.Printf("    Output:        %s (raw data: %s)\n", cfg.Report.OutputDir, cfg.Report.DataDir)
		fmt.Println()

		fmt.Println("  Credentials:")
		for _, k := range cfg.CheckKeys() {
			status := "❌ not set"
			if k.Set {
				status = fmt.Sprintf("✅ set (%s)", k.Masked)
			}
			fmt.Printf("    %-20s %s\n", k.Name+":", status)
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}
