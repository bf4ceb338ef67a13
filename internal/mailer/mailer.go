// Package mailer delivers the weekly report over SMTP with the
// rendered documents attached.
package mailer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"

	"github.com/seenimoa/reviewpulse/pkg/models"
)

// Config holds the SMTP account settings. Host and Port default to
// Gmail's implicit-TLS endpoint.
type Config struct {
	Host        string
	Port        int
	Address     string
	AppPassword string
	Recipient   string
	Style       Style
	AppName     string
}

// Mailer sends report mail. Send reports success as a boolean so the
// pipeline can finish even when delivery fails.
type Mailer struct {
	cfg Config
	log *logrus.Entry
}

// New creates a mailer. Recipient defaults to the sender address.
func New(cfg Config, log *logrus.Logger) *Mailer {
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == 0 {
		cfg.Port = 465
	}
	if cfg.Recipient == "" {
		cfg.Recipient = cfg.Address
	}
	if cfg.Style == "" {
		cfg.Style = StylePlain
	}
	return &Mailer{cfg: cfg, log: log.WithField("component", "mailer")}
}

// Send emails the analysis with the given attachment paths. Missing
// attachments are skipped with a warning. Returns true when the mail
// was accepted by the server.
func (m *Mailer) Send(analysis models.Analysis, attachments []string) bool {
	fmt.Printf("📧 Sending report to %s...\n", m.cfg.Recipient)

	if m.cfg.Address == "" || m.cfg.AppPassword == "" {
		m.log.Warn("mail credentials not configured, skipping delivery")
		fmt.Println("⚠️  Email not configured, skipping delivery")
		return false
	}

	body, err := renderBody(m.cfg.Style, m.cfg.AppName, analysis)
	if err != nil {
		m.log.WithError(err).Error("render mail body")
		return false
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.Address); err != nil {
		m.log.WithError(err).Error("invalid sender address")
		return false
	}
	if err := msg.To(m.cfg.Recipient); err != nil {
		m.log.WithError(err).Error("invalid recipient address")
		return false
	}
	msg.Subject(Subject(m.cfg.AppName, analysis))
	msg.SetBodyString(mail.TypeTextHTML, body)

	for _, path := range m.existingAttachments(attachments) {
		msg.AttachFile(path, mail.WithFileContentType(attachmentContentType(path)))
	}

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.cfg.Address),
		mail.WithPassword(m.cfg.AppPassword),
		mail.WithTimeout(30*time.Second),
	)
	if err != nil {
		m.log.WithError(err).Error("smtp client setup")
		return false
	}

	if err := client.DialAndSend(msg); err != nil {
		m.log.WithError(err).Error("mail delivery failed")
		fmt.Println("❌ Failed to send email")
		fmt.Println("   Check that:")
		fmt.Println("   - 2-Step Verification is enabled on the account")
		fmt.Println("   - The password is an App Password, not the account password")
		fmt.Println("   - The App Password has no spaces")
		return false
	}

	fmt.Println("✅ Report emailed successfully!")
	m.log.WithField("recipient", m.cfg.Recipient).Info("report delivered")
	return true
}

// existingAttachments drops paths that do not exist on disk. The policy
// is the same for every mail style.
func (m *Mailer) existingAttachments(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			m.log.WithField("path", p).Warn("attachment missing, skipping")
			fmt.Printf("⚠️  Attachment not found, skipping: %s\n", p)
			continue
		}
		out = append(out, p)
	}
	return out
}

func attachmentContentType(path string) mail.ContentType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return mail.ContentType("application/pdf")
	case ".md":
		return mail.TypeTextPlain
	default:
		return mail.ContentType("application/octet-stream")
	}
}
