package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/vilaserena/care_finance_app/internal/core/domain"
	"github.com/vilaserena/care_finance_app/internal/platform/config"
)

// Sender emails operators a summary of completed batch readjustment runs.
// Sending is best effort: failures are logged and never affect the run result.
type Sender struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewSender creates a new email sender.
func NewSender(cfg *config.Config, logger *slog.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// NotifyReadjustmentApplied sends the run summary to the configured recipient.
func (s *Sender) NotifyReadjustmentApplied(_ context.Context, percentage decimal.Decimal, reason string, result domain.ReadjustmentRunResult) {
	if s.cfg.SMTPHost == "" || s.cfg.SummaryRecipient == "" {
		return
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{s.cfg.SummaryRecipient}
	e.Subject = fmt.Sprintf("Fee readjustment applied: %s%% (%s)", percentage.String(), reason)

	var body strings.Builder
	fmt.Fprintf(&body, "A batch fee readjustment of %s%% (%s) has completed.\n\n", percentage.String(), reason)
	fmt.Fprintf(&body, "Residents updated: %d\n", result.SuccessCount)
	fmt.Fprintf(&body, "Residents failed:  %d\n", result.ErrorCount)
	if len(result.Details) > 0 {
		body.WriteString("\nFailures:\n")
		for _, detail := range result.Details {
			fmt.Fprintf(&body, "  - %s\n", detail)
		}
	}
	e.Text = []byte(body.String())

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Error("Failed to send readjustment summary email",
			slog.String("recipient", s.cfg.SummaryRecipient),
			slog.String("error", err.Error()))
		return
	}

	s.logger.Info("Readjustment summary email sent", slog.String("recipient", s.cfg.SummaryRecipient))
}
