package services

import (
	"context"
	"fmt"
	"log/slog"

	"zone37/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendPricingUpdated sends the "pricing_updated" template to the configured organizer address.
func (s *emailService) SendPricingUpdated(ctx context.Context, data *domain.PricingUpdatedEmailData) error {
	if data == nil {
		return fmt.Errorf("pricing updated email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("pricing_updated", data)
	if err != nil {
		return fmt.Errorf("failed to render pricing_updated template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send pricing updated email: %w", err)
	}
	s.logger.InfoContext(ctx, "pricing updated email sent", "to", data.Email, "game", data.GameSlug)
	return nil
}
