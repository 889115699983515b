package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// PricingUpdatedEmailData holds data for the pricing updated notification.
type PricingUpdatedEmailData struct {
	Email    string
	GameName string
	GameSlug string
	Periods  []PricePeriod
	SavedAt  time.Time
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendPricingUpdated(ctx context.Context, data *PricingUpdatedEmailData) error
}
