package repository

import "context"

// SMSGateway abstracts an SMS provider behind a uniform send contract.
// Implementations are interchangeable; the configured one is selected
// at startup.
type SMSGateway interface {
	// SendSMS delivers a plain-text message and returns the provider's
	// message id when available.
	SendSMS(ctx context.Context, to, body string) (string, error)
	Name() string
}

// EmailGateway abstracts an email provider behind a uniform send
// contract.
type EmailGateway interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) (string, error)
	Name() string
}
