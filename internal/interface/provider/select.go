package provider

import (
	"context"
	"fmt"

	"github.com/Donelpee/travelcover-insurance/internal/domain/repository"
	"github.com/Donelpee/travelcover-insurance/internal/infrastructure/config"
	"github.com/Donelpee/travelcover-insurance/internal/infrastructure/oauth"
	"github.com/Donelpee/travelcover-insurance/pkg/logger"
)

// SelectSMSGateway builds the configured SMS gateway. The three
// providers are interchangeable behind the same contract.
func SelectSMSGateway(cfg *config.Config, log logger.Logger) (repository.SMSGateway, error) {
	switch cfg.SMSProvider {
	case "termii":
		return NewTermiiGateway(cfg.TermiiBaseURL, cfg.TermiiAPIKey, cfg.SMSSenderID, log), nil
	case "twilio":
		return NewTwilioGateway(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, log), nil
	case "bulksms":
		return NewBulkSMSGateway(cfg.BulkSMSBaseURL, cfg.BulkSMSAPIToken, cfg.SMSSenderID, log), nil
	}
	return nil, fmt.Errorf("unknown SMS provider %q", cfg.SMSProvider)
}

// SelectEmailGateway builds the configured email gateway.
func SelectEmailGateway(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.EmailGateway, error) {
	switch cfg.EmailProvider {
	case "resend":
		return NewResendGateway(cfg.ResendAPIKey, cfg.ResendFrom, log), nil
	case "gmail":
		gmailOAuth := oauth.NewGmailOAuth(cfg.GmailClientID, cfg.GmailClientSecret, cfg.GmailRefreshToken, log)
		return NewGmailGateway(ctx, gmailOAuth.GetTokenSource(ctx), cfg.GmailFrom, log)
	}
	return nil, fmt.Errorf("unknown email provider %q", cfg.EmailProvider)
}
