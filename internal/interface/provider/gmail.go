package provider

import (
	"context"
	"encoding/base64"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/Donelpee/travelcover-insurance/internal/domain/repository"
	"github.com/Donelpee/travelcover-insurance/pkg/logger"
)

// GmailGateway sends email from an application-owned mailbox through
// the Gmail API.
type GmailGateway struct {
	logger  logger.Logger
	service *gmail.Service
	from    string
}

// NewGmailGateway creates a new Gmail email gateway
func NewGmailGateway(ctx context.Context, tokenSource oauth2.TokenSource, from string, logger logger.Logger) (repository.EmailGateway, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &GmailGateway{
		logger:  logger,
		service: service,
		from:    from,
	}, nil
}

func (g *GmailGateway) Name() string { return "gmail" }

// SendEmail delivers an HTML email and returns the Gmail message id.
func (g *GmailGateway) SendEmail(ctx context.Context, to, subject, htmlBody string) (string, error) {
	raw := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		g.from, to, subject, htmlBody)

	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	sent, err := g.service.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send via Gmail: %w", err)
	}

	g.logger.Info("Email accepted by Gmail", "to", to, "messageId", sent.Id)
	return sent.Id, nil
}
