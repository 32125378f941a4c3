package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Donelpee/travelcover-insurance/internal/domain/repository"
	"github.com/Donelpee/travelcover-insurance/pkg/logger"
)

const twilioBaseURL = "https://api.twilio.com/2010-04-01"

// TwilioGateway sends SMS through the Twilio Messages API.
type TwilioGateway struct {
	logger     logger.Logger
	accountSID string
	authToken  string
	fromNumber string
	client     *http.Client
}

// NewTwilioGateway creates a new Twilio SMS gateway
func NewTwilioGateway(accountSID, authToken, fromNumber string, logger logger.Logger) repository.SMSGateway {
	return &TwilioGateway{
		logger:     logger,
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *TwilioGateway) Name() string { return "twilio" }

// SendSMS delivers a plain-text message and returns the Twilio SID.
func (g *TwilioGateway) SendSMS(ctx context.Context, to, body string) (string, error) {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", g.fromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", twilioBaseURL, g.accountSID)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(g.accountSID, g.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var response struct {
		Sid     string `json:"sid"`
		Status  string `json:"status"`
		Message string `json:"message"`
		Code    int    `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("twilio returned status %d: %s (code: %d)", resp.StatusCode, response.Message, response.Code)
	}

	g.logger.Info("SMS accepted by Twilio", "to", to, "sid", response.Sid, "status", response.Status)
	return response.Sid, nil
}
