package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Donelpee/travelcover-insurance/internal/domain/repository"
	"github.com/Donelpee/travelcover-insurance/pkg/logger"
)

const resendBaseURL = "https://api.resend.com"

// ResendGateway sends email through the Resend API.
type ResendGateway struct {
	logger logger.Logger
	apiKey string
	from   string
	client *http.Client
}

// NewResendGateway creates a new Resend email gateway
func NewResendGateway(apiKey, from string, logger logger.Logger) repository.EmailGateway {
	return &ResendGateway{
		logger: logger,
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *ResendGateway) Name() string { return "resend" }

// SendEmail delivers an HTML email and returns the Resend message id.
func (g *ResendGateway) SendEmail(ctx context.Context, to, subject, htmlBody string) (string, error) {
	payload := map[string]interface{}{
		"from":    g.from,
		"to":      []string{to},
		"subject": subject,
		"html":    htmlBody,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", resendBaseURL+"/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("resend returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	g.logger.Info("Email accepted by Resend", "to", to, "messageId", response.ID)
	return response.ID, nil
}
