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

// TermiiGateway sends SMS through the Termii messaging API.
type TermiiGateway struct {
	logger   logger.Logger
	baseURL  string
	apiKey   string
	senderID string
	client   *http.Client
}

// NewTermiiGateway creates a new Termii SMS gateway
func NewTermiiGateway(baseURL, apiKey, senderID string, logger logger.Logger) repository.SMSGateway {
	return &TermiiGateway{
		logger:   logger,
		baseURL:  baseURL,
		apiKey:   apiKey,
		senderID: senderID,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *TermiiGateway) Name() string { return "termii" }

// SendSMS delivers a plain-text message and returns Termii's message id.
func (g *TermiiGateway) SendSMS(ctx context.Context, to, body string) (string, error) {
	payload := map[string]interface{}{
		"api_key": g.apiKey,
		"to":      to,
		"from":    g.senderID,
		"sms":     body,
		"type":    "plain",
		"channel": "generic",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/sms/send", g.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("termii returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		MessageID string `json:"message_id"`
		Message   string `json:"message"`
		Code      string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if response.Code != "ok" && response.MessageID == "" {
		return "", fmt.Errorf("termii rejected message: %s (code: %s)", response.Message, response.Code)
	}

	g.logger.Info("SMS accepted by Termii", "to", to, "messageId", response.MessageID)
	return response.MessageID, nil
}
