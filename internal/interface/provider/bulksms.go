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

// BulkSMSGateway sends SMS through the BulkSMS Nigeria API.
type BulkSMSGateway struct {
	logger   logger.Logger
	baseURL  string
	apiToken string
	senderID string
	client   *http.Client
}

// NewBulkSMSGateway creates a new BulkSMS Nigeria gateway
func NewBulkSMSGateway(baseURL, apiToken, senderID string, logger logger.Logger) repository.SMSGateway {
	return &BulkSMSGateway{
		logger:   logger,
		baseURL:  baseURL,
		apiToken: apiToken,
		senderID: senderID,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *BulkSMSGateway) Name() string { return "bulksms" }

// SendSMS delivers a plain-text message. dnd=2 routes through the
// do-not-disturb bypass so corporate-registered sender IDs still land.
func (g *BulkSMSGateway) SendSMS(ctx context.Context, to, body string) (string, error) {
	payload := map[string]interface{}{
		"api_token": g.apiToken,
		"to":        to,
		"from":      g.senderID,
		"body":      body,
		"dnd":       "2",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/sms/create", g.baseURL)
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

	var response struct {
		Data struct {
			Status    string `json:"status"`
			Message   string `json:"message"`
			MessageID string `json:"message_id"`
		} `json:"data"`
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if response.Data.Status != "success" && response.Status != "success" {
		msg := response.Data.Message
		if msg == "" {
			msg = response.Message
		}
		return "", fmt.Errorf("bulksms rejected message: %s", msg)
	}

	g.logger.Info("SMS accepted by BulkSMS Nigeria", "to", to, "messageId", response.Data.MessageID)
	return response.Data.MessageID, nil
}
