package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultAPIBaseURL is the production Telegram Bot API endpoint.
const DefaultAPIBaseURL = "https://api.telegram.org"

// TelegramConfig holds configuration for the Telegram delivery channel
type TelegramConfig struct {
	BotToken   string
	APIBaseURL string // Optional: override for tests and proxies
	Timeout    time.Duration
	// RatePerSecond caps outgoing calls below Telegram's global broadcast
	// limit (~30 messages per second across all chats).
	RatePerSecond float64
}

// TelegramSender implements Sender via the Telegram Bot API
type TelegramSender struct {
	baseURL string
	token   string
	client  *http.Client
	limiter *rate.Limiter
}

// NewTelegramSender creates a new Telegram delivery client
func NewTelegramSender(config TelegramConfig) *TelegramSender {
	baseURL := config.APIBaseURL
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	perSecond := config.RatePerSecond
	if perSecond <= 0 {
		perSecond = 25
	}

	return &TelegramSender{
		baseURL: baseURL,
		token:   config.BotToken,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type sendLocationRequest struct {
	ChatID    int64   `json:"chat_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// Send delivers a text message to the chat
func (t *TelegramSender) Send(ctx context.Context, userID int64, text string) error {
	req := sendMessageRequest{
		ChatID: userID,
		Text:   text,
	}
	return t.call(ctx, "sendMessage", req)
}

// SendLocation delivers a geographic point to the chat
func (t *TelegramSender) SendLocation(ctx context.Context, userID int64, latitude, longitude float64) error {
	req := sendLocationRequest{
		ChatID:    userID,
		Latitude:  latitude,
		Longitude: longitude,
	}
	return t.call(ctx, "sendLocation", req)
}

// Name identifies the delivery channel
func (t *TelegramSender) Name() string {
	return "telegram"
}

func (t *TelegramSender) call(ctx context.Context, method string, payload interface{}) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait aborted: %w", err)
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", t.baseURL, t.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send %s request: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", method, err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", method, err)
	}

	if !apiResp.OK {
		return fmt.Errorf("%s failed: %s (error code: %d)", method, apiResp.Description, apiResp.ErrorCode)
	}

	return nil
}
