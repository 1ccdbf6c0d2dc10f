// Package sms sends text messages through a notify.lk style HTTP gateway.
package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Sachin-Bandaranayaka/sahana-bookkeeping/internal/config"
	apperrors "github.com/Sachin-Bandaranayaka/sahana-bookkeeping/pkg/errors"
)

// Response is the gateway outcome for a single send.
type Response struct {
	Success   bool
	MessageID string
	Error     string
}

// Sender sends one SMS to a local-format number.
type Sender interface {
	Send(ctx context.Context, to, message string) (*Response, error)
}

type Client struct {
	cfg        config.SMSConfig
	httpClient *http.Client
}

func NewClient(cfg config.SMSConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FormatPhoneNumber normalizes a Sri Lankan number to international format.
// 10-digit numbers starting 07 or 01 become 94 plus the last nine digits;
// 11-digit numbers already starting 947 pass through.
func FormatPhoneNumber(phone string) (string, error) {
	var cleaned strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			cleaned.WriteRune(r)
		}
	}
	digits := cleaned.String()

	switch {
	case len(digits) == 10 && (strings.HasPrefix(digits, "07") || strings.HasPrefix(digits, "01")):
		return "94" + digits[1:], nil
	case len(digits) == 11 && strings.HasPrefix(digits, "947"):
		return digits, nil
	}

	return "", apperrors.ErrInvalidPhoneNumber
}

func (c *Client) Send(ctx context.Context, to, message string) (*Response, error) {
	if c.cfg.UserID == "" || c.cfg.APIKey == "" {
		return nil, apperrors.ErrSMSNotConfigured
	}

	formatted, err := FormatPhoneNumber(to)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("user_id", c.cfg.UserID)
	params.Set("api_key", c.cfg.APIKey)
	params.Set("sender_id", c.cfg.SenderID)
	params.Set("to", formatted)
	params.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Response{Success: false, Error: err.Error()}, nil
	}
	defer resp.Body.Close()

	var body struct {
		Status    string `json:"status"`
		MessageID string `json:"message_id"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return &Response{Success: false, Error: fmt.Sprintf("decoding gateway response: %v", err)}, nil
	}

	if body.Status != "success" {
		errMsg := body.Message
		if errMsg == "" {
			errMsg = "failed to send SMS"
		}
		return &Response{Success: false, Error: errMsg}, nil
	}

	return &Response{Success: true, MessageID: body.MessageID}, nil
}
