// Package notify delivers client lookups to a Telegram chat.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.telegram.org"

// ErrRateLimited is returned when the outbound message budget is spent.
var ErrRateLimited = errors.New("telegram: rate limit exceeded")

// Telegram posts HTML-formatted messages to one chat via the Bot API.
// A zero token or chat ID disables delivery without erroring callers.
type Telegram struct {
	Token   string
	ChatID  string
	BaseURL string
	Client  *http.Client

	limiter *rate.Limiter
	log     *slog.Logger
}

// NewTelegram builds a notifier with a 30-messages-per-minute budget,
// matching the Bot API's per-chat guidance.
func NewTelegram(token, chatID string, log *slog.Logger) *Telegram {
	return &Telegram{
		Token:   token,
		ChatID:  chatID,
		BaseURL: defaultBaseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 30),
		log:     log,
	}
}

// Enabled reports whether delivery is configured.
func (t *Telegram) Enabled() bool {
	return t != nil && t.Token != "" && t.ChatID != ""
}

// SendMessage posts one HTML message to the configured chat.
func (t *Telegram) SendMessage(ctx context.Context, text string) error {
	if !t.Enabled() {
		return errors.New("telegram: not configured")
	}
	if !t.limiter.Allow() {
		return ErrRateLimited
	}

	form := url.Values{}
	form.Set("chat_id", t.ChatID)
	form.Set("text", text)
	form.Set("parse_mode", "HTML")

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.BaseURL, t.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("telegram: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: sending message: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram: sendMessage returned %d", resp.StatusCode)
	}
	t.log.Debug("telegram message sent")
	return nil
}
