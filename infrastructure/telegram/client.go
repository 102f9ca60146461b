package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AzielCF/tg-relay/core/config"
	domainRelay "github.com/AzielCF/tg-relay/domains/relay"
	pkgError "github.com/AzielCF/tg-relay/pkg/error"
	"github.com/sirupsen/logrus"
)

const defaultTimeout = 30 * time.Second

// httpClient is package-level so tests can swap the transport, same as the
// other outbound integrations do.
var httpClient = &http.Client{Timeout: defaultTimeout}

// Client talks to the Telegram Bot API. One instance per process.
type Client struct {
	apiBaseURL string
	token      string
}

func NewClient(cfg config.TelegramConfig) *Client {
	if cfg.TimeoutSeconds > 0 {
		httpClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &Client{
		apiBaseURL: cfg.APIBaseURL,
		token:      cfg.BotToken,
	}
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.apiBaseURL, c.token, method)
}

// call posts params as JSON to the given Bot API method and decodes the
// standard {ok, result, description} envelope.
func (c *Client) call(ctx context.Context, method string, params any, dest any) (*APIResponse, error) {
	var bodyReader io.Reader
	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(method), bodyReader)
	if err != nil {
		return nil, err
	}
	if params != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var envelope APIResponse
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("malformed api response (status %d): %w", resp.StatusCode, err)
	}

	// The platform signals application failure both via status and the ok
	// flag; either one makes the call a failure.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		envelope.OK = false
	}

	if envelope.OK && dest != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, dest); err != nil {
			return nil, fmt.Errorf("malformed api result for %s: %w", method, err)
		}
	}

	return &envelope, nil
}

// sendMethods maps a media type to the Bot API method and the request
// field carrying the file reference.
var sendMethods = map[domainRelay.MediaType]struct {
	method string
	field  string
}{
	domainRelay.MediaPhoto:    {"sendPhoto", "photo"},
	domainRelay.MediaVideo:    {"sendVideo", "video"},
	domainRelay.MediaAudio:    {"sendAudio", "audio"},
	domainRelay.MediaVoice:    {"sendVoice", "voice"},
	domainRelay.MediaDocument: {"sendDocument", "document"},
}

// Forward relays one admitted message to the target chat. Exactly one
// network attempt, no retry; the bounded client timeout caps how long a
// slow upstream can hold a webhook worker.
func (c *Client) Forward(ctx context.Context, targetChatID string, msg domainRelay.InboundMessage) domainRelay.ForwardResult {
	formatted := fmt.Sprintf("📨 Forwarded from @%s:\n\n%s", msg.SenderUsername, msg.Text)

	params := map[string]any{"chat_id": targetChatID}
	method := "sendMessage"
	if m, ok := sendMethods[msg.MediaType]; ok {
		method = m.method
		params[m.field] = msg.FileID
		params["caption"] = formatted
	} else {
		params["text"] = formatted
	}

	logrus.WithFields(logrus.Fields{
		"method":     method,
		"target":     targetChatID,
		"media_type": msg.MediaType,
	}).Debug("[SEND] Dispatching forward call")

	var sent SentMessage
	envelope, err := c.call(ctx, method, params, &sent)
	if err != nil {
		logrus.WithError(err).Error("[SEND] Forward request failed")
		return domainRelay.ForwardResult{Success: false, Error: "failed to send"}
	}

	if !envelope.OK {
		desc := envelope.Description
		if desc == "" {
			desc = "unknown error"
		}
		logrus.WithFields(logrus.Fields{
			"method":      method,
			"error_code":  envelope.ErrorCode,
			"description": desc,
		}).Error("[SEND] Platform rejected forward")
		return domainRelay.ForwardResult{Success: false, Error: desc}
	}

	return domainRelay.ForwardResult{Success: true, MessageID: sent.MessageID}
}

// SetWebhook points the bot's webhook at the given public URL.
func (c *Client) SetWebhook(ctx context.Context, url string) error {
	envelope, err := c.call(ctx, "setWebhook", map[string]any{"url": url}, nil)
	if err != nil {
		return err
	}
	if !envelope.OK {
		return pkgError.SendError(fmt.Sprintf("setWebhook failed: %s", envelope.Description))
	}
	return nil
}

// DeleteWebhook removes the registered webhook.
func (c *Client) DeleteWebhook(ctx context.Context) error {
	envelope, err := c.call(ctx, "deleteWebhook", nil, nil)
	if err != nil {
		return err
	}
	if !envelope.OK {
		return pkgError.SendError(fmt.Sprintf("deleteWebhook failed: %s", envelope.Description))
	}
	return nil
}

// GetWebhookInfo reports the currently registered webhook.
func (c *Client) GetWebhookInfo(ctx context.Context) (WebhookInfo, error) {
	var info WebhookInfo
	envelope, err := c.call(ctx, "getWebhookInfo", nil, &info)
	if err != nil {
		return WebhookInfo{}, err
	}
	if !envelope.OK {
		return WebhookInfo{}, pkgError.SendError(fmt.Sprintf("getWebhookInfo failed: %s", envelope.Description))
	}
	return info, nil
}
