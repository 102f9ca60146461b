package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/AzielCF/tg-relay/core/config"
	domainRelay "github.com/AzielCF/tg-relay/domains/relay"
	pkgError "github.com/AzielCF/tg-relay/pkg/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

// swapTransport installs a fake transport for the duration of a test.
func swapTransport(t *testing.T, fn roundTripperFunc) {
	t.Helper()
	orig := httpClient.Transport
	httpClient.Transport = fn
	t.Cleanup(func() { httpClient.Transport = orig })
}

func newTestClient() *Client {
	return NewClient(config.TelegramConfig{
		BotToken:   "TESTTOKEN",
		APIBaseURL: "https://api.telegram.org",
	})
}

func TestForward_TextMessage(t *testing.T) {
	var gotURL string
	var gotBody map[string]any

	swapTransport(t, func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		return jsonResponse(200, `{"ok":true,"result":{"message_id":99}}`), nil
	})

	client := newTestClient()
	result := client.Forward(context.Background(), "-1001234567890", domainRelay.InboundMessage{
		SenderUsername: "alice",
		MediaType:      domainRelay.MediaText,
		Text:           "hello",
	})

	assert.True(t, result.Success)
	assert.Equal(t, int64(99), result.MessageID)
	assert.Equal(t, "https://api.telegram.org/botTESTTOKEN/sendMessage", gotURL)
	assert.Equal(t, "-1001234567890", gotBody["chat_id"])
	assert.Equal(t, "📨 Forwarded from @alice:\n\nhello", gotBody["text"])
}

func TestForward_PhotoUsesCaption(t *testing.T) {
	var gotURL string
	var gotBody map[string]any

	swapTransport(t, func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		return jsonResponse(200, `{"ok":true,"result":{"message_id":100}}`), nil
	})

	client := newTestClient()
	result := client.Forward(context.Background(), "-100555", domainRelay.InboundMessage{
		SenderUsername: "bob",
		MediaType:      domainRelay.MediaPhoto,
		FileID:         "photo-file-id",
		Text:           "sunset",
	})

	assert.True(t, result.Success)
	assert.Equal(t, "https://api.telegram.org/botTESTTOKEN/sendPhoto", gotURL)
	assert.Equal(t, "photo-file-id", gotBody["photo"])
	assert.Equal(t, "📨 Forwarded from @bob:\n\nsunset", gotBody["caption"])
	assert.NotContains(t, gotBody, "text")
}

func TestForward_MethodPerMediaType(t *testing.T) {
	cases := []struct {
		media  domainRelay.MediaType
		method string
		field  string
	}{
		{domainRelay.MediaVideo, "sendVideo", "video"},
		{domainRelay.MediaAudio, "sendAudio", "audio"},
		{domainRelay.MediaVoice, "sendVoice", "voice"},
		{domainRelay.MediaDocument, "sendDocument", "document"},
	}
	for _, tc := range cases {
		t.Run(tc.method, func(t *testing.T) {
			var gotURL string
			var gotBody map[string]any
			swapTransport(t, func(r *http.Request) (*http.Response, error) {
				gotURL = r.URL.String()
				require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
				return jsonResponse(200, `{"ok":true,"result":{"message_id":1}}`), nil
			})

			client := newTestClient()
			result := client.Forward(context.Background(), "-100555", domainRelay.InboundMessage{
				SenderUsername: "bob",
				MediaType:      tc.media,
				FileID:         "fid",
			})

			assert.True(t, result.Success)
			assert.True(t, strings.HasSuffix(gotURL, "/"+tc.method), "got %s", gotURL)
			assert.Equal(t, "fid", gotBody[tc.field])
		})
	}
}

func TestForward_PlatformRejection(t *testing.T) {
	swapTransport(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(400, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`), nil
	})

	client := newTestClient()
	result := client.Forward(context.Background(), "-100555", domainRelay.InboundMessage{
		SenderUsername: "alice",
		MediaType:      domainRelay.MediaText,
		Text:           "hello",
	})

	assert.False(t, result.Success)
	assert.Equal(t, "Bad Request: chat not found", result.Error)
}

func TestForward_RejectionWithoutDescription(t *testing.T) {
	swapTransport(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(200, `{"ok":false}`), nil
	})

	client := newTestClient()
	result := client.Forward(context.Background(), "-100555", domainRelay.InboundMessage{
		SenderUsername: "alice",
		MediaType:      domainRelay.MediaText,
		Text:           "hello",
	})

	assert.False(t, result.Success)
	assert.Equal(t, "unknown error", result.Error)
}

func TestForward_TransportError(t *testing.T) {
	swapTransport(t, func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	client := newTestClient()
	result := client.Forward(context.Background(), "-100555", domainRelay.InboundMessage{
		SenderUsername: "alice",
		MediaType:      domainRelay.MediaText,
		Text:           "hello",
	})

	assert.False(t, result.Success)
	assert.Equal(t, "failed to send", result.Error)
	assert.Zero(t, result.MessageID)
}

func TestForward_SingleAttempt(t *testing.T) {
	calls := 0
	swapTransport(t, func(r *http.Request) (*http.Response, error) {
		calls++
		return nil, errors.New("connection refused")
	})

	client := newTestClient()
	_ = client.Forward(context.Background(), "-100555", domainRelay.InboundMessage{
		SenderUsername: "alice",
		MediaType:      domainRelay.MediaText,
		Text:           "hello",
	})

	assert.Equal(t, 1, calls, "a failed forward must not be retried")
}

func TestSetWebhook(t *testing.T) {
	var gotURL string
	var gotBody map[string]any
	swapTransport(t, func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		return jsonResponse(200, `{"ok":true,"result":true}`), nil
	})

	client := newTestClient()
	err := client.SetWebhook(context.Background(), "https://relay.example.com/webhooks/telegram")

	require.NoError(t, err)
	assert.Equal(t, "https://api.telegram.org/botTESTTOKEN/setWebhook", gotURL)
	assert.Equal(t, "https://relay.example.com/webhooks/telegram", gotBody["url"])
}

func TestGetWebhookInfo(t *testing.T) {
	swapTransport(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(200, `{"ok":true,"result":{"url":"https://relay.example.com/hook","pending_update_count":3}}`), nil
	})

	client := newTestClient()
	info, err := client.GetWebhookInfo(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "https://relay.example.com/hook", info.URL)
	assert.Equal(t, 3, info.PendingUpdateCount)
}

func TestDeleteWebhook_Failure(t *testing.T) {
	swapTransport(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(401, `{"ok":false,"description":"Unauthorized"}`), nil
	})

	client := newTestClient()
	err := client.DeleteWebhook(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestWebhookManagement_RejectionIsTypedSendError(t *testing.T) {
	swapTransport(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(400, `{"ok":false,"description":"bad webhook: HTTPS url must be provided"}`), nil
	})

	client := newTestClient()
	err := client.SetWebhook(context.Background(), "http://relay.example.com/hook")

	require.Error(t, err)
	var sendErr pkgError.SendError
	assert.ErrorAs(t, err, &sendErr)
	assert.Contains(t, err.Error(), "HTTPS url must be provided")
}
