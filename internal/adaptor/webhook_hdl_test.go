package adaptor

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"room-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingReplier struct {
	mu      sync.Mutex
	replies []string
	err     error
}

func (r *recordingReplier) Reply(_ context.Context, replyToken, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies = append(r.replies, replyToken+"|"+text)
	return r.err
}

func (r *recordingReplier) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.replies...)
}

const webhookSecret = "channel-secret"

func signWebhookBody(body []byte) string {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func newWebhookTest(signatureRequired bool) (*WebhookHandler, *recordingReplier) {
	replier := &recordingReplier{}
	handler := NewWebhookHandler(utils.LineConfig{
		ChannelSecret:     webhookSecret,
		SignatureRequired: signatureRequired,
	}, replier, zap.NewNop())
	return handler, replier
}

func postWebhook(handler *WebhookHandler, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook/line", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set("X-Line-Signature", signature)
	}
	rec := httptest.NewRecorder()
	handler.HandleWebhook(rec, req)
	return rec
}

func TestWebhookRepliesWithChannelUserID(t *testing.T) {
	handler, replier := newWebhookTest(false)

	body := []byte(`{
		"source": {"userId": "U123"},
		"events": [
			{"type": "message", "replyToken": "rt-1", "message": {"type": "text", "text": "id"}}
		]
	}`)

	rec := postWebhook(handler, body, signWebhookBody(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	replies := replier.all()
	require.Len(t, replies, 1)
	assert.Equal(t, "rt-1|Your LINE ID: U123", replies[0])
}

func TestWebhookRejectsInvalidSignature(t *testing.T) {
	handler, replier := newWebhookTest(false)

	body := []byte(`{"source":{"userId":"U123"},"events":[{"type":"message","replyToken":"rt-1","message":{"type":"text","text":"id"}}]}`)

	rec := postWebhook(handler, body, "bm90LXRoZS1yaWdodC1zaWduYXR1cmU=")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, replier.all())
}

func TestWebhookUnsignedLenientMode(t *testing.T) {
	handler, replier := newWebhookTest(false)

	body := []byte(`{"source":{"userId":"U123"},"events":[{"type":"message","replyToken":"rt-1","message":{"type":"text","text":"id"}}]}`)

	rec := postWebhook(handler, body, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, replier.all(), 1)
}

func TestWebhookUnsignedStrictMode(t *testing.T) {
	handler, replier := newWebhookTest(true)

	body := []byte(`{"source":{"userId":"U123"},"events":[{"type":"message","replyToken":"rt-1","message":{"type":"text","text":"id"}}]}`)

	rec := postWebhook(handler, body, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, replier.all())
}

func TestWebhookPerEventSourceWinsOverTopLevel(t *testing.T) {
	handler, replier := newWebhookTest(false)

	body := []byte(`{
		"source": {"userId": "U-top"},
		"events": [
			{"type": "message", "replyToken": "rt-1", "source": {"userId": "U-event"}, "message": {"type": "text", "text": "ID"}}
		]
	}`)

	rec := postWebhook(handler, body, signWebhookBody(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	replies := replier.all()
	require.Len(t, replies, 1)
	assert.Equal(t, "rt-1|Your LINE ID: U-event", replies[0])
}

func TestWebhookThaiAlias(t *testing.T) {
	handler, replier := newWebhookTest(false)

	body := []byte(`{
		"events": [
			{"type": "message", "replyToken": "rt-1", "source": {"userId": "U456"}, "message": {"type": "text", "text": "ไอดี"}}
		]
	}`)

	rec := postWebhook(handler, body, signWebhookBody(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	replies := replier.all()
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "U456")
}

func TestWebhookIgnoresUnknownCommands(t *testing.T) {
	handler, replier := newWebhookTest(false)

	body := []byte(`{
		"source": {"userId": "U123"},
		"events": [
			{"type": "message", "replyToken": "rt-1", "message": {"type": "text", "text": "hello"}},
			{"type": "follow", "replyToken": "rt-2"},
			{"type": "message", "replyToken": "rt-3", "message": {"type": "sticker"}}
		]
	}`)

	rec := postWebhook(handler, body, signWebhookBody(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, replier.all())
}

func TestWebhookEventWithoutSource(t *testing.T) {
	handler, replier := newWebhookTest(false)

	body := []byte(`{
		"events": [
			{"type": "message", "replyToken": "rt-1", "message": {"type": "text", "text": "id"}}
		]
	}`)

	rec := postWebhook(handler, body, signWebhookBody(body))

	// No resolvable sender: the event is dropped, the batch still 200s.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, replier.all())
}

func TestWebhookMalformedBody(t *testing.T) {
	handler, replier := newWebhookTest(false)

	body := []byte(`{not json`)
	rec := postWebhook(handler, body, signWebhookBody(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, replier.all())
}
