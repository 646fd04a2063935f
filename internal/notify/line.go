package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"room-booking/pkg/utils"

	"go.uber.org/zap"
)

// LineClient talks to the LINE Messaging API: push for outbound
// notifications, reply for answering webhook events with the one-time
// reply token.
type LineClient struct {
	endpoint   string
	token      string
	httpClient *http.Client
	log        *zap.Logger
}

func NewLineClient(config utils.LineConfig, log *zap.Logger) *LineClient {
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &LineClient{
		endpoint: config.APIEndpoint,
		token:    config.ChannelToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log.With(zap.String("component", "line")),
	}
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

type replyRequest struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []textMessage `json:"messages"`
}

// Push sends a text message to a channel user.
func (c *LineClient) Push(ctx context.Context, to, text string) error {
	payload := pushRequest{
		To:       to,
		Messages: []textMessage{{Type: "text", Text: text}},
	}
	return c.post(ctx, "/v2/bot/message/push", payload)
}

// Reply answers a webhook event with its one-time reply token.
func (c *LineClient) Reply(ctx context.Context, replyToken, text string) error {
	payload := replyRequest{
		ReplyToken: replyToken,
		Messages:   []textMessage{{Type: "text", Text: text}},
	}
	return c.post(ctx, "/v2/bot/message/reply", payload)
}

func (c *LineClient) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal message payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build message request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("send message: channel returned status %d", resp.StatusCode)
	}

	return nil
}

// VerifySignature checks the channel signature over the exact raw
// request bytes: base64(HMAC-SHA256(secret, body)).
func VerifySignature(channelSecret string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(channelSecret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
