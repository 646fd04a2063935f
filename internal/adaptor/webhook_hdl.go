package adaptor

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"room-booking/internal/notify"
	"room-booking/pkg/utils"

	"go.uber.org/zap"
)

const webhookBodyLimit = 1 << 20

type WebhookHandler struct {
	config  utils.LineConfig
	replier Replier
	log     *zap.Logger
}

func NewWebhookHandler(config utils.LineConfig, replier Replier, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		config:  config,
		replier: replier,
		log:     log.With(zap.String("handler", "webhook")),
	}
}

type webhookSource struct {
	UserID string `json:"userId"`
}

type webhookMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type webhookEvent struct {
	Type       string         `json:"type"`
	ReplyToken string         `json:"replyToken"`
	Source     *webhookSource `json:"source,omitempty"`
	Message    webhookMessage `json:"message"`
}

type webhookPayload struct {
	Events []webhookEvent `json:"events"`
	// Some channel payloads carry the sender at the top level
	// instead of per event.
	Source *webhookSource `json:"source,omitempty"`
}

// HandleWebhook handles POST /webhook/line. The signature is verified
// over the exact raw bytes before any parsing.
func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, webhookBodyLimit))
	if err != nil {
		utils.ResponseBadRequest(w, "Failed to read request body", nil)
		return
	}

	signature := r.Header.Get("X-Line-Signature")
	switch {
	case signature == "":
		// Unsigned requests are let through for channel simulators,
		// unless strict mode is switched on. Anything that matters
		// should run with LINE_SIGNATURE_REQUIRED=true.
		if h.config.SignatureRequired {
			h.log.Warn("Webhook rejected: missing signature")
			utils.ResponseUnauthorized(w, "Missing signature")
			return
		}
		h.log.Warn("Webhook accepted without signature")

	case !notify.VerifySignature(h.config.ChannelSecret, body, signature):
		h.log.Warn("Webhook rejected: invalid signature")
		utils.ResponseUnauthorized(w, "Invalid signature")
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		utils.ResponseBadRequest(w, "Invalid webhook payload", nil)
		return
	}

	for _, event := range payload.Events {
		h.handleEvent(r, event, payload.Source)
	}

	// The channel expects 200 once events are accepted, regardless of
	// what each event produced.
	utils.ResponseSuccess(w, "success", nil)
}

func (h *WebhookHandler) handleEvent(r *http.Request, event webhookEvent, fallback *webhookSource) {
	if event.Type != "message" || event.Message.Type != "text" {
		return
	}

	source := event.Source
	if source == nil || source.UserID == "" {
		source = fallback
	}
	if source == nil || source.UserID == "" {
		h.log.Warn("Webhook event without source user")
		return
	}

	text := strings.ToLower(strings.TrimSpace(event.Message.Text))
	switch text {
	case "id", "ไอดี":
		reply := fmt.Sprintf("Your LINE ID: %s", source.UserID)
		if err := h.replier.Reply(r.Context(), event.ReplyToken, reply); err != nil {
			h.log.Error("Failed to reply to webhook event",
				zap.Error(err),
				zap.String("user_id", source.UserID))
			return
		}
		h.log.Info("Replied with channel user ID", zap.String("user_id", source.UserID))

	default:
		h.log.Debug("Ignoring unrecognized webhook command", zap.String("text", text))
	}
}
