package wire

import (
	"room-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireWebhook(r chi.Router, webhookHandler *adaptor.WebhookHandler) {
	// POST /webhook/line - Inbound channel events, authenticated by
	// signature instead of a session.
	r.Post("/webhook/line", webhookHandler.HandleWebhook)
}
