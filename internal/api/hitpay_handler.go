package api

import (
	"log"
	"net/http"

	"kembara/internal/service"
)

// HitPayWebhookHandler is the asynchronous payment-provider callback. It
// sits outside the auth middleware; the HMAC signature is its only
// authentication.
type HitPayWebhookHandler struct {
	WebhookSecret  string
	paymentService *service.PaymentService
}

func NewHitPayWebhookHandler(webhookSecret string, paymentService *service.PaymentService) *HitPayWebhookHandler {
	return &HitPayWebhookHandler{
		WebhookSecret:  webhookSecret,
		paymentService: paymentService,
	}
}

// HandleWebhook verifies and applies one notification. Responses other
// than 200 are reserved for signature failures (401) and missing server
// configuration (500); unparseable, unmatched or unknown notifications
// answer 200 so the provider stops retrying.
func (h *HitPayWebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	const maxBodyBytes = int64(65536)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := r.ParseForm(); err != nil {
		log.Printf("Webhook: error parsing form body: %v", err)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
		return
	}

	if h.WebhookSecret == "" {
		log.Println("Webhook: HITPAY_WEBHOOK_SECRET not configured")
		http.Error(w, "Server misconfigured", http.StatusInternalServerError)
		return
	}

	if !service.VerifyWebhookSignature(r.PostForm, h.WebhookSecret) {
		log.Println("Webhook: HMAC verification failed")
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	paymentID := r.PostForm.Get("payment_id")
	paymentRequestID := r.PostForm.Get("payment_request_id")
	status := r.PostForm.Get("status")
	bookingID := r.PostForm.Get("reference_number")

	switch status {
	case "completed":
		if err := h.paymentService.ReconcileCompleted(paymentRequestID, paymentID, bookingID); err != nil {
			log.Printf("Webhook: error reconciling completed payment %s: %v", paymentRequestID, err)
		}
	case "failed":
		if err := h.paymentService.ReconcileFailed(paymentRequestID); err != nil {
			log.Printf("Webhook: error reconciling failed payment %s: %v", paymentRequestID, err)
		}
	default:
		log.Printf("Webhook: ignoring notification with status %q", status)
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
