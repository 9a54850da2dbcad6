package service

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"kembara/internal/config"
	apperrors "kembara/internal/errors"
)

// PaymentRequestInput is what the hosted checkout needs: the amount, the
// payer's contact details and the booking id as reference so the webhook
// can find its way back.
type PaymentRequestInput struct {
	Amount          float64
	Currency        string
	Email           string
	Name            string
	Phone           string
	ReferenceNumber string
	RedirectURL     string
	WebhookURL      string
}

// PaymentRequestSession is the provider's answer: an opaque request id and
// the hosted payment page URL.
type PaymentRequestSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// HitPayService wraps the HitPay payment-requests REST API.
type HitPayService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewHitPayService(cfg config.HitPayConfig) *HitPayService {
	return &HitPayService{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// CreatePaymentRequest asks HitPay for a hosted checkout session. Provider
// failures are passed back to the caller as a descriptive error; there is
// no retry here.
func (s *HitPayService) CreatePaymentRequest(in PaymentRequestInput) (*PaymentRequestSession, error) {
	if s.apiKey == "" {
		return nil, apperrors.Internal("payment provider is not configured")
	}

	payload := map[string]interface{}{
		"amount":           in.Amount,
		"currency":         in.Currency,
		"email":            in.Email,
		"name":             in.Name,
		"reference_number": in.ReferenceNumber,
		"redirect_url":     in.RedirectURL,
		"webhook":          in.WebhookURL,
	}
	if in.Phone != "" {
		payload["phone"] = in.Phone
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payment request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/v1/payment-requests", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building payment request: %w", err)
	}
	req.Header.Set("X-BUSINESS-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.Unavailable(fmt.Sprintf("payment provider unreachable: %v", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading payment provider response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.Unavailable(fmt.Sprintf("HitPay error: %s", strings.TrimSpace(string(respBody))))
	}

	var session PaymentRequestSession
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, fmt.Errorf("decoding payment provider response: %w", err)
	}
	if session.ID == "" || session.URL == "" {
		return nil, apperrors.Unavailable("HitPay returned an incomplete payment request")
	}
	return &session, nil
}

// VerifyWebhookSignature checks the HMAC-SHA-256 the provider computes over
// the sorted, &-joined key=value pairs of the payload, hmac field excluded.
// Comparison is constant-time.
func VerifyWebhookSignature(form url.Values, secret string) bool {
	received := form.Get("hmac")
	if received == "" || secret == "" {
		return false
	}

	keys := make([]string, 0, len(form))
	for k := range form {
		if k == "hmac" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+form.Get(k))
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strings.Join(pairs, "&")))
	computed := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(computed), []byte(received))
}
