package alerts

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// Webhook reports operational events to an external endpoint. It is used
// for notification delivery failures: the customer already saw a confirmed
// order, so the merchant needs another channel to hear about the lost mail.
type Webhook struct {
	url    string
	client *resty.Client
}

// NewWebhook returns a Webhook posting to url. A nil Webhook or an empty
// url disables reporting.
func NewWebhook(url string) *Webhook {
	if url == "" {
		return nil
	}
	return &Webhook{
		url:    url,
		client: resty.New().SetTimeout(10 * time.Second),
	}
}

// DeliveryFailure posts the failed order's number and error. Webhook errors
// are logged, never propagated: checkout must not fail on the alert path.
func (w *Webhook) DeliveryFailure(orderNumber string, err error) {
	if w == nil {
		return
	}

	resp, postErr := w.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"event":       "notification_delivery_failed",
			"orderNumber": orderNumber,
			"error":       err.Error(),
			"occurredAt":  time.Now().UTC().Format(time.RFC3339),
		}).
		Post(w.url)

	if postErr != nil {
		log.Println("alerts: webhook post failed:", postErr)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("alerts: webhook responded with status %d: %s", resp.StatusCode(), resp.Body())
	}
}
