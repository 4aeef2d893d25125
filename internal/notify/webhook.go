package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/wonny/restock/internal/contracts"
)

const (
	maxRetries     = 3
	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// WebhookNotifier posts critical stock alerts to an external webhook
// ⭐ SSOT: outbound alert notifications go through this client only
type WebhookNotifier struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	url        string
	log        zerolog.Logger
}

// webhookPayload is the JSON body sent to the webhook endpoint
type webhookPayload struct {
	ProductID         int64   `json:"product_id"`
	ProductName       string  `json:"product_name"`
	AlertType         string  `json:"alert_type"`
	Message           string  `json:"message"`
	DaysUntilStockout float64 `json:"days_until_stockout"`
	RecommendedQty    int     `json:"recommended_order_qty"`
	SentAt            string  `json:"sent_at"`
}

// NewWebhookNotifier creates a webhook notifier
// An empty URL disables delivery (Notify becomes a no-op)
func NewWebhookNotifier(url string, ratePerMin int, log zerolog.Logger) *WebhookNotifier {
	if ratePerMin <= 0 {
		ratePerMin = 30
	}

	return &WebhookNotifier{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMin)), ratePerMin),
		url:        url,
		log:        log.With().Str("component", "notify.webhook").Logger(),
	}
}

// Enabled reports whether a webhook URL is configured
func (n *WebhookNotifier) Enabled() bool {
	return n.url != ""
}

// Notify delivers one alert with rate limiting and exponential backoff retry
func (n *WebhookNotifier) Notify(ctx context.Context, alert *contracts.StockAlert) error {
	if !n.Enabled() {
		return nil
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(webhookPayload{
		ProductID:         alert.ProductID,
		ProductName:       alert.ProductName,
		AlertType:         string(alert.AlertType),
		Message:           alert.Message,
		DaysUntilStockout: alert.DaysUntilStockout,
		RecommendedQty:    alert.RecommendedOrderQty,
		SentAt:            time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := n.post(ctx, body); err == nil {
			n.log.Debug().
				Int64("product_id", alert.ProductID).
				Str("alert_type", string(alert.AlertType)).
				Msg("webhook delivered")
			return nil
		} else {
			lastErr = err
		}

		if attempt == maxRetries-1 {
			break
		}

		n.log.Debug().
			Err(lastErr).
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Msg("retrying webhook delivery")

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}

	return fmt.Errorf("webhook delivery failed after %d attempts: %w", maxRetries, lastErr)
}

func (n *WebhookNotifier) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
