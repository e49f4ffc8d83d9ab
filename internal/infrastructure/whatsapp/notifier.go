package whatsapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/renan-b-eth/Automacao-Diario/internal/ports"
)

const defaultEndpoint = "https://api.callmebot.com/whatsapp.php"

// Notifier sends alert messages to WhatsApp through the CallMeBot gateway.
// Without credentials it degrades to logging the message, so a crawl can
// still populate history on a half-configured deployment.
type Notifier struct {
	phone       string
	apiKey      string
	endpoint    string
	minInterval time.Duration
	client      *http.Client
	logger      *slog.Logger
	lastSend    time.Time
	sleep       func(time.Duration)
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers gateway credentials. minInterval spaces consecutive
// messages; CallMeBot drops messages sent faster than one every ~2 seconds.
func NewNotifier(phone, apiKey string, minInterval time.Duration, logger *slog.Logger) *Notifier {
	return &Notifier{
		phone:       phone,
		apiKey:      apiKey,
		endpoint:    defaultEndpoint,
		minInterval: minInterval,
		client:      &http.Client{Timeout: 30 * time.Second},
		logger:      logger,
		sleep:       time.Sleep,
	}
}

// Send delivers one message, pacing against the previous send.
func (n *Notifier) Send(ctx context.Context, message string) error {
	if n.phone == "" || n.apiKey == "" {
		if n.logger != nil {
			n.logger.Warn("callmebot not configured, alert logged only", "message", message)
		}
		return nil
	}

	if wait := n.minInterval - time.Since(n.lastSend); wait > 0 && !n.lastSend.IsZero() {
		n.sleep(wait)
	}

	query := url.Values{}
	query.Set("phone", n.phone)
	query.Set("text", message)
	query.Set("apikey", n.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	n.lastSend = time.Now()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("callmebot error: %s", resp.Status)
	}

	return nil
}
