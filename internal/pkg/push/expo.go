package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/clinichr/clinic-hr-backend/internal/domain/notification"
)

const expoEndpoint = "https://exp.host/--/api/v2/push/send"

// ExpoNotifier delivers push messages through the Expo push API.
type ExpoNotifier struct {
	endpoint string
	client   *http.Client
}

var _ notification.Notifier = (*ExpoNotifier)(nil)

func NewExpoNotifier(timeout time.Duration) *ExpoNotifier {
	return &ExpoNotifier{
		endpoint: expoEndpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Push implements notification.Notifier.
func (n *ExpoNotifier) Push(ctx context.Context, pushToken, title, message string) error {
	payload, err := json.Marshal(map[string]string{
		"to":    pushToken,
		"title": title,
		"body":  message,
		"sound": "default",
	})
	if err != nil {
		return fmt.Errorf("encode push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push service returned status %d", resp.StatusCode)
	}
	return nil
}
