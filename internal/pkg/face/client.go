package face

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Verifier checks a captured face image against the employee's enrolled
// reference. The matching algorithm runs in an external service; this module
// only sees the verdict.
type Verifier interface {
	Verify(ctx context.Context, employeeID string, imageBase64 string) (Match, error)
}

type Match struct {
	Verified   bool    `json:"verified"`
	Confidence float64 `json:"confidence"`
}

// HTTPVerifier calls the biometric service over HTTP.
type HTTPVerifier struct {
	baseURL string
	client  *http.Client
}

func NewHTTPVerifier(baseURL string, timeout time.Duration) *HTTPVerifier {
	return &HTTPVerifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (v *HTTPVerifier) Verify(ctx context.Context, employeeID string, imageBase64 string) (Match, error) {
	payload, err := json.Marshal(map[string]string{
		"employee_id": employeeID,
		"image":       imageBase64,
	})
	if err != nil {
		return Match{}, fmt.Errorf("encode face verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/verify", bytes.NewReader(payload))
	if err != nil {
		return Match{}, fmt.Errorf("build face verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return Match{}, fmt.Errorf("call face verifier: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Match{}, fmt.Errorf("face verifier returned status %d", resp.StatusCode)
	}

	var match Match
	if err := json.NewDecoder(resp.Body).Decode(&match); err != nil {
		return Match{}, fmt.Errorf("decode face verify response: %w", err)
	}
	return match, nil
}
