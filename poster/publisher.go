package poster

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Transport error taxonomy. Rate limiting aborts one drain cycle; a
// permission failure is a configuration signal that halts auto-posting until
// an operator intervenes.
var (
	ErrRateLimited = errors.New("publish rate limited")
	ErrForbidden   = errors.New("publish forbidden: check app permissions and credentials")
)

// Publisher delivers one formatted message to the social platform and
// returns the platform-assigned post id.
type Publisher interface {
	Publish(ctx context.Context, text string) (string, error)
}

const defaultPostEndpoint = "https://api.x.com/2/tweets"

// XClient publishes via the X v2 post endpoint with a bearer token.
type XClient struct {
	token    string
	endpoint string
	client   *http.Client
}

// NewXClient builds the publish client. The token must be non-empty.
func NewXClient(token string) (*XClient, error) {
	if token == "" {
		return nil, errors.New("publish bearer token is required")
	}
	return &XClient{
		token:    token,
		endpoint: defaultPostEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// Publish posts the text. Platform throttling maps to ErrRateLimited and
// auth/permission failures to ErrForbidden so the drain loop can tell the
// transient and fatal classes apart.
func (x *XClient) Publish(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, x.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+x.token)

	resp, err := x.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("publish request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w (status %d)", ErrForbidden, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", fmt.Errorf("publish failed with status %d", resp.StatusCode)
	}

	var parsed struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode publish response: %w", err)
	}
	return parsed.Data.ID, nil
}
