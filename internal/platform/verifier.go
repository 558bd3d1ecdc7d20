package platform

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"jfrogext/internal/config"
	"jfrogext/pkg/logging"
)

const pingEndpoint = "/artifactory/api/system/ping"

// ErrNoURL is returned when no environment URL is configured.
var ErrNoURL = errors.New("no JFrog environment URL configured")

// SecretLoader returns the persisted configuration including secrets.
type SecretLoader interface {
	LoadWithSecrets(ctx context.Context) (config.ExtensionConfig, error)
}

// HTTPVerifier checks a connection by pinging Artifactory.
type HTTPVerifier struct {
	store  SecretLoader
	client *http.Client
}

// NewHTTPVerifier creates a verifier. A zero timeout falls back to the default.
func NewHTTPVerifier(store SecretLoader, timeout time.Duration) *HTTPVerifier {
	if timeout <= 0 {
		timeout = config.DefaultVerifyTimeout
	}
	return &HTTPVerifier{store: store, client: &http.Client{Timeout: timeout}}
}

// TestConnection pings the environment described by override, or the
// persisted one when override is nil. It returns the trimmed response body
// ("OK" on success) or "FAILED: <status> <body>" for non-200 replies.
func (v *HTTPVerifier) TestConnection(ctx context.Context, override *config.ExtensionConfig) (string, error) {
	var cfg config.ExtensionConfig
	if override != nil {
		cfg = *override
	} else {
		loaded, err := v.store.LoadWithSecrets(ctx)
		if err != nil {
			return "", fmt.Errorf("loading connection details: %w", err)
		}
		cfg = loaded
	}

	req, err := newRequest(ctx, cfg, pingEndpoint)
	if err != nil {
		return "", err
	}

	logging.Debug("Verifier", "Pinging %s", req.URL.Redacted())
	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ping %s: %w", cfg.URL, err)
	}
	defer resp.Body.Close()

	body := readBody(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("FAILED: %s %s", resp.Status, body), nil
	}
	return body, nil
}
