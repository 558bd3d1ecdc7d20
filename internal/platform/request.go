package platform

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"jfrogext/internal/config"
)

const maxBodyBytes = 64 * 1024

// newRequest builds an authenticated GET request against the environment.
func newRequest(ctx context.Context, cfg config.ExtensionConfig, endpoint string) (*http.Request, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if base == "" {
		return nil, ErrNoURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	switch {
	case cfg.UsesAccessToken() && cfg.AccessToken != "":
		req.Header.Set("Authorization", "Bearer "+cfg.AccessToken)
	case !cfg.UsesAccessToken() && cfg.Username != "":
		req.SetBasicAuth(cfg.Username, cfg.Password)
	}
	return req, nil
}

func readBody(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	return strings.TrimSpace(string(body))
}
