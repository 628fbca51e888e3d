// Package eligibility talks to the external blacklist screening service.
//
// The client is fail-closed: a transport error, timeout, non-2xx status or a
// body without an is_in_blacklist verdict is reported as
// domain.ErrEligibilityCheck, never as "not blocked".
package eligibility

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/user-service/internal/api/metrics"
	"github.com/99minutos/user-service/internal/core/domain"
)

const (
	checkPath      = "/check-blacklist"
	defaultTimeout = 5 * time.Second
	maxBodyBytes   = 1 << 16
)

// Client implements ports.EligibilityGate over HTTP.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	log     zerolog.Logger
}

// NewClient returns a screening client for baseURL. A non-positive timeout
// falls back to defaultTimeout.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type checkRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type checkResponse struct {
	IsInBlacklist *bool `json:"is_in_blacklist"`
}

// Check performs a single round trip to POST {baseURL}/check-blacklist.
func (c *Client) Check(ctx context.Context, firstName, lastName, email string) (bool, error) {
	start := time.Now()
	blocked, err := c.check(ctx, firstName, lastName, email)
	metrics.EligibilityCheckDuration.Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		metrics.EligibilityChecksTotal.WithLabelValues("error").Inc()
		c.log.Error().Err(err).Str("email", email).Msg("eligibility check failed")
		return false, fmt.Errorf("%w: %v", domain.ErrEligibilityCheck, err)
	case blocked:
		metrics.EligibilityChecksTotal.WithLabelValues("blocked").Inc()
	default:
		metrics.EligibilityChecksTotal.WithLabelValues("allowed").Inc()
	}
	return blocked, nil
}

func (c *Client) check(ctx context.Context, firstName, lastName, email string) (bool, error) {
	if c.baseURL == "" {
		return false, errors.New("eligibility service url not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(checkRequest{FirstName: firstName, LastName: lastName, Email: email})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+checkPath, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out checkResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&out); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	if out.IsInBlacklist == nil {
		return false, errors.New("response missing is_in_blacklist")
	}
	return *out.IsInBlacklist, nil
}
