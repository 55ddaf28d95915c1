package apisdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/aussiebroadwan/fireme/pkg/credstore"
)

type refreshResult struct {
	token string
	err   error
}

// refreshCoordinator lets exactly one caller refresh at a time. Callers
// that hit a 401 while a refresh is running queue a continuation instead
// of refreshing themselves.
type refreshCoordinator struct {
	mu       sync.Mutex
	inFlight bool
	waiters  []func(refreshResult)
}

// join makes the caller the leader when no refresh is running and returns
// true. Otherwise fn is queued and called exactly once when the running
// refresh settles.
func (rc *refreshCoordinator) join(fn func(refreshResult)) bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.inFlight {
		rc.waiters = append(rc.waiters, fn)
		return false
	}
	rc.inFlight = true
	return true
}

// settle resolves every queued waiter in the order it joined, then clears
// the in-flight marker. Both happen under one lock so no caller can start a
// new refresh while a waiter of this round is still unresolved.
func (rc *refreshCoordinator) settle(res refreshResult) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	for _, fn := range rc.waiters {
		fn(res)
	}
	rc.waiters = nil
	rc.inFlight = false
}

func (rc *refreshCoordinator) pending() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.waiters)
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// refreshTokens exchanges the held refresh token for a new access token and
// stores the result. It bypasses Send: no bearer header, no 401 handling,
// no notices.
func (c *Client) refreshTokens(ctx context.Context, held credstore.Credentials) (string, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.refreshTimeout())
	defer cancel()

	body, err := json.Marshal(refreshRequest{Refresh: held.Refresh})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(c.refreshPath()), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", ErrRefreshFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d: %s", ErrRefreshFailed, resp.StatusCode, Normalize(raw, resp.StatusCode))
	}

	var out refreshResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: decode: %w", ErrRefreshFailed, err)
	}
	if out.Access == "" {
		return "", fmt.Errorf("%w: response carried no access token", ErrRefreshFailed)
	}

	rotated := out.Refresh != ""
	if !rotated {
		out.Refresh = held.Refresh
	}

	if err := c.Credentials.SetAuth(ctx, held.Identity, out.Access, out.Refresh); err != nil {
		// The new pair is live in memory; only persistence failed.
		c.logger().Warn("persist refreshed credentials failed", "err", err)
	}

	c.logger().Info("access token refreshed", "rotated", rotated)
	return out.Access, nil
}
