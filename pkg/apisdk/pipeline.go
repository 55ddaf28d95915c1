package apisdk

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aussiebroadwan/fireme/pkg/notify"
)

// Send performs r. A 2xx reply is returned as-is. Any other outcome pushes
// exactly one notice and returns the error: *APIError for HTTP failures,
// an error wrapping ErrTransport when no response arrived.
//
// An expired access token (401) is recovered at most once per call: the
// first failing call refreshes, calls that fail while that refresh runs
// wait for it, and all of them are replayed with the new token.
func (c *Client) Send(ctx context.Context, r Request) (*Response, error) {
	p, err := c.prepare(r)
	if err != nil {
		c.report(err)
		return nil, err
	}

	resp, err := c.attempt(ctx, p, c.bearer(p))
	if err == nil {
		return resp, nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Unauthorized() && !p.anonymous && !p.retried {
		resp, err = c.recoverAuth(ctx, p, apiErr)
		if err == nil {
			return resp, nil
		}
	}

	c.report(err)
	return nil, err
}

// bearer is the token to attach on a first attempt.
func (c *Client) bearer(p *pendingRequest) string {
	if p.anonymous {
		return ""
	}
	return c.Credentials.Get().Access
}

// attempt sends p once with token.
func (c *Client) attempt(ctx context.Context, p *pendingRequest, token string) (*Response, error) {
	req, err := p.build(ctx, token)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, p.method, p.path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: read body: %w", ErrTransport, p.method, p.path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(p.method, p.path, resp.StatusCode, body)
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

// recoverAuth handles the first 401 of a call. orig is returned when
// recovery is impossible; a replay's own failure is returned as-is.
func (c *Client) recoverAuth(ctx context.Context, p *pendingRequest, orig *APIError) (*Response, error) {
	p.retried = true
	log := c.logger().With("method", p.method, "path", p.path)

	if c.Credentials.Get().Refresh == "" {
		log.Info("401 with no refresh token, clearing credentials")
		c.clearCredentials(ctx)
		orig.cause = ErrNoRefreshToken
		return nil, orig
	}

	done := make(chan refreshResult, 1)
	if !c.refresh.join(func(res refreshResult) { done <- res }) {
		log.Debug("waiting for in-flight token refresh")
		select {
		case res := <-done:
			if res.err != nil {
				orig.cause = res.err
				return nil, orig
			}
			return c.attempt(ctx, p, res.token)
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s %s: waiting for token refresh: %w", ErrTransport, p.method, p.path, ctx.Err())
		}
	}

	// Leader. Look again now that no one else can be refreshing: a refresh
	// may have landed, or the credentials may have been cleared, since the
	// request went out.
	held := c.Credentials.Get()
	switch {
	case held.Refresh == "":
		c.refresh.settle(refreshResult{err: ErrNoRefreshToken})
		orig.cause = ErrNoRefreshToken
		return nil, orig

	case held.Access != p.token:
		log.Debug("access token already replaced, replaying without refresh")
		c.refresh.settle(refreshResult{token: held.Access})
		return c.attempt(ctx, p, held.Access)
	}

	token, err := c.refreshTokens(ctx, held)
	if err != nil {
		log.Warn("token refresh failed, clearing credentials", "err", err)
		c.clearCredentials(ctx)
		c.refresh.settle(refreshResult{err: err})
		orig.cause = err
		return nil, orig
	}

	c.refresh.settle(refreshResult{token: token})
	return c.attempt(ctx, p, token)
}

func (c *Client) clearCredentials(ctx context.Context) {
	if err := c.Credentials.ClearAuth(context.WithoutCancel(ctx)); err != nil {
		c.logger().Warn("clear credentials failed", "err", err)
	}
}

// report pushes the one notice an unrecovered failure gets.
func (c *Client) report(err error) {
	msg := failedMessage(0)
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
	}
	c.Notices.Push(msg, notify.SeverityError)
}
