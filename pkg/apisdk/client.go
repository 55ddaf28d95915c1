package apisdk

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/fireme/pkg/credstore"
	"github.com/aussiebroadwan/fireme/pkg/notify"
	"github.com/aussiebroadwan/fireme/pkg/slogx"
)

const (
	DefaultBaseURL        = "http://127.0.0.1:8000/"
	DefaultRefreshPath    = "/accounts/token/refresh/"
	DefaultRequestTimeout = 30 * time.Second
	DefaultRefreshTimeout = 15 * time.Second
)

// Client talks to the FireMe backend. Every call goes through Send, which
// attaches the bearer token, recovers from one expired access token per
// call and reports unrecovered failures on Notices.
//
// A Client is safe for concurrent use. Build one per process.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	Credentials *credstore.Store
	Notices     *notify.Channel
	Logger      *slog.Logger

	// RefreshPath is the SimpleJWT refresh endpoint.
	RefreshPath string

	// RefreshTimeout bounds the refresh call. The call is detached from the
	// leader's context so a cancelled leader can't strand its waiters.
	RefreshTimeout time.Duration

	refresh refreshCoordinator
}

// NewClient builds a Client with logging on the HTTP transport and the
// default timeouts. creds and notices must outlive the Client.
func NewClient(baseURL string, creds *credstore.Store, notices *notify.Channel) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	logger := slog.Default()
	if creds == nil {
		// The memory backend can't fail to load.
		creds, _ = credstore.Open(context.Background(), nil, logger)
	}
	if notices == nil {
		notices = notify.New()
	}

	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout:   DefaultRequestTimeout,
			Transport: slogx.NewTransport(nil, logger),
		},
		Credentials:    creds,
		Notices:        notices,
		Logger:         logger,
		RefreshPath:    DefaultRefreshPath,
		RefreshTimeout: DefaultRefreshTimeout,
	}
}

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimSuffix(c.BaseURL, "/") + path
}

func (c *Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Client) refreshTimeout() time.Duration {
	if c.RefreshTimeout > 0 {
		return c.RefreshTimeout
	}
	return DefaultRefreshTimeout
}

func (c *Client) refreshPath() string {
	if c.RefreshPath != "" {
		return c.RefreshPath
	}
	return DefaultRefreshPath
}
