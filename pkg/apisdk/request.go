package apisdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/fireme/pkg/httpx"
)

// Request describes one API call. Path is relative to the client's base
// URL and keeps DRF's trailing slash, e.g. "/api/campaigns/".
type Request struct {
	Method string
	Path   string
	Query  url.Values

	// Body is JSON-encoded once; nil sends no body.
	Body any

	// Header is copied onto the outgoing request. Any Authorization entry
	// is ignored; the pipeline owns that header.
	Header http.Header

	// Anonymous requests carry no bearer token and never trigger a refresh.
	// Login and register use this.
	Anonymous bool
}

// Response is a 2xx reply with its body fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: decode body: %v", ErrUnexpectedResponse, err)
	}
	return nil
}

// pendingRequest is a Request captured so it can be sent again byte for
// byte after the token changes.
type pendingRequest struct {
	method    string
	path      string
	url       string
	body      []byte
	header    http.Header
	anonymous bool

	// retried is set once a 401 has been handled; a second 401 is final.
	retried bool

	// token is the access token the last attempt carried ("" for none).
	token string
}

func (c *Client) prepare(r Request) (*pendingRequest, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	u := c.url(r.Path)
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	header := make(http.Header, len(r.Header)+2)
	for k, vs := range r.Header {
		header[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}
	header.Del("Authorization")
	header.Set("Accept", "application/json")

	var body []byte
	if r.Body != nil {
		var err error
		if body, err = json.Marshal(r.Body); err != nil {
			return nil, fmt.Errorf("apisdk: encode %s %s: %w", method, r.Path, err)
		}
		header.Set("Content-Type", "application/json")
	}

	return &pendingRequest{
		method:    method,
		path:      r.Path,
		url:       u,
		body:      body,
		header:    header,
		anonymous: r.Anonymous,
	}, nil
}

// build creates a fresh *http.Request carrying token, if any.
func (p *pendingRequest) build(ctx context.Context, token string) (*http.Request, error) {
	var body *bytes.Reader
	if p.body != nil {
		body = bytes.NewReader(p.body)
	}

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, p.method, p.url, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, p.method, p.url, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("apisdk: build %s %s: %w", p.method, p.path, err)
	}

	req.Header = p.header.Clone()
	httpx.SetBearer(req.Header, token)
	p.token = token
	return req, nil
}
