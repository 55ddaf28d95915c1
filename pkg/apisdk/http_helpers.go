package apisdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// getJSON performs GET path?query and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.Send(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

// sendJSON performs method path with in as the JSON body and decodes the
// reply into out when out is non-nil.
func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.Send(ctx, Request{Method: method, Path: path, Body: in})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}

// itemPath builds "/api/<collection>/<id>/<suffix>" with DRF's trailing slash.
func itemPath(collection string, id int64, suffix string) string {
	if suffix == "" {
		return fmt.Sprintf("/api/%s/%d/", collection, id)
	}
	return fmt.Sprintf("/api/%s/%d/%s/", collection, id, suffix)
}
