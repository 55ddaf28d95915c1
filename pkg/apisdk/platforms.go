package apisdk

import (
	"context"
	"net/http"
)

const platformsPath = "/api/platforms/"

func (c *Client) ListPlatforms(ctx context.Context) ([]Platform, error) {
	var out []Platform
	if err := c.getJSON(ctx, platformsPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertApp stores the user's client id and secret for a platform.
func (c *Client) UpsertApp(ctx context.Context, platformID int64, req AppUpsertRequest) error {
	return c.sendJSON(ctx, http.MethodPost, itemPath("platforms", platformID, "app"), req, nil)
}

// AppInfo reports whether the user has app credentials set for a platform.
// The secret itself is never returned.
func (c *Client) AppInfo(ctx context.Context, platformID int64) (*AppInfo, error) {
	var out AppInfo
	if err := c.getJSON(ctx, itemPath("platforms", platformID, "app_info"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConnectCredentials links an account on a platform. The platform's app
// must be set first.
func (c *Client) ConnectCredentials(ctx context.Context, platformID int64, req ConnectCredentialsRequest) (*ConnectCredentialsResponse, error) {
	var out ConnectCredentialsResponse
	if err := c.sendJSON(ctx, http.MethodPost, itemPath("platforms", platformID, "connect_credentials"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Disconnect removes connections to a platform. An empty externalAccountID
// removes all of them.
func (c *Client) Disconnect(ctx context.Context, platformID int64, externalAccountID string) (int, error) {
	body := map[string]string{}
	if externalAccountID != "" {
		body["external_account_id"] = externalAccountID
	}

	var out DisconnectResponse
	if err := c.sendJSON(ctx, http.MethodPost, itemPath("platforms", platformID, "disconnect"), body, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *Client) ListConnections(ctx context.Context) ([]Connection, error) {
	var out struct {
		Results []Connection `json:"results"`
	}
	if err := c.getJSON(ctx, platformsPath+"connections/", nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}
