package apisdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

const (
	campaignsPath = "/api/campaigns/"
	queriesPath   = "/api/queries/"
)

func (c *Client) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	var out []Campaign
	if err := c.getJSON(ctx, campaignsPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCampaign(ctx context.Context, id int64) (*Campaign, error) {
	var out Campaign
	if err := c.getJSON(ctx, itemPath("campaigns", id, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCampaign(ctx context.Context, req CreateCampaignRequest) (*Campaign, error) {
	var out Campaign
	if err := c.sendJSON(ctx, http.MethodPost, campaignsPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListQueries lists queries, newest first. A zero campaignID lists every
// query the user owns.
func (c *Client) ListQueries(ctx context.Context, campaignID int64) ([]Query, error) {
	var params url.Values
	if campaignID != 0 {
		params = url.Values{"campaign": {strconv.FormatInt(campaignID, 10)}}
	}

	var out []Query
	if err := c.getJSON(ctx, queriesPath, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateQuery(ctx context.Context, req CreateQueryRequest) (*Query, error) {
	var out Query
	if err := c.sendJSON(ctx, http.MethodPost, queriesPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
