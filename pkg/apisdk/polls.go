package apisdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

const pollsPath = "/api/polls/"

func (f PollFilter) values() url.Values {
	v := url.Values{}
	if f.Campaign != 0 {
		v.Set("campaign", strconv.FormatInt(f.Campaign, 10))
	}
	if f.Query != 0 {
		v.Set("query", strconv.FormatInt(f.Query, 10))
	}
	return v
}

func (c *Client) ListPolls(ctx context.Context, filter PollFilter) ([]Poll, error) {
	var out []Poll
	if err := c.getJSON(ctx, pollsPath, filter.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePoll(ctx context.Context, req CreatePollRequest) (*Poll, error) {
	var out Poll
	if err := c.sendJSON(ctx, http.MethodPost, pollsPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
