package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/aussiebroadwan/fireme/pkg/apisdk"
)

// ListCampaigns returns owner's campaigns, newest first.
func (s *Service) ListCampaigns(_ context.Context, owner int64) []apisdk.Campaign {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]apisdk.Campaign, 0)
	for _, c := range s.campaigns {
		if c.owner == owner {
			out = append(out, c.Campaign)
		}
	}
	slices.SortFunc(out, func(a, b apisdk.Campaign) int { return newestFirst(a.ID, b.ID) })
	return out
}

func (s *Service) GetCampaign(_ context.Context, owner, id int64) (apisdk.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.campaigns[id]
	if !ok || c.owner != owner {
		return apisdk.Campaign{}, ErrNotFound
	}
	return c.Campaign, nil
}

func (s *Service) CreateCampaign(_ context.Context, owner int64, req apisdk.CreateCampaignRequest) (apisdk.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	verr := &ValidationError{}
	if blank(req.Name) {
		verr.Add("name", "This field may not be blank.")
	}
	switch _, ok := s.platforms[req.Platform]; {
	case req.Platform == 0:
		verr.Add("plt", "Platform is required for a Campaign !")
	case !ok:
		verr.Add("plt", fmt.Sprintf("Invalid pk %q - object does not exist.", fmt.Sprint(req.Platform)))
	}
	if err := verr.OrNil(); err != nil {
		return apisdk.Campaign{}, err
	}

	now := s.now()
	c := &ownedCampaign{
		Campaign: apisdk.Campaign{
			ID:         s.next("campaign"),
			Platform:   req.Platform,
			Name:       strings.TrimSpace(req.Name),
			CreatedAt:  now,
			ModifiedAt: now,
		},
		owner: owner,
	}
	s.campaigns[c.ID] = c
	return c.Campaign, nil
}

// ListQueries returns the queries on owner's campaigns, newest first. A
// non-zero campaignID narrows the result to that campaign.
func (s *Service) ListQueries(_ context.Context, owner, campaignID int64) []apisdk.Query {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]apisdk.Query, 0)
	for _, q := range s.queries {
		if campaignID != 0 && q.Campaign != campaignID {
			continue
		}
		if c, ok := s.campaigns[q.Campaign]; ok && c.owner == owner {
			out = append(out, *q)
		}
	}
	slices.SortFunc(out, func(a, b apisdk.Query) int { return newestFirst(a.ID, b.ID) })
	return out
}

func (s *Service) CreateQuery(_ context.Context, owner int64, req apisdk.CreateQueryRequest) (apisdk.Query, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if blank(req.SearchTerm) {
		return apisdk.Query{}, Invalid("search_term", "Search term cannot be blank !")
	}
	c, ok := s.campaigns[req.Campaign]
	switch {
	case req.Campaign == 0:
		return apisdk.Query{}, Invalid("campaign", "This field is required.")
	case !ok:
		return apisdk.Query{}, Invalid("campaign", fmt.Sprintf("Invalid pk %q - object does not exist.", fmt.Sprint(req.Campaign)))
	case c.owner != owner:
		return apisdk.Query{}, Invalid("campaign", "You do not own this campaign!")
	}

	now := s.now()
	q := &apisdk.Query{
		ID:         s.next("query"),
		Campaign:   req.Campaign,
		SearchTerm: strings.TrimSpace(req.SearchTerm),
		CreatedAt:  now,
		ModifiedAt: now,
	}
	s.queries[q.ID] = q
	return *q, nil
}

// newestFirst orders by descending id. Ids are allocated in creation
// order, so this matches -created_at without tie breaks.
func newestFirst(a, b int64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}
