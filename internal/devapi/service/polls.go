package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/aussiebroadwan/fireme/pkg/apisdk"
)

// ListPolls returns the active polls under owner's campaigns, newest first.
func (s *Service) ListPolls(_ context.Context, owner int64, filter apisdk.PollFilter) []apisdk.Poll {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]apisdk.Poll, 0)
	for _, p := range s.polls {
		if !p.IsActive {
			continue
		}
		if filter.Campaign != 0 && p.campaign != filter.Campaign {
			continue
		}
		if filter.Query != 0 && p.Query != filter.Query {
			continue
		}
		if c, ok := s.campaigns[p.campaign]; ok && c.owner == owner {
			out = append(out, p.Poll)
		}
	}
	slices.SortFunc(out, func(a, b apisdk.Poll) int { return newestFirst(a.ID, b.ID) })
	return out
}

func (s *Service) CreatePoll(_ context.Context, owner int64, req apisdk.CreatePollRequest) (apisdk.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	verr := &ValidationError{}
	q, ok := s.queries[req.Query]
	if !ok {
		verr.Add("query", fmt.Sprintf("Invalid pk %q - object does not exist.", fmt.Sprint(req.Query)))
	}
	question, qok := s.questions[req.Question]
	if !qok || question.owner != owner {
		verr.Add("question", fmt.Sprintf("Invalid pk %q - object does not exist.", fmt.Sprint(req.Question)))
	}
	if req.StartsAt.IsZero() {
		verr.Add("starts_at", "This field is required.")
	}
	if req.EndsAt.IsZero() {
		verr.Add("ends_at", "This field is required.")
	}
	if err := verr.OrNil(); err != nil {
		return apisdk.Poll{}, err
	}

	if req.EndsAt.Before(req.StartsAt) {
		return apisdk.Poll{}, Invalid("ends_at", "End time must be greater than start time")
	}
	if !question.IsActive {
		return apisdk.Poll{}, Invalid("question", "Question must be active.")
	}
	if c, ok := s.campaigns[q.Campaign]; !ok || c.owner != owner {
		return apisdk.Poll{}, ErrorList{"You do not own this query."}
	}

	p := &ownedPoll{
		Poll: apisdk.Poll{
			ID:       s.next("poll"),
			Title:    req.Title,
			Query:    req.Query,
			Question: req.Question,
			StartsAt: req.StartsAt.UTC(),
			EndsAt:   req.EndsAt.UTC(),
			IsActive: true,
		},
		campaign: q.Campaign,
		created:  s.now(),
	}
	s.polls[p.ID] = p
	return p.Poll, nil
}
