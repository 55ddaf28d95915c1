// Package service is the in-memory model behind the development API. It
// mirrors the FireMe backend's ownership rules and validation messages
// closely enough for the dashboard client to be exercised end to end.
package service

import (
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/fireme/pkg/apisdk"
	"github.com/aussiebroadwan/fireme/pkg/credstore"
)

type user struct {
	credstore.Identity
	passwordHash string
	joined       time.Time
}

type ownedCampaign struct {
	apisdk.Campaign
	owner int64
}

type ownedQuestion struct {
	apisdk.Question
	owner int64
}

type ownedPoll struct {
	apisdk.Poll
	campaign int64
	created  time.Time
}

type appKey struct {
	owner, platform int64
}

type platformApp struct {
	apisdk.AppUpsertRequest
	modified time.Time
}

type connection struct {
	apisdk.Connection
	owner int64
}

// Service owns every table. One mutex is plenty for a development server.
type Service struct {
	mu  sync.RWMutex
	now func() time.Time
	seq map[string]int64

	users     map[int64]*user
	usernames map[string]int64

	platforms   map[int64]apisdk.Platform
	apps        map[appKey]*platformApp
	connections map[int64]*connection

	campaigns map[int64]*ownedCampaign
	queries   map[int64]*apisdk.Query
	polls     map[int64]*ownedPoll
	questions map[int64]*ownedQuestion
	answers   map[int64]*apisdk.Answer
}

// DefaultPlatforms are seeded by New.
var DefaultPlatforms = []apisdk.Platform{
	{Name: "Bluesky", LogoURL: "https://bsky.app/static/apple-touch-icon.png", Webpage: "https://bsky.app"},
	{Name: "Mastodon", LogoURL: "https://joinmastodon.org/logos/logo-purple.svg", Webpage: "https://joinmastodon.org"},
	{Name: "Reddit", LogoURL: "https://www.redditstatic.com/icon.png", Webpage: "https://www.reddit.com"},
	{Name: "X", LogoURL: "https://abs.twimg.com/favicons/twitter.3.ico", Webpage: "https://x.com"},
}

func New() *Service {
	s := &Service{
		now:         func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		seq:         map[string]int64{},
		users:       map[int64]*user{},
		usernames:   map[string]int64{},
		platforms:   map[int64]apisdk.Platform{},
		apps:        map[appKey]*platformApp{},
		connections: map[int64]*connection{},
		campaigns:   map[int64]*ownedCampaign{},
		queries:     map[int64]*apisdk.Query{},
		polls:       map[int64]*ownedPoll{},
		questions:   map[int64]*ownedQuestion{},
		answers:     map[int64]*apisdk.Answer{},
	}
	for _, p := range DefaultPlatforms {
		p.ID = s.next("platform")
		s.platforms[p.ID] = p
	}
	return s
}

// next returns the next id for table. Callers hold s.mu.
func (s *Service) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func blank(v string) bool { return strings.TrimSpace(v) == "" }
