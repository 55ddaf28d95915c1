package service

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/aussiebroadwan/fireme/pkg/apisdk"
)

// ListPlatforms returns every platform by name, with Connected set when
// owner has at least one active connection to it.
func (s *Service) ListPlatforms(_ context.Context, owner int64) []apisdk.Platform {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]apisdk.Platform, 0, len(s.platforms))
	for _, p := range s.platforms {
		out = append(out, s.platformFor(owner, p))
	}
	slices.SortFunc(out, func(a, b apisdk.Platform) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// UpsertApp stores owner's client id and secret for a platform, replacing
// any earlier pair.
func (s *Service) UpsertApp(_ context.Context, owner, platformID int64, req apisdk.AppUpsertRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.platforms[platformID]; !ok {
		return ErrNotFound
	}

	verr := &ValidationError{}
	if blank(req.ClientID) {
		verr.Add("client_id", "This field may not be blank.")
	}
	if blank(req.ClientSecret) {
		verr.Add("client_secret", "This field may not be blank.")
	}
	if err := verr.OrNil(); err != nil {
		return err
	}

	req.Meta = maps.Clone(req.Meta)
	s.apps[appKey{owner: owner, platform: platformID}] = &platformApp{
		AppUpsertRequest: req,
		modified:         s.now(),
	}
	return nil
}

// AppInfo reports whether owner has an app for the platform. Secrets are
// never returned.
func (s *Service) AppInfo(_ context.Context, owner, platformID int64) (apisdk.AppInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.platforms[platformID]; !ok {
		return apisdk.AppInfo{}, ErrNotFound
	}
	app, ok := s.apps[appKey{owner: owner, platform: platformID}]
	if !ok {
		return apisdk.AppInfo{Exists: false}, nil
	}
	meta := maps.Clone(app.Meta)
	if meta == nil {
		meta = map[string]any{}
	}
	return apisdk.AppInfo{Exists: true, Meta: meta, Masked: true}, nil
}

// ConnectCredentials validates req for its OAuth flavour and upserts the
// connection keyed by (external account id, oauth version).
func (s *Service) ConnectCredentials(_ context.Context, owner, platformID int64, req apisdk.ConnectCredentialsRequest) (apisdk.ConnectCredentialsResponse, error) {
	if req.OAuthVersion == "" {
		req.OAuthVersion = apisdk.OAuth2
	}
	if err := validateCredentials(&req); err != nil {
		return apisdk.ConnectCredentialsResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	platform, ok := s.platforms[platformID]
	if !ok {
		return apisdk.ConnectCredentialsResponse{}, ErrNotFound
	}
	if _, ok := s.apps[appKey{owner: owner, platform: platformID}]; !ok {
		return apisdk.ConnectCredentialsResponse{}, ErrorList{"No active app found for this platform. Set client id / secret first!"}
	}

	var extID *string
	if req.OAuthVersion != apisdk.OAuthApp {
		extID = &req.ExternalAccountID
	}

	conn := s.findConnection(owner, platformID, extID, req.OAuthVersion)
	if conn == nil {
		conn = &connection{owner: owner}
		conn.ID = s.next("connection")
		s.connections[conn.ID] = conn
	}
	conn.Platform = platform
	conn.ExternalAccountID = extID
	conn.ExternalUsername = req.ExternalUsername
	conn.OAuthVersion = req.OAuthVersion
	conn.TokenType = req.TokenType
	conn.Scope = req.Scope
	conn.ExpiresAt = req.ExpiresAt
	conn.IsActive = true

	return apisdk.ConnectCredentialsResponse{Success: true, ID: conn.ID, ExpiresAt: conn.ExpiresAt}, nil
}

// Disconnect deletes owner's active connections to a platform, optionally
// narrowed by external account id and oauth version, and returns how many
// went.
func (s *Service) Disconnect(_ context.Context, owner, platformID int64, externalAccountID string, version apisdk.OAuthVersion) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.platforms[platformID]; !ok {
		return 0, ErrNotFound
	}

	n := 0
	for id, c := range s.connections {
		if c.owner != owner || c.Platform.ID != platformID || !c.IsActive {
			continue
		}
		if externalAccountID != "" && (c.ExternalAccountID == nil || *c.ExternalAccountID != externalAccountID) {
			continue
		}
		if version != "" && c.OAuthVersion != version {
			continue
		}
		delete(s.connections, id)
		n++
	}
	return n, nil
}

// Connections lists owner's connections ordered by id.
func (s *Service) Connections(_ context.Context, owner int64) []apisdk.Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]apisdk.Connection, 0)
	for _, c := range s.connections {
		if c.owner != owner {
			continue
		}
		conn := c.Connection
		conn.Platform = s.platformFor(owner, s.platforms[c.Platform.ID])
		out = append(out, conn)
	}
	slices.SortFunc(out, func(a, b apisdk.Connection) int { return -newestFirst(a.ID, b.ID) })
	return out
}

func validateCredentials(req *apisdk.ConnectCredentialsRequest) error {
	switch req.OAuthVersion {
	case apisdk.OAuth1a:
		if req.ExternalAccountID == "" {
			return Invalid("external_account_id", "Required for OAuth1.0a.")
		}
		if req.AccessToken == "" || req.TokenSecret == "" {
			return Invalid(NonFieldErrors, "OAuth1.0a requires access_token and token_secret.")
		}
	case apisdk.OAuth2:
		if req.ExternalAccountID == "" {
			return Invalid("external_account_id", "Required for OAuth2 user tokens.")
		}
		if req.AccessToken == "" && req.BearerToken == "" {
			return Invalid(NonFieldErrors, "OAuth2 requires access_token or bearer_token.")
		}
	case apisdk.OAuthApp:
		if req.BearerToken == "" {
			return Invalid(NonFieldErrors, "App-only requires bearer_token.")
		}
		req.ExternalAccountID = ""
	default:
		return Invalid("oauth_version", "Invalid value.")
	}
	return nil
}

func (s *Service) findConnection(owner, platformID int64, extID *string, version apisdk.OAuthVersion) *connection {
	for _, c := range s.connections {
		if c.owner != owner || c.Platform.ID != platformID || c.OAuthVersion != version {
			continue
		}
		if (c.ExternalAccountID == nil) != (extID == nil) {
			continue
		}
		if extID != nil && *c.ExternalAccountID != *extID {
			continue
		}
		return c
	}
	return nil
}

func (s *Service) platformFor(owner int64, p apisdk.Platform) apisdk.Platform {
	p.Connected = false
	for _, c := range s.connections {
		if c.owner == owner && c.Platform.ID == p.ID && c.IsActive {
			p.Connected = true
			break
		}
	}
	return p
}
