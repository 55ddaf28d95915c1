package apisdk

import (
	"encoding/json"
	"time"

	"github.com/aussiebroadwan/fireme/pkg/credstore"
)

// ============================================================================
// Accounts
// ============================================================================

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	User    credstore.Identity `json:"user"`
	Access  string             `json:"access"`
	Refresh string             `json:"refresh"`
}

type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Institution string `json:"institution"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	User    credstore.Identity `json:"user"`
}

// ============================================================================
// Campaigns & queries
// ============================================================================

type Campaign struct {
	ID         int64     `json:"campaign_id"`
	Platform   int64     `json:"plt"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

type CreateCampaignRequest struct {
	Platform int64  `json:"plt"`
	Name     string `json:"name"`
}

type Query struct {
	ID         int64     `json:"query_id"`
	Campaign   int64     `json:"campaign"`
	SearchTerm string    `json:"search_term"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

type CreateQueryRequest struct {
	Campaign   int64  `json:"campaign"`
	SearchTerm string `json:"search_term"`
}

// ============================================================================
// Polls
// ============================================================================

type Poll struct {
	ID       int64     `json:"poll_id"`
	Title    *string   `json:"title"`
	Query    int64     `json:"query"`
	Question int64     `json:"question"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	IsActive bool      `json:"is_active"`
}

// PollFilter narrows ListPolls. Zero fields are not sent.
type PollFilter struct {
	Campaign int64
	Query    int64
}

type CreatePollRequest struct {
	Title    *string   `json:"title,omitempty"`
	Query    int64     `json:"query"`
	Question int64     `json:"question"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// ============================================================================
// Questions & answers
// ============================================================================

type Question struct {
	ID         int64     `json:"question_id"`
	Question   string    `json:"question"`
	Answers    []Answer  `json:"answers,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

type Answer struct {
	ID         int64     `json:"answer_id"`
	Question   int64     `json:"question"`
	Answer     string    `json:"answer"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// envelope is the {"success": ..., "data": ...} wrapper some answer
// endpoints use.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// ============================================================================
// Platforms
// ============================================================================

type Platform struct {
	ID        int64  `json:"plt_id"`
	Name      string `json:"name"`
	LogoURL   string `json:"logo_url"`
	Webpage   string `json:"webpage"`
	Connected bool   `json:"connected"`
}

type AppUpsertRequest struct {
	ClientID     string         `json:"client_id"`
	ClientSecret string         `json:"client_secret"`
	Meta         map[string]any `json:"meta,omitempty"`
}

type AppInfo struct {
	Exists bool           `json:"exists"`
	Meta   map[string]any `json:"meta,omitempty"`
	Masked bool           `json:"masked,omitempty"`
}

type OAuthVersion string

const (
	OAuth1a  OAuthVersion = "oauth1a"
	OAuth2   OAuthVersion = "oauth2"
	OAuthApp OAuthVersion = "app"
)

type ConnectCredentialsRequest struct {
	ExternalAccountID string         `json:"external_account_id,omitempty"`
	ExternalUsername  string         `json:"external_username,omitempty"`
	OAuthVersion      OAuthVersion   `json:"oauth_version"`
	BearerToken       string         `json:"bearer_token,omitempty"`
	AccessToken       string         `json:"access_token,omitempty"`
	RefreshToken      string         `json:"refresh_token,omitempty"`
	TokenSecret       string         `json:"token_secret,omitempty"`
	TokenType         string         `json:"token_type,omitempty"`
	Scope             string         `json:"scope,omitempty"`
	ExpiresAt         *time.Time     `json:"expires_at,omitempty"`
	Meta              map[string]any `json:"meta,omitempty"`
}

type ConnectCredentialsResponse struct {
	Success   bool       `json:"success"`
	ID        int64      `json:"upc_id"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type DisconnectResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// Connection is a platform connection as the backend exposes it; secrets
// are never returned.
type Connection struct {
	ID                int64        `json:"upc_id"`
	Platform          Platform     `json:"platform"`
	ExternalAccountID *string      `json:"external_account_id"`
	ExternalUsername  string       `json:"external_username"`
	OAuthVersion      OAuthVersion `json:"oauth_version"`
	TokenType         string       `json:"token_type"`
	Scope             string       `json:"scope"`
	ExpiresAt         *time.Time   `json:"expires_at"`
	IsActive          bool         `json:"is_active"`
}
