package apisdk

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/fireme/pkg/credstore"
)

const (
	loginPath    = "/accounts/login/"
	registerPath = "/accounts/register/"
	verifyPath   = "/accounts/token/verify"
)

// Login exchanges a username and password for a token pair and stores it
// together with the returned identity.
func (c *Client) Login(ctx context.Context, username, password string) (*credstore.Identity, error) {
	resp, err := c.Send(ctx, Request{
		Method:    http.MethodPost,
		Path:      loginPath,
		Body:      LoginRequest{Username: username, Password: password},
		Anonymous: true,
	})
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	if out.Access == "" || out.Refresh == "" {
		return nil, fmt.Errorf("%w: login reply carried no token pair", ErrUnexpectedResponse)
	}

	user := out.User
	if err := c.Credentials.SetAuth(ctx, &user, out.Access, out.Refresh); err != nil {
		return nil, err
	}
	c.logger().Info("logged in", "user_id", user.ID, "username", user.Username)
	return &user, nil
}

// Logout forgets the stored credentials. The backend keeps no session so
// there is nothing to call.
func (c *Client) Logout(ctx context.Context) error {
	return c.Credentials.ClearAuth(ctx)
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	resp, err := c.Send(ctx, Request{
		Method:    http.MethodPost,
		Path:      registerPath,
		Body:      req,
		Anonymous: true,
	})
	if err != nil {
		return nil, err
	}

	var out RegisterResponse
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyToken asks the backend whether token is still valid. A rejected
// token comes back as an *APIError.
func (c *Client) VerifyToken(ctx context.Context, token string) error {
	_, err := c.Send(ctx, Request{
		Method:    http.MethodPost,
		Path:      verifyPath,
		Body:      map[string]string{"token": token},
		Anonymous: true,
	})
	return err
}
