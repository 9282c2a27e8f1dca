package api

import (
	"context"
	"net/url"

	"github.com/clouddrive/clouddrive-client/pkg/protocol"
)

// Register creates a new account via POST /auth/register.
func (c *Client) Register(ctx context.Context, email, username, password string) error {
	req := protocol.RegisterRequest{
		Email:    email,
		Username: username,
		Password: password,
	}
	return c.t.PostJSON(ctx, "/auth/register", req, nil)
}

// Login authenticates via POST /auth/login. The backend expects a form
// body with the email in the username field. On success the returned
// access token is installed into the session store.
func (c *Client) Login(ctx context.Context, email, password string) (*protocol.TokenResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var resp protocol.TokenResponse
	if err := c.t.PostForm(ctx, "/auth/login", form, &resp); err != nil {
		return nil, err
	}
	c.t.Session().SetToken(resp.AccessToken)
	return &resp, nil
}

// Me fetches the current user's profile.
func (c *Client) Me(ctx context.Context) (*protocol.UserInfo, error) {
	var u protocol.UserInfo
	if err := c.t.GetJSON(ctx, "/users/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SearchUsers looks up share recipients by partial email/username.
func (c *Client) SearchUsers(ctx context.Context, query string, limit int) ([]protocol.UserInfo, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("limit", itoa(limit))

	var users []protocol.UserInfo
	if err := c.t.GetJSON(ctx, "/users/search?"+q.Encode(), &users); err != nil {
		return nil, err
	}
	return users, nil
}
