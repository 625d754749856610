package api

import (
	"context"
	"net/http"

	"careportal/internal/models"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult carries the bearer credential issued by the platform together
// with the account's user id (the messaging key).
type LoginResult struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// Register creates a new patient account. The platform does not log the
// account in; call Login afterwards.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/register", registerRequest{Name: name, Email: email, Password: password}, nil)
}

// Login exchanges credentials for a bearer token. The token is opaque to
// the client; it is stored and attached to requests as-is.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me fetches the authenticated patient's profile.
func (c *Client) Me(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
