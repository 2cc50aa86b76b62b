package cms

import (
	"context"
	"net/http"
)

// User is the CMS user profile attached to a session.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"telefono"`
	Zone     string `json:"zona"`
	Address  string `json:"direccion"`
	Role     string `json:"rol"`
}

// AuthResponse is the CMS local-auth response.
type AuthResponse struct {
	JWT  string `json:"jwt"`
	User User   `json:"user"`
}

// Login exchanges credentials for a CMS-issued token. The storefront never
// issues tokens of its own.
func (c *Client) Login(ctx context.Context, identifier, password string) (*AuthResponse, error) {
	body := map[string]string{
		"identifier": identifier,
		"password":   password,
	}
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/local", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the profile belonging to a bearer token.
func (c *Client) Me(ctx context.Context, bearer string) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", bearer, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers returns registered users for the back-office.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/api/users?pagination[pageSize]=200", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
