// internal/upstream/auth.go
package upstream

import (
	"context"
	"net/http"
)

// VerifyToken asks the API whether the stored token still identifies an
// administrator. The token itself stays opaque to this layer.
func (c *Client) VerifyToken(ctx context.Context, token string) (bool, error) {
	var result struct {
		IsAdmin bool `json:"isAdmin"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/verify", token, nil, &result); err != nil {
		return false, err
	}
	return result.IsAdmin, nil
}

// CheckSetup reports whether the site already has its superuser account.
func (c *Client) CheckSetup(ctx context.Context) (bool, error) {
	var result struct {
		IsSetup bool `json:"isSetup"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/settings/check-setup", "", nil, &result); err != nil {
		return false, err
	}
	return result.IsSetup, nil
}

// Setup creates the first admin account and returns its bearer token.
func (c *Client) Setup(ctx context.Context, email, password, setupToken string) (string, error) {
	body := map[string]string{
		"email":      email,
		"password":   password,
		"setupToken": setupToken,
	}
	var result struct {
		Token string `json:"token"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/setup", "", body, &result); err != nil {
		return "", err
	}
	return result.Token, nil
}
