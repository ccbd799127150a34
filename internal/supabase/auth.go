package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jsquie/eighty-six/internal/model"
)

// grantResponse is the token payload the auth surface returns for every
// grant type.
type grantResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		UserMetadata struct {
			FullName string `json:"full_name"`
		} `json:"user_metadata"`
	} `json:"user"`
}

func (g *grantResponse) toGrant() *model.TokenGrant {
	name := g.User.UserMetadata.FullName
	if name == "" {
		name = g.User.Email
	}
	return &model.TokenGrant{
		User: model.User{
			ID:    g.User.ID,
			Email: g.User.Email,
			Name:  name,
		},
		AccessToken:  g.AccessToken,
		RefreshToken: g.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(g.ExpiresIn) * time.Second),
	}
}

// token posts to the auth token endpoint with the given grant type.
func (c *Client) token(ctx context.Context, grantType string, payload interface{}) (*model.TokenGrant, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("supabase: failed to encode grant request: %w", err)
	}

	endpoint := c.baseURL + "/auth/v1/token?grant_type=" + url.QueryEscape(grantType)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("supabase: failed to build request: %w", err)
	}

	respBody, _, err := c.do(req, "")
	if err != nil {
		return nil, err
	}

	var grant grantResponse
	if err := json.Unmarshal(respBody, &grant); err != nil {
		return nil, fmt.Errorf("supabase: failed to decode grant: %w", err)
	}
	if grant.AccessToken == "" {
		return nil, fmt.Errorf("supabase: grant response missing access token")
	}

	return grant.toGrant(), nil
}

// SignInWithPassword exchanges email+password for a live session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*model.TokenGrant, error) {
	return c.token(ctx, "password", map[string]string{
		"email":    email,
		"password": password,
	})
}

// RefreshSession restores a live session from a persisted refresh token.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*model.TokenGrant, error) {
	return c.token(ctx, "refresh_token", map[string]string{
		"refresh_token": refreshToken,
	})
}

// ExchangeCode trades a one-time authorization code from the OAuth redirect
// for a live session. The code is single-use: a second exchange fails.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*model.TokenGrant, error) {
	return c.token(ctx, "pkce", map[string]string{
		"auth_code": code,
	})
}

// SignOut revokes the session behind the given access token.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	endpoint := c.baseURL + "/auth/v1/logout"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("supabase: failed to build request: %w", err)
	}

	_, _, err = c.do(req, accessToken)
	return err
}

// AuthorizeURL builds the provider redirect link shown on the login page in
// oauth mode. The provider sends the user back to redirectTo with a ?code=
// parameter.
func (c *Client) AuthorizeURL(provider, redirectTo string) string {
	params := url.Values{}
	params.Set("provider", provider)
	params.Set("redirect_to", redirectTo)
	return c.baseURL + "/auth/v1/authorize?" + params.Encode()
}
