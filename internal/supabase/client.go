package supabase

import (
	"fmt"
	"time"

	"github.com/supabase-community/gotrue-go/types"
	"github.com/supabase-community/supabase-go"
	"ppf-order-backend/internal/auth"
	"ppf-order-backend/internal/config"
)

// Client is the identity provider used by the admin session gate.
type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
}

func NewClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}

// SignIn exchanges an email and password for a session. The provider's
// error is returned unchanged so its message can be shown to the operator.
func (c *Client) SignIn(email, password string) (*auth.Session, error) {
	resp, err := c.Supabase.Auth.Token(types.TokenRequest{
		GrantType: "password",
		Email:     email,
		Password:  password,
	})
	if err != nil {
		return nil, err
	}

	return &auth.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    resp.TokenType,
		ExpiresAt:    time.Unix(resp.ExpiresAt, 0).UTC(),
		UserID:       resp.User.ID.String(),
		Email:        resp.User.Email,
	}, nil
}

// SignOut revokes the refresh tokens behind accessToken.
func (c *Client) SignOut(accessToken string) error {
	return c.Supabase.Auth.WithToken(accessToken).Logout()
}
