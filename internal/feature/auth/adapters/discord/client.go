// Package discord implements sign-in with Discord over OAuth2.
package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"shadowdark_backend/internal/feature/auth/domain/entity"
	"shadowdark_backend/internal/feature/auth/usecase"
)

const (
	defaultAuthURL  = "https://discord.com/oauth2/authorize"
	defaultTokenURL = "https://discord.com/api/oauth2/token"
	defaultAPIBase  = "https://discord.com/api/v10"
	cdnBase         = "https://cdn.discordapp.com"
)

// Config holds the Discord application credentials.
type Config struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`

	// Overridable endpoints; empty means the public Discord API.
	AuthURL  string `mapstructure:"auth_url"`
	TokenURL string `mapstructure:"token_url"`
	APIBase  string `mapstructure:"api_base"`
}

type client struct {
	oauth   *oauth2.Config
	http    *http.Client
	apiBase string
}

var _ usecase.IdentityProvider = (*client)(nil)

// NewClient creates a Discord identity provider. hc is used for both the
// token exchange and the profile lookup.
func NewClient(cfg Config, hc *http.Client) *client {
	authURL, tokenURL, apiBase := cfg.AuthURL, cfg.TokenURL, cfg.APIBase
	if authURL == "" {
		authURL = defaultAuthURL
	}
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	return &client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"identify", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		http:    hc,
		apiBase: strings.TrimRight(apiBase, "/"),
	}
}

func (c *client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// userResponse is the subset of GET /users/@me we use.
type userResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	GlobalName *string `json:"global_name"`
	Avatar     *string `json:"avatar"`
	Email      *string `json:"email"`
}

// Exchange trades the authorization code for a token and loads the user.
func (c *client) Exchange(ctx context.Context, code string) (entity.ExternalIdentity, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)

	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return entity.ExternalIdentity{}, fmt.Errorf("discord token exchange: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"/users/@me", nil)
	if err != nil {
		return entity.ExternalIdentity{}, err
	}
	resp, err := c.oauth.Client(ctx, tok).Do(req)
	if err != nil {
		return entity.ExternalIdentity{}, fmt.Errorf("discord user lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.ExternalIdentity{}, fmt.Errorf("discord user lookup: unexpected status %d", resp.StatusCode)
	}

	var u userResponse
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return entity.ExternalIdentity{}, fmt.Errorf("decode discord user: %w", err)
	}
	if u.ID == "" {
		return entity.ExternalIdentity{}, fmt.Errorf("discord user lookup: empty user id")
	}
	return toIdentity(u), nil
}

func toIdentity(u userResponse) entity.ExternalIdentity {
	id := entity.ExternalIdentity{
		Provider:    entity.ProviderDiscord,
		Subject:     u.ID,
		DisplayName: u.Username,
	}
	if u.GlobalName != nil && *u.GlobalName != "" {
		id.DisplayName = *u.GlobalName
	}
	if u.Email != nil {
		id.Email = *u.Email
	}
	if u.Avatar != nil && *u.Avatar != "" {
		url := fmt.Sprintf("%s/avatars/%s/%s.png", cdnBase, u.ID, *u.Avatar)
		id.AvatarURL = &url
	}
	return id
}
