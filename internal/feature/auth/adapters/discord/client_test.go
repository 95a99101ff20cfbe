package discord

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shadowdark_backend/internal/feature/auth/domain/entity"
	platformhttp "shadowdark_backend/internal/platform/http"
)

// fakeDiscord serves the token and users/@me endpoints.
func fakeDiscord(t *testing.T, userStatus int, userBody string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.Form.Get("code") != "good-code" || r.Form.Get("client_id") != "app-id" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":604800}`))
	})
	mux.HandleFunc("/api/v10/users/@me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(userStatus)
		_, _ = w.Write([]byte(userBody))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *client {
	return NewClient(Config{
		ClientID:     "app-id",
		ClientSecret: "app-secret",
		RedirectURL:  "http://localhost:8080/auth/discord/callback",
		TokenURL:     srv.URL + "/api/oauth2/token",
		APIBase:      srv.URL + "/api/v10",
	}, platformhttp.NewHTTPClient(5*time.Second))
}

func TestClient_AuthCodeURL(t *testing.T) {
	t.Parallel()
	c := NewClient(Config{ClientID: "app-id", RedirectURL: "http://localhost/cb"}, http.DefaultClient)

	u, err := url.Parse(c.AuthCodeURL("xyz"))
	require.NoError(t, err)
	assert.Equal(t, "discord.com", u.Host)
	q := u.Query()
	assert.Equal(t, "xyz", q.Get("state"))
	assert.Equal(t, "app-id", q.Get("client_id"))
	assert.Equal(t, "identify email", q.Get("scope"))
	assert.Equal(t, "code", q.Get("response_type"))
}

func TestClient_Exchange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		code       string
		userStatus int
		userBody   string
		want       entity.ExternalIdentity
		wantErr    bool
	}{
		{
			name:       "global name and avatar",
			code:       "good-code",
			userStatus: http.StatusOK,
			userBody:   `{"id":"80351110224678912","username":"nelly","global_name":"Nelly","avatar":"8342729096ea3675442027381ff50dfe","email":"nelly@discord.com"}`,
			want: entity.ExternalIdentity{
				Provider:    entity.ProviderDiscord,
				Subject:     "80351110224678912",
				Email:       "nelly@discord.com",
				DisplayName: "Nelly",
				AvatarURL:   strPtr("https://cdn.discordapp.com/avatars/80351110224678912/8342729096ea3675442027381ff50dfe.png"),
			},
		},
		{
			name:       "username fallback without avatar or email",
			code:       "good-code",
			userStatus: http.StatusOK,
			userBody:   `{"id":"1","username":"plain","global_name":null,"avatar":null}`,
			want: entity.ExternalIdentity{
				Provider:    entity.ProviderDiscord,
				Subject:     "1",
				DisplayName: "plain",
			},
		},
		{name: "rejected code", code: "bad-code", userStatus: http.StatusOK, userBody: `{}`, wantErr: true},
		{name: "user lookup fails", code: "good-code", userStatus: http.StatusInternalServerError, userBody: ``, wantErr: true},
		{name: "empty user id", code: "good-code", userStatus: http.StatusOK, userBody: `{"username":"x"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(fakeDiscord(t, tt.userStatus, tt.userBody))

			got, err := c.Exchange(context.Background(), tt.code)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func strPtr(s string) *string { return &s }
