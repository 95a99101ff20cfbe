package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"shadowdark_backend/internal/feature/profile/domain/entity"
	"shadowdark_backend/internal/feature/profile/usecase"
	jwtmw "shadowdark_backend/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockProfileUsecase struct {
	GetCurrentFunc        func(ctx context.Context, id *usecase.Identity) (*usecase.CurrentProfile, error)
	UpsertFunc            func(ctx context.Context, id *usecase.Identity, displayName string, avatarURL *string) (uint, error)
	UpdatePreferencesFunc func(ctx context.Context, id *usecase.Identity, prefs *entity.TablePreferences, theme *string) error
}

func (m *mockProfileUsecase) GetCurrent(ctx context.Context, id *usecase.Identity) (*usecase.CurrentProfile, error) {
	if m.GetCurrentFunc != nil {
		return m.GetCurrentFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockProfileUsecase) Upsert(ctx context.Context, id *usecase.Identity, displayName string, avatarURL *string) (uint, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, id, displayName, avatarURL)
	}
	return 1, nil
}

func (m *mockProfileUsecase) UpdatePreferences(ctx context.Context, id *usecase.Identity, prefs *entity.TablePreferences, theme *string) error {
	if m.UpdatePreferencesFunc != nil {
		return m.UpdatePreferencesFunc(ctx, id, prefs, theme)
	}
	return nil
}

// newRouter wires the handler; a non-zero userID simulates a verified token.
func newRouter(uc ProfileUsecase, userID uint) *gin.Engine {
	h := NewProfileHandler(uc, zap.NewNop())
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set(jwtmw.ContextUserID, userID)
			c.Set(jwtmw.ContextEmail, "gm@example.com")
		}
		c.Next()
	})
	r.GET("/me/id", h.CurrentUserID)
	r.GET("/me/profile", h.GetProfile)
	r.PUT("/me/profile", h.UpsertProfile)
	r.PUT("/me/preferences", h.UpdatePreferences)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestProfileHandler_CurrentUserID(t *testing.T) {
	t.Parallel()

	w := do(newRouter(&mockProfileUsecase{}, 0), http.MethodGet, "/me/id", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":null}`, w.Body.String())

	w = do(newRouter(&mockProfileUsecase{}, 9), http.MethodGet, "/me/id", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":9}`, w.Body.String())
}

func TestProfileHandler_GetProfile(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	theme := "dark"

	tests := []struct {
		name           string
		userID         uint
		get            func(ctx context.Context, id *usecase.Identity) (*usecase.CurrentProfile, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "anonymous gets null",
			expectedStatus: http.StatusOK,
			expectedBody:   `null`,
		},
		{
			name:   "profile with email",
			userID: 3,
			get: func(ctx context.Context, id *usecase.Identity) (*usecase.CurrentProfile, error) {
				if id == nil || id.UserID != 3 || id.Email != "gm@example.com" {
					return nil, errors.New("identity not forwarded")
				}
				return &usecase.CurrentProfile{
					Profile: entity.UserProfile{
						ID:                        1,
						CreatedAt:                 at,
						UpdatedAt:                 at,
						UserID:                    3,
						DisplayName:               "GM",
						FavoriteTablesPreferences: &entity.TablePreferences{Version: 1, FavoriteMonsters: []string{"goblin"}},
						ThemePreference:           &theme,
					},
					Email: id.Email,
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"id":1,"created_at":"2026-01-02T03:04:05Z","updated_at":"2026-01-02T03:04:05Z",
				"user_id":3,"display_name":"GM","avatar_url":null,
				"favorite_tables_preferences":{"version":1,"favorite_monsters":["goblin"],"favorite_spells":null},
				"theme_preference":"dark","email":"gm@example.com"}`,
		},
		{
			name:   "usecase failure",
			userID: 3,
			get: func(ctx context.Context, id *usecase.Identity) (*usecase.CurrentProfile, error) {
				return nil, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := do(newRouter(&mockProfileUsecase{GetCurrentFunc: tt.get}, tt.userID), http.MethodGet, "/me/profile", "")
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestProfileHandler_UpsertProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		userID         uint
		body           string
		upsert         func(ctx context.Context, id *usecase.Identity, displayName string, avatarURL *string) (uint, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "creates or patches",
			userID: 3,
			body:   `{"display_name":"GM","avatar_url":"https://cdn.example/a.png"}`,
			upsert: func(ctx context.Context, id *usecase.Identity, displayName string, avatarURL *string) (uint, error) {
				if displayName != "GM" || avatarURL == nil || *avatarURL != "https://cdn.example/a.png" {
					return 0, errors.New("body not forwarded")
				}
				return 12, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":12}`,
		},
		{
			name:           "display name is required",
			userID:         3,
			body:           `{"avatar_url":"https://cdn.example/a.png"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "avatar must be a url",
			userID:         3,
			body:           `{"display_name":"GM","avatar_url":"not a url"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "anonymous caller",
			body: `{"display_name":"GM"}`,
			upsert: func(ctx context.Context, id *usecase.Identity, displayName string, avatarURL *string) (uint, error) {
				return 0, usecase.ErrUnauthenticated
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"not authenticated"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := do(newRouter(&mockProfileUsecase{UpsertFunc: tt.upsert}, tt.userID), http.MethodPut, "/me/profile", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestProfileHandler_UpdatePreferences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		update         func(ctx context.Context, id *usecase.Identity, prefs *entity.TablePreferences, theme *string) error
		expectedStatus int
	}{
		{
			name: "stored",
			body: `{"favorite_tables_preferences":{"version":1,"favorite_spells":["light"]},"theme_preference":"dark"}`,
			update: func(ctx context.Context, id *usecase.Identity, prefs *entity.TablePreferences, theme *string) error {
				if prefs == nil || prefs.FavoriteSpells[0] != "light" || theme == nil || *theme != "dark" {
					return errors.New("body not forwarded")
				}
				return nil
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "empty body clears both",
			body: `{}`,
			update: func(ctx context.Context, id *usecase.Identity, prefs *entity.TablePreferences, theme *string) error {
				if prefs != nil || theme != nil {
					return errors.New("expected nil values")
				}
				return nil
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "unknown theme",
			body:           `{"theme_preference":"neon"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown layout version",
			body: `{"favorite_tables_preferences":{"version":9}}`,
			update: func(ctx context.Context, id *usecase.Identity, prefs *entity.TablePreferences, theme *string) error {
				return usecase.ErrUnsupportedPreferencesVersion
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "no profile yet",
			body: `{}`,
			update: func(ctx context.Context, id *usecase.Identity, prefs *entity.TablePreferences, theme *string) error {
				return usecase.ErrProfileNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := do(newRouter(&mockProfileUsecase{UpdatePreferencesFunc: tt.update}, 3), http.MethodPut, "/me/preferences", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}
