package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shadowdark_backend/internal/app/di"
	authhandler "shadowdark_backend/internal/feature/auth/transport/handler"
	authusecase "shadowdark_backend/internal/feature/auth/usecase"
	monsterhandler "shadowdark_backend/internal/feature/monsters/transport/handler"
	monstersusecase "shadowdark_backend/internal/feature/monsters/usecase"
	profileadapters "shadowdark_backend/internal/feature/profile/adapters"
	profilehandler "shadowdark_backend/internal/feature/profile/transport/handler"
	profileusecase "shadowdark_backend/internal/feature/profile/usecase"
	seedhandler "shadowdark_backend/internal/feature/seed/transport/handler"
	spellhandler "shadowdark_backend/internal/feature/spells/transport/handler"
	spellsusecase "shadowdark_backend/internal/feature/spells/usecase"
	"shadowdark_backend/internal/platform/db"
	jwtmw "shadowdark_backend/internal/platform/jwt"
	"shadowdark_backend/internal/platform/middleware"
	"shadowdark_backend/internal/shared/ratelimiter"
)

const (
	testSecret    = "router-test-secret"
	testDeployKey = "deploy-me"
	testOrigin    = "https://tables.example"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubAuth struct{}

func (stubAuth) BeginSignIn(ctx context.Context) (string, error) {
	return "https://discord.example/authorize?state=s", nil
}

func (stubAuth) CompleteSignIn(ctx context.Context, state, code string, client authusecase.ClientInfo) (*authusecase.Tokens, error) {
	return &authusecase.Tokens{AccessToken: "a", RefreshToken: "r", ExpiresIn: time.Minute}, nil
}

func (stubAuth) Refresh(ctx context.Context, refreshToken string, client authusecase.ClientInfo) (*authusecase.Tokens, error) {
	return nil, authusecase.ErrInvalidRefreshToken
}

func (stubAuth) Logout(ctx context.Context, refreshToken string) error { return nil }

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))

	log := zap.NewNop()
	monsters := monstersusecase.NewMonsterUsecase(di.NewMonsterRepository(gdb, nil, 0))
	spells := spellsusecase.NewSpellUsecase(di.NewSpellRepository(gdb, nil, 0))
	profiles := profileusecase.NewProfileUsecase(profileadapters.NewProfileRepository(gdb))

	return NewRouter(Handlers{
		Auth:     authhandler.NewAuthHandler(stubAuth{}, log),
		Monsters: monsterhandler.NewMonsterHandler(monsters, log),
		Spells:   spellhandler.NewSpellHandler(spells, log),
		Profile:  profilehandler.NewProfileHandler(profiles, log),
		Seed: seedhandler.NewSeedHandler(
			di.NewMonsterPipeline(monsters, log),
			di.NewSpellPipeline(spells, log),
			log,
		),
	}, Options{
		JWTSecret:      testSecret,
		DeployKey:      testDeployKey,
		AllowedOrigins: []string{testOrigin},
		AuthLimiter:    ratelimiter.NewRateLimiter(3, time.Minute),
	}, log)
}

func do(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(t *testing.T, userID uint) map[string]string {
	t.Helper()
	tok, err := jwtmw.NewGenerator(testSecret, time.Hour).GenerateToken(userID, "player@example.com")
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + tok}
}

func TestRouter_Probes(t *testing.T) {
	t.Parallel()
	r := setupRouter(t)

	w := do(r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = do(r, http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "readiness is only mounted when configured")
}

func TestRouter_SeedThenBrowse(t *testing.T) {
	t.Parallel()
	r := setupRouter(t)

	monsters := `[{"name":"Goblin","slug":"goblin","armor_class":11,"hit_points":5,"strength":0,"dexterity":1,
		"constitution":0,"intelligence":-1,"wisdom":-1,"charisma":-2,"alignment":"C","level":1}]`

	w := do(r, http.MethodPost, "/admin/seed/monsters", monsters, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/admin/seed/monsters", monsters, map[string]string{middleware.DeployKeyHeader: testDeployKey})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"inserted":1`)

	w = do(r, http.MethodPost, "/admin/seed/spells", `{"not":"an array"}`, map[string]string{middleware.DeployKeyHeader: testDeployKey})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/monsters?search=GOB", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"goblin"`)

	w = do(r, http.MethodGet, "/monsters/goblin", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/spells/light", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Me(t *testing.T) {
	t.Parallel()
	r := setupRouter(t)

	w := do(r, http.MethodGet, "/me/id", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":null}`, w.Body.String())

	w = do(r, http.MethodGet, "/me/profile", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	w = do(r, http.MethodPut, "/me/profile", `{"display_name":"Ralina"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	auth := bearer(t, 7)
	w = do(r, http.MethodGet, "/me/id", "", auth)
	assert.JSONEq(t, `{"user_id":7}`, w.Body.String())

	w = do(r, http.MethodPut, "/me/preferences", `{"theme_preference":"dark"}`, auth)
	assert.Equal(t, http.StatusNotFound, w.Code, "preferences need a profile first")

	w = do(r, http.MethodPut, "/me/profile", `{"display_name":"Ralina"}`, auth)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodPut, "/me/preferences", `{"theme_preference":"dark"}`, auth)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodPut, "/me/profile", `{"display_name":"Ralina the Bold"}`, auth)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodGet, "/me/profile", "", auth)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"display_name":"Ralina the Bold"`)
	assert.Contains(t, w.Body.String(), `"theme_preference":"dark"`)
	assert.Contains(t, w.Body.String(), `"email":"player@example.com"`)
}

func TestRouter_Auth(t *testing.T) {
	t.Parallel()
	r := setupRouter(t)

	w := do(r, http.MethodGet, "/auth/discord/login", "", nil)
	assert.Equal(t, http.StatusFound, w.Code)

	w = do(r, http.MethodPost, "/auth/logout", `{"refresh_token":"`+strings.Repeat("ab", 32)+`"}`, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodPost, "/auth/refresh", `{"refresh_token":"`+strings.Repeat("ab", 32)+`"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/auth/refresh", `{"refresh_token":"`+strings.Repeat("ab", 32)+`"}`, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "fourth auth call in the window is throttled")

	w = do(r, http.MethodGet, "/monsters", "", nil)
	assert.Equal(t, http.StatusOK, w.Code, "the throttle only covers /auth")
}

func TestRouter_CORS(t *testing.T) {
	t.Parallel()
	r := setupRouter(t)

	w := do(r, http.MethodOptions, "/me/profile", "", map[string]string{
		"Origin":                        testOrigin,
		"Access-Control-Request-Method": http.MethodPut,
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, http.MethodGet, "/monsters", "", map[string]string{"Origin": "https://evil.example"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
