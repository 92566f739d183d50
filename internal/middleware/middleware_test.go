package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joshua-takyi/resort/internal/failure"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func sign(t *testing.T, uid string, ttl time.Duration) string {
	t.Helper()
	claims := helpers.Claims{
		Email: uid + "@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

type stubAuth struct {
	principals map[string]*models.Principal
	refreshed  *models.Session
	refreshErr error
}

func (s *stubAuth) ResolvePrincipal(_ context.Context, uid, _ string) (*models.Principal, error) {
	if p, ok := s.principals[uid]; ok {
		return p, nil
	}
	return nil, failure.Unauthorized("no account is linked to this session")
}

func (s *stubAuth) Refresh(_ context.Context, _ string) (*models.Session, error) {
	return s.refreshed, s.refreshErr
}

func newRouter(auth *stubAuth, gates ...gin.HandlerFunc) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := gin.New()
	r.Use(RequestID(), StructuredLogger(logger), ErrorHandler(logger))
	chain := append([]gin.HandlerFunc{Auth(helpers.NewSecretVerifier(testSecret), auth, false, logger)}, gates...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": GetPrincipal(c).UID, "token": AccessToken(c)})
	})
	r.GET("/private", chain...)
	return r
}

func guestAuth() *stubAuth {
	return &stubAuth{principals: map[string]*models.Principal{
		"guest-1": {UID: "guest-1", Kind: models.PrincipalGuest},
		"desk-1":  {UID: "desk-1", Kind: models.PrincipalStaff, Role: models.RoleFrontDesk},
		"admin-1": {UID: "admin-1", Kind: models.PrincipalStaff, Role: models.RoleAdmin},
	}}
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestIDEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := do(r, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "abc-123", w.Body.String())

	w = do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuthBearerHeader(t *testing.T) {
	r := newRouter(guestAuth())
	token := sign(t, "guest-1", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := do(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "guest-1", body["uid"])
	assert.Equal(t, token, body["token"])
}

func TestAuthCookie(t *testing.T) {
	r := newRouter(guestAuth())
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: sign(t, "guest-1", time.Hour)})
	assert.Equal(t, http.StatusOK, do(r, req).Code)
}

func TestAuthRejects(t *testing.T) {
	r := newRouter(guestAuth())

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic Zm9vOmJhcg==", http.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"expired", "Bearer " + sign(t, "guest-1", -time.Minute), http.StatusUnauthorized},
		{"unknown account", "Bearer " + sign(t, "stranger", time.Hour), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := do(r, req)
			assert.Equal(t, tt.code, w.Code)

			var body helpers.ApiResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
		})
	}
}

func TestAuthRefreshesExpiredCookie(t *testing.T) {
	auth := guestAuth()
	fresh := sign(t, "guest-1", time.Hour)
	auth.refreshed = &models.Session{AccessToken: fresh, RefreshToken: "refresh-2", ExpiresIn: 3600}
	r := newRouter(auth)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: sign(t, "guest-1", -time.Minute)})
	req.AddCookie(&http.Cookie{Name: RefreshCookie, Value: "refresh-1"})
	w := do(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := map[string]string{}
	for _, ck := range w.Result().Cookies() {
		cookies[ck.Name] = ck.Value
	}
	assert.Equal(t, fresh, cookies[AccessCookie])
	assert.Equal(t, "refresh-2", cookies[RefreshCookie])

	auth.refreshErr = errors.New("revoked")
	w = do(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleGates(t *testing.T) {
	tests := []struct {
		name string
		gate gin.HandlerFunc
		uid  string
		code int
	}{
		{"guest allowed", GuestsOr(models.RoleFrontDesk), "guest-1", http.StatusOK},
		{"desk allowed", GuestsOr(models.RoleFrontDesk), "desk-1", http.StatusOK},
		{"desk not manager", StaffOnly(models.RoleManager), "desk-1", http.StatusForbidden},
		{"admin passes", StaffOnly(models.RoleManager), "admin-1", http.StatusOK},
		{"guest not staff", StaffOnly(), "guest-1", http.StatusForbidden},
		{"any staff", StaffOnly(), "desk-1", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(guestAuth(), tt.gate)
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			req.Header.Set("Authorization", "Bearer "+sign(t, tt.uid, time.Hour))
			assert.Equal(t, tt.code, do(r, req).Code)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := gin.New()
	r.GET("/open", OptionalAuth(helpers.NewSecretVerifier(testSecret), guestAuth(), logger), func(c *gin.Context) {
		if p := GetPrincipal(c); p != nil {
			c.String(http.StatusOK, p.UID)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	w := do(r, httptest.NewRequest(http.MethodGet, "/open", nil))
	assert.Equal(t, "anonymous", w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, "guest-1", time.Hour))
	assert.Equal(t, "guest-1", do(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer broken")
	assert.Equal(t, "anonymous", do(r, req).Body.String())
}

func TestErrorHandlerAnswers500(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(logger))
	r.GET("/boom", func(c *gin.Context) { _ = c.Error(errors.New("db exploded")) })

	w := do(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db exploded")
}
