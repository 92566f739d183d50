package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/resort/internal/failure"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/models"
)

const (
	principalKey   = "principal"
	accessTokenKey = "access_token"
	requestIDKey   = "request_id"

	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
	// RefreshCookieMaxAge keeps the refresh cookie for 30 days.
	RefreshCookieMaxAge = 3600 * 24 * 30
)

// Authenticator resolves a verified token subject to a caller and renews expired sessions.
type Authenticator interface {
	ResolvePrincipal(ctx context.Context, uid, email string) (*models.Principal, error)
	Refresh(ctx context.Context, refreshToken string) (*models.Session, error)
}

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger logs one line per request, at warn for 4xx and error for 5xx.
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}
		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		attrs := []any{
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if p := GetPrincipal(c); p != nil {
			attrs = append(attrs, "uid", p.UID, "role", p.RoleName())
		}
		logger.Log(c.Request.Context(), level, "HTTP Request", attrs...)
	}
}

// ErrorHandler logs errors attached to the context and answers 500 when no response was written.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()
		requestID := c.GetString(requestIDKey)
		logger.Error("Request error",
			"request_id", requestID,
			"error", err.Error(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		if !c.Writer.Written() {
			// Don't return error details to clients
			c.JSON(http.StatusInternalServerError, helpers.ApiResponse{
				Success: false,
				Message: "Internal server error",
				Error:   "request " + requestID + " failed",
			})
		}
	}
}

// Auth requires a valid access token from the Authorization header or the access_token cookie.
// An expired cookie session is renewed with the refresh cookie when one is present.
func Auth(verifier helpers.TokenVerifier, auth Authenticator, secureCookies bool, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authenticate(c, verifier, auth, secureCookies, logger); err != nil {
			abort(c, err)
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches the caller when a valid token is sent and lets anonymous requests through.
func OptionalAuth(verifier helpers.TokenVerifier, auth Authenticator, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, _ := bearerToken(c); token != "" {
			if claims, err := verifier.Verify(token); err == nil {
				if p, err := auth.ResolvePrincipal(c.Request.Context(), claims.UID(), claims.Email); err == nil {
					c.Set(principalKey, p)
					c.Set(accessTokenKey, token)
				}
			}
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, verifier helpers.TokenVerifier, auth Authenticator, secureCookies bool, logger *slog.Logger) error {
	token, fromCookie := bearerToken(c)
	if token == "" {
		return failure.Unauthorized("authentication required")
	}

	claims, err := verifier.Verify(token)
	if err != nil {
		refreshToken, cookieErr := c.Cookie(RefreshCookie)
		if !fromCookie || cookieErr != nil || refreshToken == "" {
			return failure.Unauthorized("invalid or expired token")
		}
		session, refreshErr := auth.Refresh(c.Request.Context(), refreshToken)
		if refreshErr != nil {
			logger.Warn("Token refresh failed", "error", refreshErr)
			return failure.Unauthorized("session expired, please sign in again")
		}
		SetSessionCookies(c, session, secureCookies)
		token = session.AccessToken
		if claims, err = verifier.Verify(token); err != nil {
			return failure.Unauthorized("refreshed token validation failed")
		}
		logger.Info("Token refreshed", "uid", claims.UID())
	}

	principal, err := auth.ResolvePrincipal(c.Request.Context(), claims.UID(), claims.Email)
	if err != nil {
		return err
	}
	c.Set(principalKey, principal)
	c.Set(accessTokenKey, token)
	return nil
}

// bearerToken prefers the Authorization header and falls back to the access cookie.
func bearerToken(c *gin.Context) (string, bool) {
	if h := c.GetHeader("Authorization"); h != "" {
		if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
			return strings.TrimSpace(h[7:]), false
		}
		return "", false
	}
	if v, err := c.Cookie(AccessCookie); err == nil {
		return v, true
	}
	return "", false
}

// GuestsOr admits guests and the listed staff roles.
func GuestsOr(roles ...models.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := GetPrincipal(c)
		if p.IsGuest() || p.HasRole(roles...) {
			c.Next()
			return
		}
		abort(c, denied(p))
	}
}

// StaffOnly admits staff with one of roles; with no roles any staff member passes.
func StaffOnly(roles ...models.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := GetPrincipal(c)
		if p != nil && p.Kind == models.PrincipalStaff && (len(roles) == 0 || p.HasRole(roles...)) {
			c.Next()
			return
		}
		abort(c, denied(p))
	}
}

func denied(p *models.Principal) error {
	if p == nil {
		return failure.Unauthorized("authentication required")
	}
	return failure.Forbidden("you do not have access to this resource")
}

func abort(c *gin.Context, err error) {
	code := failure.GetCode(err)
	msg := err.Error()
	var f *failure.Failure
	if !errors.As(err, &f) {
		_ = c.Error(err)
		msg = "Internal server error"
	}
	c.AbortWithStatusJSON(code, helpers.ApiResponse{Success: false, Message: msg, Error: http.StatusText(code)})
}

// GetPrincipal returns the authenticated caller, or nil on public routes.
func GetPrincipal(c *gin.Context) *models.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*models.Principal)
	return p
}

// AccessToken returns the token the caller authenticated with.
func AccessToken(c *gin.Context) string {
	return c.GetString(accessTokenKey)
}

func SetSessionCookies(c *gin.Context, s *models.Session, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, s.AccessToken, s.ExpiresIn, "/", "", secure, true)
	c.SetCookie(RefreshCookie, s.RefreshToken, RefreshCookieMaxAge, "/", "", secure, true)
}

func ClearSessionCookies(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, "", -1, "/", "", secure, true)
	c.SetCookie(RefreshCookie, "", -1, "/", "", secure, true)
}
