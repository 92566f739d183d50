package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/middleware"
	"github.com/joshua-takyi/resort/internal/models"
	"github.com/joshua-takyi/resort/internal/services"
)

func Register(a *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterGuestRequest
		if !bindJSON(c, &req) {
			return
		}
		guest, err := a.Register(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		created(c, "guest_id", guest.ID, "Account created successfully")
	}
}

// Login opens a session and hands the tokens back as http-only cookies.
func Login(a *services.AuthService, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if !bindJSON(c, &req) {
			return
		}
		res, err := a.Login(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		middleware.SetSessionCookies(c, res.Session, secureCookies)
		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{
			"role":       res.Principal.RoleName(),
			"profile":    res.Profile,
			"expires_in": res.Session.ExpiresIn,
		}, "Logged in successfully"))
	}
}

// Refresh accepts the refresh token from its cookie or from the body.
func Refresh(a *services.AuthService, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(middleware.RefreshCookie)
		if token == "" {
			var body struct {
				RefreshToken string `json:"refresh_token"`
			}
			_ = c.ShouldBindJSON(&body)
			token = body.RefreshToken
		}
		session, err := a.Refresh(c.Request.Context(), token)
		if err != nil {
			respondError(c, err)
			return
		}
		middleware.SetSessionCookies(c, session, secureCookies)
		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{"expires_in": session.ExpiresIn}, "Session refreshed"))
	}
}

func Logout(a *services.AuthService, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := middleware.AccessToken(c)
		if token == "" {
			token, _ = c.Cookie(middleware.AccessCookie)
		}
		a.Logout(c.Request.Context(), token)
		middleware.ClearSessionCookies(c, secureCookies)
		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "Logged out successfully"))
	}
}

func Me(a *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := middleware.GetPrincipal(c)
		profile, err := a.Me(c.Request.Context(), p)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, gin.H{"role": p.RoleName(), "kind": p.Kind, "profile": profile})
	}
}
