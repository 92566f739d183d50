package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Session is the token pair handed out by the identity provider.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	UID          string `json:"-"`
}

type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string, metadata map[string]any) (string, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	UpdateMetadata(ctx context.Context, accessToken string, metadata map[string]any) error
	SignOut(ctx context.Context, accessToken string) error
}

// GoTrueIdentity talks to the hosted auth server.
type GoTrueIdentity struct {
	client gotrue.Client
}

func NewGoTrueIdentity(client gotrue.Client) *GoTrueIdentity {
	return &GoTrueIdentity{client: client}
}

func (g *GoTrueIdentity) SignUp(ctx context.Context, email, password string, metadata map[string]any) (string, error) {
	res, err := g.client.Signup(types.SignupRequest{
		Email:    strings.ToLower(email),
		Password: password,
		Data:     metadata,
	})
	if err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "already registered") || strings.Contains(msg, "already exists") {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("identity sign up failed: %w", err)
	}
	if res.ID != uuid.Nil {
		return res.ID.String(), nil
	}
	if res.Session.User.ID != uuid.Nil {
		return res.Session.User.ID.String(), nil
	}
	return "", fmt.Errorf("identity sign up returned no user")
}

func (g *GoTrueIdentity) SignIn(ctx context.Context, email, password string) (*Session, error) {
	res, err := g.client.SignInWithEmailPassword(strings.ToLower(email), password)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "invalid") {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("identity sign in failed: %w", err)
	}
	return sessionFrom(res.Session), nil
}

func (g *GoTrueIdentity) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	res, err := g.client.RefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("identity refresh failed: %w", err)
	}
	return sessionFrom(res.Session), nil
}

func (g *GoTrueIdentity) UpdateMetadata(ctx context.Context, accessToken string, metadata map[string]any) error {
	_, err := g.client.WithToken(accessToken).UpdateUser(types.UpdateUserRequest{Data: metadata})
	if err != nil {
		return fmt.Errorf("identity update failed: %w", err)
	}
	return nil
}

func (g *GoTrueIdentity) SignOut(ctx context.Context, accessToken string) error {
	if err := g.client.WithToken(accessToken).Logout(); err != nil {
		return fmt.Errorf("identity sign out failed: %w", err)
	}
	return nil
}

func sessionFrom(s types.Session) *Session {
	return &Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    s.ExpiresIn,
		UID:          s.User.ID.String(),
	}
}
