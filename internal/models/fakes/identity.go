package fakes

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/models"
)

type account struct {
	uid      string
	password string
	metadata map[string]any
}

// Identity is an in-memory identity provider. Access tokens are "access-<uid>".
type Identity struct {
	mu        sync.Mutex
	accounts  map[string]*account
	refresh   map[string]string
	SignedOut []string
	Err       error
}

var (
	_ models.IdentityProvider = (*Identity)(nil)
	_ helpers.TokenVerifier    = (*Identity)(nil)
)

func NewIdentity() *Identity {
	return &Identity{accounts: map[string]*account{}, refresh: map[string]string{}}
}

func (i *Identity) SignUp(ctx context.Context, email, password string, metadata map[string]any) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.Err != nil {
		return "", i.Err
	}
	email = strings.ToLower(email)
	if _, ok := i.accounts[email]; ok {
		return "", models.ErrEmailTaken
	}
	uid := uuid.NewString()
	i.accounts[email] = &account{uid: uid, password: password, metadata: metadata}
	return uid, nil
}

func (i *Identity) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.Err != nil {
		return nil, i.Err
	}
	acc, ok := i.accounts[strings.ToLower(email)]
	if !ok || acc.password != password {
		return nil, models.ErrInvalidCredentials
	}
	return i.issue(acc.uid), nil
}

func (i *Identity) Refresh(ctx context.Context, refreshToken string) (*models.Session, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	uid, ok := i.refresh[refreshToken]
	if !ok {
		return nil, models.ErrInvalidCredentials
	}
	delete(i.refresh, refreshToken)
	return i.issue(uid), nil
}

func (i *Identity) UpdateMetadata(ctx context.Context, accessToken string, metadata map[string]any) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	uid := strings.TrimPrefix(accessToken, "access-")
	for _, acc := range i.accounts {
		if acc.uid == uid {
			if acc.metadata == nil {
				acc.metadata = map[string]any{}
			}
			for k, v := range metadata {
				acc.metadata[k] = v
			}
			return nil
		}
	}
	return models.ErrInvalidCredentials
}

func (i *Identity) SignOut(ctx context.Context, accessToken string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.SignedOut = append(i.SignedOut, accessToken)
	return nil
}

// Metadata returns the stored metadata for email.
func (i *Identity) Metadata(email string) map[string]any {
	i.mu.Lock()
	defer i.mu.Unlock()
	if acc, ok := i.accounts[strings.ToLower(email)]; ok {
		return acc.metadata
	}
	return nil
}

func (i *Identity) issue(uid string) *models.Session {
	rt := "refresh-" + uuid.NewString()
	i.refresh[rt] = uid
	return &models.Session{AccessToken: "access-" + uid, RefreshToken: rt, ExpiresIn: 3600, UID: uid}
}

// Verify accepts the access tokens this fake issues, standing in for the JWT verifier.
func (i *Identity) Verify(token string) (*helpers.Claims, error) {
	uid, ok := strings.CutPrefix(token, "access-")
	if !ok || uid == "" {
		return nil, helpers.ErrInvalidToken
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	for email, acc := range i.accounts {
		if acc.uid == uid {
			claims := &helpers.Claims{Email: email}
			claims.Subject = uid
			return claims, nil
		}
	}
	return nil, helpers.ErrInvalidToken
}
