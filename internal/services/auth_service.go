package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/joshua-takyi/resort/internal/failure"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/models"
)

const weakPasswordMessage = "password must be at least 8 characters and include upper and lower case letters, a number and a special character"

type AuthService struct {
	guests   models.GuestRepo
	staff    models.StaffRepo
	identity models.IdentityProvider
	logger   *slog.Logger
}

func NewAuthService(guests models.GuestRepo, staff models.StaffRepo, identity models.IdentityProvider, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		guests:   guests,
		staff:    staff,
		identity: identity,
		logger:   logger.With("service", "auth"),
	}
}

// LoginResult is what a successful sign-in hands back to the caller.
type LoginResult struct {
	Session   *models.Session   `json:"session"`
	Principal *models.Principal `json:"principal"`
	Profile   any               `json:"profile"`
}

func (as *AuthService) Register(ctx context.Context, req models.RegisterGuestRequest) (*models.Guest, error) {
	req.FirstName = helpers.StringTrim(req.FirstName)
	req.LastName = helpers.StringTrim(req.LastName)
	req.Email = helpers.StringTrim(req.Email)
	req.Phone = helpers.StringTrim(req.Phone)
	if err := validate(req); err != nil {
		return nil, err
	}
	if !helpers.IsPasswordStrong(req.Password) {
		return nil, failure.BadRequestFromString(weakPasswordMessage)
	}

	metadata := map[string]any{
		"role":       string(models.PrincipalGuest),
		"first_name": req.FirstName,
		"last_name":  req.LastName,
	}
	uid, err := as.identity.SignUp(ctx, req.Email, req.Password, metadata)
	if errors.Is(err, models.ErrEmailTaken) {
		uid, err = as.reclaimIdentity(ctx, req.Email, req.Password, metadata)
	}
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			return nil, failure.BadRequestFromString("email already in use")
		}
		as.logger.Error("identity sign up failed", "error", err)
		return nil, err
	}

	hash, err := helpers.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	guest, err := as.guests.CreateGuest(ctx, &models.Guest{
		UID:       uid,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   helpers.StringTrim(req.Address),
	}, hash)
	if err != nil {
		if !errors.Is(err, models.ErrDuplicate) {
			// the identity stays behind without a profile until the guest registers again
			as.logger.Error("failed to store guest, identity left without profile", "uid", uid, "error", err)
		}
		return nil, repoError(err, "guest")
	}
	return guest, nil
}

// reclaimIdentity hands back the uid of an identity that has no guest or staff
// profile, which happens when a registration fails after sign up. The caller
// must prove the password; otherwise the email counts as taken.
func (as *AuthService) reclaimIdentity(ctx context.Context, email, password string, metadata map[string]any) (string, error) {
	_, err := as.guests.GetGuestCredentials(ctx, email)
	if err == nil {
		return "", models.ErrEmailTaken
	}
	if !errors.Is(err, models.ErrNotFound) {
		return "", err
	}
	_, err = as.staff.GetStaffCredentials(ctx, email)
	if err == nil {
		return "", models.ErrEmailTaken
	}
	if !errors.Is(err, models.ErrNotFound) {
		return "", err
	}

	session, err := as.identity.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			return "", models.ErrEmailTaken
		}
		return "", err
	}
	if err := as.identity.UpdateMetadata(ctx, session.AccessToken, metadata); err != nil {
		as.logger.Warn("failed to refresh reclaimed identity metadata", "uid", session.UID, "error", err)
	}
	as.Logout(ctx, session.AccessToken)
	as.logger.Info("reclaimed identity without profile", "uid", session.UID)
	return session.UID, nil
}

// Login checks the stored credentials for a guest first, then for staff, and opens a session.
func (as *AuthService) Login(ctx context.Context, req models.LoginRequest) (*LoginResult, error) {
	req.Email = helpers.StringTrim(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}

	principal, profile, hash, err := as.lookupCredentials(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if err := helpers.CheckPassword(hash, req.Password); err != nil {
		if errors.Is(err, helpers.ErrPasswordMismatch) {
			return nil, failure.Unauthorized("invalid email or password")
		}
		return nil, err
	}

	session, err := as.identity.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			return nil, failure.Unauthorized("invalid email or password")
		}
		as.logger.Error("identity sign in failed", "error", err)
		return nil, err
	}
	return &LoginResult{Session: session, Principal: principal, Profile: profile}, nil
}

func (as *AuthService) lookupCredentials(ctx context.Context, email string) (*models.Principal, any, string, error) {
	gc, err := as.guests.GetGuestCredentials(ctx, email)
	if err == nil {
		guest, err := as.guests.GetGuestByID(ctx, gc.ID)
		if err != nil {
			return nil, nil, "", repoError(err, "guest")
		}
		return guestPrincipal(guest), guest, gc.PasswordHash, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, nil, "", err
	}

	sc, err := as.staff.GetStaffCredentials(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil, "", failure.Unauthorized("invalid email or password")
	}
	if err != nil {
		return nil, nil, "", err
	}
	if sc.Status != models.StaffActive {
		return nil, nil, "", failure.Forbidden("staff account is not active")
	}
	member, err := as.staff.GetStaffByID(ctx, sc.ID)
	if err != nil {
		return nil, nil, "", repoError(err, "staff")
	}
	return staffPrincipal(member), member, sc.PasswordHash, nil
}

func (as *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.Session, error) {
	if helpers.StringTrim(refreshToken) == "" {
		return nil, failure.Unauthorized("refresh token is required")
	}
	session, err := as.identity.Refresh(ctx, refreshToken)
	if err != nil {
		as.logger.Warn("token refresh failed", "error", err)
		return nil, failure.Unauthorized("session expired, please sign in again")
	}
	return session, nil
}

// Logout revokes the session upstream; failures are logged since the cookies are cleared anyway.
func (as *AuthService) Logout(ctx context.Context, accessToken string) {
	if accessToken == "" {
		return
	}
	if err := as.identity.SignOut(ctx, accessToken); err != nil {
		as.logger.Warn("identity sign out failed", "error", err)
	}
}

// ResolvePrincipal maps a verified identity uid onto a guest or an active staff member.
func (as *AuthService) ResolvePrincipal(ctx context.Context, uid, email string) (*models.Principal, error) {
	guest, err := as.guests.GetGuestByUID(ctx, uid)
	if err == nil {
		p := guestPrincipal(guest)
		p.Email = firstNonEmpty(p.Email, email)
		return p, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	member, err := as.staff.GetStaffByUID(ctx, uid)
	if errors.Is(err, models.ErrNotFound) {
		return nil, failure.Unauthorized("no account is linked to this session")
	}
	if err != nil {
		return nil, err
	}
	if member.Status != models.StaffActive {
		return nil, failure.Forbidden("staff account is not active")
	}
	p := staffPrincipal(member)
	p.Email = firstNonEmpty(p.Email, email)
	return p, nil
}

// Me returns the stored profile of the caller.
func (as *AuthService) Me(ctx context.Context, p *models.Principal) (any, error) {
	if p == nil {
		return nil, failure.Unauthorized("authentication required")
	}
	if p.IsGuest() {
		guest, err := as.guests.GetGuestByID(ctx, p.GuestID)
		return guest, repoError(err, "guest")
	}
	member, err := as.staff.GetStaffByID(ctx, p.StaffID)
	return member, repoError(err, "staff")
}

func guestPrincipal(g *models.Guest) *models.Principal {
	return &models.Principal{UID: g.UID, Email: g.Email, Kind: models.PrincipalGuest, GuestID: g.ID}
}

func staffPrincipal(s *models.Staff) *models.Principal {
	return &models.Principal{UID: s.UID, Email: s.Email, Kind: models.PrincipalStaff, Role: s.Role, StaffID: s.ID}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
