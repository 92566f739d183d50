package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/joshua-takyi/resort/internal/failure"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/models"
)

type GuestService struct {
	guests   models.GuestRepo
	identity models.IdentityProvider
	logger   *slog.Logger
}

func NewGuestService(guests models.GuestRepo, identity models.IdentityProvider, logger *slog.Logger) *GuestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GuestService{guests: guests, identity: identity, logger: logger.With("service", "guest")}
}

// canManageGuest is true for the guest themselves and for front desk and manager staff.
func canManageGuest(actor *models.Principal, guestID uuid.UUID) bool {
	return actor.OwnsGuest(guestID) || actor.HasRole(models.RoleFrontDesk, models.RoleManager)
}

func (gs *GuestService) GetGuest(ctx context.Context, actor *models.Principal, id uuid.UUID) (*models.Guest, error) {
	if !canManageGuest(actor, id) {
		return nil, failure.Forbidden("you may only view your own profile")
	}
	guest, err := gs.guests.GetGuestByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "guest")
	}
	return guest, nil
}

func (gs *GuestService) ListGuests(ctx context.Context, search string) ([]models.Guest, error) {
	guests, err := gs.guests.ListGuests(ctx, helpers.StringTrim(search))
	if err != nil {
		gs.logger.Error("failed to list guests", "error", err)
		return nil, err
	}
	return guests, nil
}

// UpdateGuest changes profile fields; when guests edit themselves the identity metadata follows.
func (gs *GuestService) UpdateGuest(ctx context.Context, actor *models.Principal, id uuid.UUID, req models.UpdateGuestRequest, accessToken string) (*models.Guest, error) {
	if !canManageGuest(actor, id) {
		return nil, failure.Forbidden("you may only update your own profile")
	}
	for _, p := range []*string{req.FirstName, req.LastName, req.Phone, req.Address} {
		if p != nil {
			*p = helpers.StringTrim(*p)
		}
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	fields := req.Fields()
	if len(fields) == 0 {
		return nil, failure.BadRequestFromString("no fields to update")
	}

	guest, err := gs.guests.UpdateGuest(ctx, id, fields)
	if err != nil {
		return nil, repoError(err, "guest")
	}

	if actor.OwnsGuest(id) && accessToken != "" && (req.FirstName != nil || req.LastName != nil) {
		meta := map[string]any{"first_name": guest.FirstName, "last_name": guest.LastName}
		if err := gs.identity.UpdateMetadata(ctx, accessToken, meta); err != nil {
			gs.logger.Warn("failed to sync identity metadata", "guest_id", id, "error", err)
		}
	}
	return guest, nil
}
