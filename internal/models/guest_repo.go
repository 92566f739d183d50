package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type GuestRepo interface {
	CreateGuest(ctx context.Context, guest *Guest, passwordHash string) (*Guest, error)
	GetGuestByID(ctx context.Context, id uuid.UUID) (*Guest, error)
	GetGuestByUID(ctx context.Context, uid string) (*Guest, error)
	GetGuestCredentials(ctx context.Context, email string) (*GuestCredentials, error)
	ListGuests(ctx context.Context, search string) ([]Guest, error)
	UpdateGuest(ctx context.Context, id uuid.UUID, fields map[string]any) (*Guest, error)
}

func (su *SupabaseRepo) CreateGuest(ctx context.Context, guest *Guest, passwordHash string) (*Guest, error) {
	row := map[string]any{
		"guest_uid":      guest.UID,
		"guest_fname":    guest.FirstName,
		"guest_lname":    guest.LastName,
		"guest_email":    strings.ToLower(guest.Email),
		"guest_phone":    guest.Phone,
		"guest_address":  guest.Address,
		"guest_password": passwordHash,
	}
	if guest.ID != uuid.Nil {
		row["guest_id"] = guest.ID
	}
	return execFirst[Guest](su.insertOne(GuestsTable, row), "guest")
}

func (su *SupabaseRepo) GetGuestByID(ctx context.Context, id uuid.UUID) (*Guest, error) {
	q := su.supabaseClient.From(GuestsTable).Select(guestColumns, "", false).Eq("guest_id", id.String())
	return execFirst[Guest](q, "guest")
}

func (su *SupabaseRepo) GetGuestByUID(ctx context.Context, uid string) (*Guest, error) {
	q := su.supabaseClient.From(GuestsTable).Select(guestColumns, "", false).Eq("guest_uid", uid)
	return execFirst[Guest](q, "guest")
}

func (su *SupabaseRepo) GetGuestCredentials(ctx context.Context, email string) (*GuestCredentials, error) {
	q := su.supabaseClient.From(GuestsTable).
		Select("guest_id,guest_uid,guest_email,guest_password", "", false).
		Eq("guest_email", strings.ToLower(email))
	return execFirst[GuestCredentials](q, "guest credentials")
}

func (su *SupabaseRepo) ListGuests(ctx context.Context, search string) ([]Guest, error) {
	q := su.supabaseClient.From(GuestsTable).Select(guestColumns, "", false)
	if search = strings.TrimSpace(search); search != "" {
		pattern := "*" + strings.NewReplacer(",", "", "(", "", ")", "").Replace(search) + "*"
		q = q.Or(fmt.Sprintf("guest_fname.ilike.%s,guest_lname.ilike.%s,guest_email.ilike.%s", pattern, pattern, pattern), "")
	}
	q = q.Order("guest_lname", ascending()).Order("guest_fname", ascending())
	return execRows[Guest](q, "guests")
}

func (su *SupabaseRepo) UpdateGuest(ctx context.Context, id uuid.UUID, fields map[string]any) (*Guest, error) {
	return execFirst[Guest](su.updateOne(GuestsTable, "guest_id", id, fields), "guest")
}
