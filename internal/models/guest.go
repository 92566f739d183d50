package models

import (
	"time"

	"github.com/google/uuid"
)

const GuestsTable = "guests"

// guestColumns leaves out guest_password so credential hashes never reach a response.
const guestColumns = "guest_id,guest_uid,guest_fname,guest_lname,guest_email,guest_phone,guest_address,guest_created_at"

type Guest struct {
	ID        uuid.UUID `json:"guest_id"`
	UID       string    `json:"guest_uid"`
	FirstName string    `json:"guest_fname"`
	LastName  string    `json:"guest_lname"`
	Email     string    `json:"guest_email"`
	Phone     string    `json:"guest_phone"`
	Address   string    `json:"guest_address"`
	CreatedAt time.Time `json:"guest_created_at"`
}

func (g *Guest) FullName() string {
	if g == nil {
		return UnknownLabel
	}
	return joinName(g.FirstName, g.LastName)
}

// GuestCredentials is the login view of a guest row.
type GuestCredentials struct {
	ID           uuid.UUID `json:"guest_id"`
	UID          string    `json:"guest_uid"`
	Email        string    `json:"guest_email"`
	PasswordHash string    `json:"guest_password"`
}

type RegisterGuestRequest struct {
	FirstName string `json:"guest_fname" validate:"required,max=80"`
	LastName  string `json:"guest_lname" validate:"required,max=80"`
	Email     string `json:"guest_email" validate:"required,email"`
	Phone     string `json:"guest_phone" validate:"required,min=7,max=20"`
	Address   string `json:"guest_address" validate:"omitempty,max=255"`
	Password  string `json:"guest_password" validate:"required,min=8"`
}

type UpdateGuestRequest struct {
	FirstName *string `json:"guest_fname" validate:"omitempty,min=1,max=80"`
	LastName  *string `json:"guest_lname" validate:"omitempty,min=1,max=80"`
	Phone     *string `json:"guest_phone" validate:"omitempty,min=7,max=20"`
	Address   *string `json:"guest_address" validate:"omitempty,max=255"`
}

// Fields returns the columns to update; nil pointers are left untouched.
func (r UpdateGuestRequest) Fields() map[string]any {
	fields := map[string]any{}
	setIf(fields, "guest_fname", r.FirstName)
	setIf(fields, "guest_lname", r.LastName)
	setIf(fields, "guest_phone", r.Phone)
	setIf(fields, "guest_address", r.Address)
	return fields
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
