package models

import "github.com/google/uuid"

type PrincipalKind string

const (
	PrincipalGuest PrincipalKind = "guest"
	PrincipalStaff PrincipalKind = "staff"
)

// Principal is the authenticated caller behind a request.
type Principal struct {
	UID     string        `json:"uid"`
	Email   string        `json:"email"`
	Kind    PrincipalKind `json:"kind"`
	Role    StaffRole     `json:"role,omitempty"`
	GuestID uuid.UUID     `json:"guest_id,omitempty"`
	StaffID uuid.UUID     `json:"staff_id,omitempty"`
}

func (p *Principal) IsGuest() bool {
	return p != nil && p.Kind == PrincipalGuest
}

// HasRole reports whether the caller is staff with one of roles; ADMIN always qualifies.
func (p *Principal) HasRole(roles ...StaffRole) bool {
	if p == nil || p.Kind != PrincipalStaff {
		return false
	}
	if p.Role == RoleAdmin {
		return true
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// OwnsGuest reports whether the caller is the guest with id.
func (p *Principal) OwnsGuest(id uuid.UUID) bool {
	return p.IsGuest() && p.GuestID == id
}

func (p *Principal) RoleName() string {
	if p == nil {
		return ""
	}
	if p.Kind == PrincipalGuest {
		return string(PrincipalGuest)
	}
	return string(p.Role)
}
