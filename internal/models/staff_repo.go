package models

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type StaffRepo interface {
	CreateStaff(ctx context.Context, staff *Staff, passwordHash string) (*Staff, error)
	GetStaffByID(ctx context.Context, id uuid.UUID) (*Staff, error)
	GetStaffByUID(ctx context.Context, uid string) (*Staff, error)
	GetStaffCredentials(ctx context.Context, email string) (*StaffCredentials, error)
	ListStaff(ctx context.Context, role StaffRole) ([]Staff, error)
	UpdateStaff(ctx context.Context, id uuid.UUID, fields map[string]any) (*Staff, error)
}

func (su *SupabaseRepo) CreateStaff(ctx context.Context, staff *Staff, passwordHash string) (*Staff, error) {
	row := map[string]any{
		"staff_uid":         staff.UID,
		"staff_fname":       staff.FirstName,
		"staff_lname":       staff.LastName,
		"staff_email":       strings.ToLower(staff.Email),
		"staff_phone":       staff.Phone,
		"staff_role":        staff.Role,
		"staff_shift_start": staff.ShiftStart,
		"staff_shift_end":   staff.ShiftEnd,
		"staff_status":      staff.Status,
		"staff_password":    passwordHash,
	}
	return execFirst[Staff](su.insertOne(StaffTable, row), "staff")
}

func (su *SupabaseRepo) GetStaffByID(ctx context.Context, id uuid.UUID) (*Staff, error) {
	q := su.supabaseClient.From(StaffTable).Select(staffColumns, "", false).Eq("staff_id", id.String())
	return execFirst[Staff](q, "staff")
}

func (su *SupabaseRepo) GetStaffByUID(ctx context.Context, uid string) (*Staff, error) {
	q := su.supabaseClient.From(StaffTable).Select(staffColumns, "", false).Eq("staff_uid", uid)
	return execFirst[Staff](q, "staff")
}

func (su *SupabaseRepo) GetStaffCredentials(ctx context.Context, email string) (*StaffCredentials, error) {
	q := su.supabaseClient.From(StaffTable).
		Select("staff_id,staff_uid,staff_email,staff_password,staff_status", "", false).
		Eq("staff_email", strings.ToLower(email))
	return execFirst[StaffCredentials](q, "staff credentials")
}

// ListStaff returns every staff member, or only those with role when it is set.
func (su *SupabaseRepo) ListStaff(ctx context.Context, role StaffRole) ([]Staff, error) {
	q := su.supabaseClient.From(StaffTable).Select(staffColumns, "", false)
	if role != "" {
		q = q.Eq("staff_role", string(role))
	}
	q = q.Order("staff_lname", ascending()).Order("staff_fname", ascending())
	return execRows[Staff](q, "staff")
}

func (su *SupabaseRepo) UpdateStaff(ctx context.Context, id uuid.UUID, fields map[string]any) (*Staff, error) {
	return execFirst[Staff](su.updateOne(StaffTable, "staff_id", id, fields), "staff")
}
