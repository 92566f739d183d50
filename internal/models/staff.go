package models

import (
	"time"

	"github.com/google/uuid"
)

const StaffTable = "staff"

const staffColumns = "staff_id,staff_uid,staff_fname,staff_lname,staff_email,staff_phone,staff_role,staff_shift_start,staff_shift_end,staff_status,staff_created_at"

type Staff struct {
	ID         uuid.UUID   `json:"staff_id"`
	UID        string      `json:"staff_uid"`
	FirstName  string      `json:"staff_fname"`
	LastName   string      `json:"staff_lname"`
	Email      string      `json:"staff_email"`
	Phone      string      `json:"staff_phone"`
	Role       StaffRole   `json:"staff_role"`
	ShiftStart ClockTime   `json:"staff_shift_start"`
	ShiftEnd   ClockTime   `json:"staff_shift_end"`
	Status     StaffStatus `json:"staff_status"`
	CreatedAt  time.Time   `json:"staff_created_at"`
}

func (s *Staff) FullName() string {
	if s == nil {
		return UnknownLabel
	}
	return joinName(s.FirstName, s.LastName)
}

// OnShift reports whether an active staff member is working at the given time.
func (s *Staff) OnShift(at ClockTime) bool {
	return s.Status == StaffActive && WithinShift(s.ShiftStart, s.ShiftEnd, at)
}

type StaffCredentials struct {
	ID           uuid.UUID   `json:"staff_id"`
	UID          string      `json:"staff_uid"`
	Email        string      `json:"staff_email"`
	PasswordHash string      `json:"staff_password"`
	Status       StaffStatus `json:"staff_status"`
}

type CreateStaffRequest struct {
	FirstName  string `json:"staff_fname" validate:"required,max=80"`
	LastName   string `json:"staff_lname" validate:"required,max=80"`
	Email      string `json:"staff_email" validate:"required,email"`
	Phone      string `json:"staff_phone" validate:"required,min=7,max=20"`
	Role       string `json:"staff_role" validate:"required"`
	ShiftStart string `json:"staff_shift_start" validate:"required"`
	ShiftEnd   string `json:"staff_shift_end" validate:"required"`
	Password   string `json:"staff_password" validate:"required,min=8"`
}

type UpdateStaffRequest struct {
	FirstName  *string `json:"staff_fname" validate:"omitempty,min=1,max=80"`
	LastName   *string `json:"staff_lname" validate:"omitempty,min=1,max=80"`
	Phone      *string `json:"staff_phone" validate:"omitempty,min=7,max=20"`
	Role       *string `json:"staff_role"`
	ShiftStart *string `json:"staff_shift_start"`
	ShiftEnd   *string `json:"staff_shift_end"`
}
