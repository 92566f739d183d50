package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/joshua-takyi/resort/internal/failure"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/models"
)

type StaffService struct {
	staff    models.StaffRepo
	identity models.IdentityProvider
	status   *StatusChanger
	logger   *slog.Logger
}

func NewStaffService(staff models.StaffRepo, identity models.IdentityProvider, status *StatusChanger, logger *slog.Logger) *StaffService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StaffService{staff: staff, identity: identity, status: status, logger: logger.With("service", "staff")}
}

func (ss *StaffService) ListStaff(ctx context.Context, roleRaw string) ([]models.Staff, error) {
	var role models.StaffRole
	if roleRaw != "" {
		r, err := models.ParseStaffRole(roleRaw)
		if err != nil {
			return nil, failure.BadRequest(err)
		}
		role = r
	}
	staff, err := ss.staff.ListStaff(ctx, role)
	if err != nil {
		ss.logger.Error("failed to list staff", "error", err)
		return nil, err
	}
	return staff, nil
}

func parseShift(startRaw, endRaw string) (models.ClockTime, models.ClockTime, error) {
	start, err := parseClock(startRaw, "staff_shift_start")
	if err != nil {
		return start, start, err
	}
	end, err := parseClock(endRaw, "staff_shift_end")
	if err != nil {
		return start, end, err
	}
	if start == end {
		return start, end, failure.BadRequestFromString("shift start and end must differ")
	}
	return start, end, nil
}

func (ss *StaffService) CreateStaff(ctx context.Context, req models.CreateStaffRequest) (*models.Staff, error) {
	req.FirstName = helpers.StringTrim(req.FirstName)
	req.LastName = helpers.StringTrim(req.LastName)
	req.Email = helpers.StringTrim(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}
	role, err := models.ParseStaffRole(req.Role)
	if err != nil {
		return nil, failure.BadRequest(err)
	}
	start, end, err := parseShift(req.ShiftStart, req.ShiftEnd)
	if err != nil {
		return nil, err
	}
	if !helpers.IsPasswordStrong(req.Password) {
		return nil, failure.BadRequestFromString(weakPasswordMessage)
	}

	uid, err := ss.identity.SignUp(ctx, req.Email, req.Password, map[string]any{
		"role":       string(role),
		"first_name": req.FirstName,
		"last_name":  req.LastName,
	})
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			return nil, failure.BadRequestFromString("email already in use")
		}
		ss.logger.Error("identity sign up failed", "error", err)
		return nil, err
	}

	hash, err := helpers.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	member, err := ss.staff.CreateStaff(ctx, &models.Staff{
		UID:        uid,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      helpers.StringTrim(req.Phone),
		Role:       role,
		ShiftStart: start,
		ShiftEnd:   end,
		Status:     models.StaffActive,
	}, hash)
	if err != nil {
		return nil, repoError(err, "staff")
	}
	return member, nil
}

func (ss *StaffService) UpdateStaff(ctx context.Context, id uuid.UUID, req models.UpdateStaffRequest) (*models.Staff, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if req.FirstName != nil {
		fields["staff_fname"] = helpers.StringTrim(*req.FirstName)
	}
	if req.LastName != nil {
		fields["staff_lname"] = helpers.StringTrim(*req.LastName)
	}
	if req.Phone != nil {
		fields["staff_phone"] = helpers.StringTrim(*req.Phone)
	}
	if req.Role != nil {
		role, err := models.ParseStaffRole(*req.Role)
		if err != nil {
			return nil, failure.BadRequest(err)
		}
		fields["staff_role"] = role
	}
	if req.ShiftStart != nil || req.ShiftEnd != nil {
		if req.ShiftStart == nil || req.ShiftEnd == nil {
			return nil, failure.BadRequestFromString("staff_shift_start and staff_shift_end must be updated together")
		}
		start, end, err := parseShift(*req.ShiftStart, *req.ShiftEnd)
		if err != nil {
			return nil, err
		}
		fields["staff_shift_start"] = start
		fields["staff_shift_end"] = end
	}
	if len(fields) == 0 {
		return nil, failure.BadRequestFromString("no fields to update")
	}

	member, err := ss.staff.UpdateStaff(ctx, id, fields)
	if err != nil {
		return nil, repoError(err, "staff")
	}
	return member, nil
}

func (ss *StaffService) ChangeStatus(ctx context.Context, actor *models.Principal, id uuid.UUID, raw string) (*models.StatusChange, error) {
	status, err := models.ParseStaffStatus(raw)
	if err != nil {
		return nil, failure.BadRequest(err)
	}
	return ss.status.Change(ctx, actor, models.StaffStatusTarget, id, string(status), nil)
}

// OnShift lists active staff whose shift covers atRaw (HH:MM); shifts may wrap midnight.
func (ss *StaffService) OnShift(ctx context.Context, atRaw string) ([]models.Staff, error) {
	at, err := parseClock(atRaw, "at")
	if err != nil {
		return nil, err
	}
	all, err := ss.staff.ListStaff(ctx, "")
	if err != nil {
		ss.logger.Error("failed to list staff", "error", err)
		return nil, err
	}
	out := []models.Staff{}
	for i := range all {
		if all[i].OnShift(at) {
			out = append(out, all[i])
		}
	}
	return out, nil
}
