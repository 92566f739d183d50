package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/joshua-takyi/resort/internal/failure"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/models"
)

// repoError maps store sentinels onto client-facing failures; anything else stays a 500.
func repoError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrNotFound):
		return failure.NotFound(what + " not found")
	case errors.Is(err, models.ErrDuplicate):
		return failure.BadRequestFromString(what + " already exists")
	}
	return fmt.Errorf("%s: %w", what, err)
}

func validate(v any) error {
	if err := models.Validate.Struct(v); err != nil {
		return failure.BadRequestFromString(models.ValidationMessage(err))
	}
	return nil
}

func ParseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(helpers.StringTrim(raw))
	if err != nil {
		return uuid.Nil, failure.BadRequestFromString("invalid " + what + " id")
	}
	return id, nil
}

func parseDate(raw, field string) (models.Date, error) {
	d, err := models.ParseDate(raw)
	if err != nil {
		return models.Date{}, failure.BadRequestFromString(field + ": " + err.Error())
	}
	return d, nil
}

func parseClock(raw, field string) (models.ClockTime, error) {
	c, err := models.ParseClockTime(raw)
	if err != nil {
		return models.ClockTime{}, failure.BadRequestFromString(field + ": " + err.Error())
	}
	return c, nil
}

func optionalReason(reason string) *string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil
	}
	return &reason
}

// mediaOrPlaceholder returns url, or the configured placeholder when it is empty.
func mediaOrPlaceholder(url, placeholder string) string {
	if strings.TrimSpace(url) == "" {
		return placeholder
	}
	return url
}

// StatusChanger applies unconditional status transitions and records each one.
type StatusChanger struct {
	statusRepo models.StatusRepo
	auditRepo  models.AuditRepo
	logger     *slog.Logger
}

func NewStatusChanger(statusRepo models.StatusRepo, auditRepo models.AuditRepo, logger *slog.Logger) *StatusChanger {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatusChanger{statusRepo: statusRepo, auditRepo: auditRepo, logger: logger.With("service", "status")}
}

// Change writes status and reason to the entity. A failed audit write is logged, not returned,
// because the transition itself has already been committed.
func (sc *StatusChanger) Change(ctx context.Context, actor *models.Principal, target models.StatusTarget, id uuid.UUID, status string, reason *string) (*models.StatusChange, error) {
	previous, err := sc.statusRepo.UpdateStatus(ctx, target, id, status, reason)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			sc.logger.Error("status update failed", "entity", target.Entity, "id", id, "error", err)
		}
		return nil, repoError(err, strings.ReplaceAll(target.Entity, "_", " "))
	}

	change := &models.StatusChange{
		Entity:     target.Entity,
		EntityID:   id.String(),
		FromStatus: previous,
		ToStatus:   status,
		Reason:     reason,
	}
	if actor != nil {
		change.ActorUID = actor.UID
		change.ActorRole = actor.RoleName()
	}
	if err := sc.auditRepo.RecordStatusChange(ctx, change); err != nil {
		sc.logger.Error("failed to record status change", "entity", target.Entity, "id", id, "error", err)
	}
	return change, nil
}
