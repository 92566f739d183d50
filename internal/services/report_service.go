package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/joshua-takyi/resort/internal/failure"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/models"
)

const AuditLimit = 100

var auditedEntities = []models.StatusTarget{
	models.RoomStatusTarget,
	models.RoomReservationStatusTarget,
	models.EventReservationStatusTarget,
	models.TableReservationStatusTarget,
	models.VenueStatusTarget,
	models.PackageStatusTarget,
	models.FoodItemStatusTarget,
	models.DrinkStatusTarget,
	models.TourStatusTarget,
	models.StaffStatusTarget,
	models.TableStatusTarget,
}

type ReportService struct {
	rooms  models.RoomRepo
	events models.EventRepo
	tables models.TableRepo
	audit  models.AuditRepo
	logger *slog.Logger
}

func NewReportService(rooms models.RoomRepo, events models.EventRepo, tables models.TableRepo, audit models.AuditRepo, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{rooms: rooms, events: events, tables: tables, audit: audit, logger: logger.With("service", "report")}
}

// KindSummary counts one kind of reservation by status. Revenue sums billable totals.
type KindSummary struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	Revenue  float64        `json:"revenue"`
}

func newKindSummary() KindSummary {
	by := make(map[string]int, len(models.ReservationStatuses))
	for _, s := range models.ReservationStatuses {
		by[string(s)] = 0
	}
	return KindSummary{ByStatus: by}
}

func (k *KindSummary) add(status models.ReservationStatus, amount float64) {
	k.Total++
	k.ByStatus[string(status)]++
	if status.Billable() {
		k.Revenue = models.RoundCents(k.Revenue + amount)
	}
}

type Summary struct {
	From    models.Date `json:"from"`
	To      models.Date `json:"to"`
	Rooms   KindSummary `json:"rooms"`
	Events  KindSummary `json:"events"`
	Tables  KindSummary `json:"tables"`
	Revenue float64     `json:"revenue"`
}

// Summary reports reservations whose date (check-in for rooms) falls in [from, to].
func (rs *ReportService) Summary(ctx context.Context, fromRaw, toRaw string) (*Summary, error) {
	from, err := parseDate(fromRaw, "from")
	if err != nil {
		return nil, err
	}
	to, err := parseDate(toRaw, "to")
	if err != nil {
		return nil, err
	}
	if to.Before(from.Time) {
		return nil, failure.BadRequestFromString("to must not be before from")
	}

	sum := &Summary{From: from, To: to, Rooms: newKindSummary(), Events: newKindSummary(), Tables: newKindSummary()}

	rooms, err := rs.rooms.ListRoomReservationsBetween(ctx, from, to)
	if err != nil {
		rs.logger.Error("failed to load room reservations", "error", err)
		return nil, err
	}
	for _, r := range rooms {
		sum.Rooms.add(r.Status, r.TotalCost)
	}

	events, err := rs.events.ListEventReservationsBetween(ctx, from, to)
	if err != nil {
		rs.logger.Error("failed to load event reservations", "error", err)
		return nil, err
	}
	for _, e := range events {
		sum.Events.add(e.Status, e.TotalPrice)
	}

	tables, err := rs.tables.ListTableReservationsBetween(ctx, from, to)
	if err != nil {
		rs.logger.Error("failed to load table reservations", "error", err)
		return nil, err
	}
	// table bookings carry no charge
	for _, t := range tables {
		sum.Tables.add(t.Status, 0)
	}

	sum.Revenue = models.RoundCents(sum.Rooms.Revenue + sum.Events.Revenue)
	return sum, nil
}

// Audit lists recorded status changes, newest first. Both filters are optional.
func (rs *ReportService) Audit(ctx context.Context, entity, idRaw string) ([]models.StatusChange, error) {
	entity = strings.ToLower(helpers.StringTrim(entity))
	if entity != "" && !knownEntity(entity) {
		return nil, failure.BadRequestFromString("unknown entity " + entity)
	}
	var id string
	if helpers.StringTrim(idRaw) != "" {
		parsed, err := ParseID(idRaw, "entity")
		if err != nil {
			return nil, err
		}
		id = parsed.String()
	}
	changes, err := rs.audit.ListStatusChanges(ctx, entity, id, AuditLimit)
	if err != nil {
		rs.logger.Error("failed to list status changes", "entity", entity, "error", err)
		return nil, err
	}
	return changes, nil
}

func knownEntity(entity string) bool {
	for _, t := range auditedEntities {
		if t.Entity == entity {
			return true
		}
	}
	return false
}
