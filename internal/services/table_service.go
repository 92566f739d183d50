package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/joshua-takyi/resort/internal/failure"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/models"
)

// SeatingWindow is how close, in minutes, two seatings at one table may start.
const SeatingWindow = 120

type TableService struct {
	tables models.TableRepo
	guests models.GuestRepo
	status *StatusChanger
	logger *slog.Logger
}

func NewTableService(tables models.TableRepo, guests models.GuestRepo, status *StatusChanger, logger *slog.Logger) *TableService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableService{tables: tables, guests: guests, status: status, logger: logger.With("service", "table")}
}

func sortTables(tables []models.DiningTable) {
	sort.SliceStable(tables, func(i, j int) bool {
		return strings.ToLower(tables[i].Name) < strings.ToLower(tables[j].Name)
	})
}

// seatingsClash is true when two seatings at the same table start within the seating window.
// Start times are compared across midnight, so 23:30 clashes with 00:30 the next day.
func seatingsClash(aDate models.Date, a models.ClockTime, bDate models.Date, b models.ClockTime) bool {
	d := seatingMinute(aDate, a) - seatingMinute(bDate, b)
	if d < 0 {
		d = -d
	}
	return d < SeatingWindow
}

func seatingMinute(d models.Date, at models.ClockTime) int64 {
	return d.Unix()/60 + int64(at.Minutes())
}

// nearbySeatings lists CONFIRMED seatings on date and the days either side of it.
func (ts *TableService) nearbySeatings(ctx context.Context, date models.Date, tableID *uuid.UUID) ([]models.TableReservation, error) {
	out := []models.TableReservation{}
	for _, d := range []models.Date{date.AddDays(-1), date, date.AddDays(1)} {
		seatings, err := ts.tables.ListConfirmedSeatings(ctx, d, tableID)
		if err != nil {
			return nil, err
		}
		out = append(out, seatings...)
	}
	return out, nil
}

func (ts *TableService) ListTables(ctx context.Context) ([]models.DiningTable, error) {
	tables, err := ts.tables.ListDiningTables(ctx)
	if err != nil {
		ts.logger.Error("failed to list tables", "error", err)
		return nil, err
	}
	sortTables(tables)
	return tables, nil
}

func (ts *TableService) CreateTable(ctx context.Context, req models.DiningTableRequest) (*models.DiningTable, error) {
	req.Name = helpers.StringTrim(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}
	table, err := ts.tables.CreateDiningTable(ctx, &models.DiningTable{
		Name:     req.Name,
		Capacity: req.Capacity,
		Status:   models.RecordActive,
	})
	if err != nil {
		return nil, repoError(err, "table")
	}
	return table, nil
}

func (ts *TableService) Availability(ctx context.Context, dateRaw, timeRaw string, guests int) ([]models.TableAvailability, error) {
	date, err := parseDate(dateRaw, "date")
	if err != nil {
		return nil, err
	}
	at, err := parseClock(timeRaw, "time")
	if err != nil {
		return nil, err
	}
	if guests < 1 {
		return nil, failure.BadRequestFromString("guests must be at least 1")
	}

	tables, err := ts.tables.ListDiningTables(ctx)
	if err != nil {
		ts.logger.Error("failed to list tables", "error", err)
		return nil, err
	}
	seatings, err := ts.nearbySeatings(ctx, date, nil)
	if err != nil {
		ts.logger.Error("failed to list seatings", "date", date.String(), "error", err)
		return nil, err
	}
	taken := map[uuid.UUID]bool{}
	for _, s := range seatings {
		if seatingsClash(s.Date, s.Time, date, at) {
			taken[s.TableID] = true
		}
	}

	sortTables(tables)
	out := []models.TableAvailability{}
	for _, t := range tables {
		if t.Status != models.RecordActive || t.Capacity < guests {
			continue
		}
		out = append(out, models.TableAvailability{DiningTable: t, Available: !taken[t.ID]})
	}
	return out, nil
}

func (ts *TableService) CreateReservation(ctx context.Context, actor *models.Principal, req models.TableReservationRequest) (*models.TableReservation, error) {
	req.GuestName = helpers.StringTrim(req.GuestName)
	if err := validate(req); err != nil {
		return nil, err
	}
	date, err := parseDate(req.Date, "table_date")
	if err != nil {
		return nil, err
	}
	at, err := parseClock(req.Time, "table_time")
	if err != nil {
		return nil, err
	}
	tableID, err := ParseID(req.TableID, "table")
	if err != nil {
		return nil, err
	}

	// walk-ins booked by staff may carry no guest account
	var guestID *uuid.UUID
	if actor.IsGuest() || req.GuestID != "" {
		id, err := guestFor(ctx, ts.guests, actor, req.GuestID)
		if err != nil {
			return nil, err
		}
		guestID = &id
	}

	table, err := ts.tables.GetDiningTable(ctx, tableID)
	if err != nil {
		return nil, repoError(err, "table")
	}
	if table.Status != models.RecordActive {
		return nil, failure.BadRequestFromString(fmt.Sprintf("table %s is not active", table.Name))
	}
	if req.NoGuest > table.Capacity {
		return nil, failure.BadRequestFromString(fmt.Sprintf("table %s seats at most %d guests", table.Name, table.Capacity))
	}

	seatings, err := ts.nearbySeatings(ctx, date, &tableID)
	if err != nil {
		ts.logger.Error("failed to list seatings", "table_id", tableID, "error", err)
		return nil, err
	}
	for _, s := range seatings {
		if seatingsClash(s.Date, s.Time, date, at) {
			return nil, failure.BadRequestFromString(fmt.Sprintf("table %s is already reserved at %s on %s", table.Name, s.Time.String(), s.Date.String()))
		}
	}

	res, err := ts.tables.CreateTableReservation(ctx, &models.TableReservation{
		TableID:   tableID,
		GuestID:   guestID,
		GuestName: req.GuestName,
		Date:      date,
		Time:      at,
		NoGuest:   req.NoGuest,
		Status:    models.ReservationConfirmed,
	})
	if err != nil {
		ts.logger.Error("failed to create table reservation", "table_id", tableID, "error", err)
		return nil, repoError(err, "table reservation")
	}
	return res, nil
}

func (ts *TableService) ListForDate(ctx context.Context, dateRaw string) ([]models.TableReservationDetails, error) {
	date, err := parseDate(dateRaw, "date")
	if err != nil {
		return nil, err
	}
	recs, err := ts.tables.ListTableReservationsOn(ctx, date)
	if err != nil {
		ts.logger.Error("failed to list table reservations", "date", date.String(), "error", err)
		return nil, err
	}
	out := make([]models.TableReservationDetails, 0, len(recs))
	for _, rec := range recs {
		d := models.TableReservationDetails{
			TableReservation: rec.TableReservation,
			Table:            rec.Table,
			TableName:        models.UnknownLabel,
			Guest:            rec.Guest,
		}
		if rec.Table != nil {
			d.TableName = rec.Table.Name
		}
		out = append(out, d)
	}
	return out, nil
}

func (ts *TableService) ChangeReservationStatus(ctx context.Context, actor *models.Principal, id uuid.UUID, raw, reason string) (*models.StatusChange, error) {
	status, err := models.ParseReservationStatus(raw)
	if err != nil {
		return nil, failure.BadRequest(err)
	}
	return ts.status.Change(ctx, actor, models.TableReservationStatusTarget, id, string(status), optionalReason(reason))
}

func (ts *TableService) ChangeTableStatus(ctx context.Context, actor *models.Principal, id uuid.UUID, raw string) (*models.StatusChange, error) {
	status, err := models.ParseRecordStatus(raw)
	if err != nil {
		return nil, failure.BadRequest(err)
	}
	return ts.status.Change(ctx, actor, models.TableStatusTarget, id, string(status), nil)
}
