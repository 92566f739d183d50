package models

import (
	"context"

	"github.com/google/uuid"
)

const tableReservationSelect = "*,table:dining_tables(*),guest:guests(" + guestColumns + ")"

type TableRepo interface {
	CreateDiningTable(ctx context.Context, table *DiningTable) (*DiningTable, error)
	GetDiningTable(ctx context.Context, id uuid.UUID) (*DiningTable, error)
	ListDiningTables(ctx context.Context) ([]DiningTable, error)

	CreateTableReservation(ctx context.Context, res *TableReservation) (*TableReservation, error)
	ListTableReservationsOn(ctx context.Context, date Date) ([]TableReservationRecord, error)
	// ListConfirmedSeatings returns CONFIRMED reservations on date, for one table when tableID is set.
	ListConfirmedSeatings(ctx context.Context, date Date, tableID *uuid.UUID) ([]TableReservation, error)
	ListTableReservationsBetween(ctx context.Context, from, to Date) ([]TableReservation, error)
}

func (su *SupabaseRepo) CreateDiningTable(ctx context.Context, table *DiningTable) (*DiningTable, error) {
	row := map[string]any{
		"table_name":     table.Name,
		"table_capacity": table.Capacity,
		"table_status":   table.Status,
	}
	return execFirst[DiningTable](su.insertOne(DiningTablesTable, row), "dining table")
}

func (su *SupabaseRepo) GetDiningTable(ctx context.Context, id uuid.UUID) (*DiningTable, error) {
	q := su.supabaseClient.From(DiningTablesTable).Select("*", "", false).Eq("table_id", id.String())
	return execFirst[DiningTable](q, "dining table")
}

func (su *SupabaseRepo) ListDiningTables(ctx context.Context) ([]DiningTable, error) {
	q := su.supabaseClient.From(DiningTablesTable).Select("*", "", false).Order("table_name", ascending())
	return execRows[DiningTable](q, "dining tables")
}

func (su *SupabaseRepo) CreateTableReservation(ctx context.Context, res *TableReservation) (*TableReservation, error) {
	row := map[string]any{
		"table_id":                 res.TableID,
		"guest_id":                 res.GuestID,
		"table_guest_name":         res.GuestName,
		"table_date":               res.Date,
		"table_time":               res.Time,
		"table_no_guest":           res.NoGuest,
		"table_reservation_status": res.Status,
	}
	return execFirst[TableReservation](su.insertOne(TableReservationsTable, row), "table reservation")
}

func (su *SupabaseRepo) ListTableReservationsOn(ctx context.Context, date Date) ([]TableReservationRecord, error) {
	q := su.supabaseClient.From(TableReservationsTable).
		Select(tableReservationSelect, "", false).
		Eq("table_date", date.String()).
		Order("table_time", ascending()).
		Order("table_reservation_id", ascending())
	return execRows[TableReservationRecord](q, "table reservations")
}

func (su *SupabaseRepo) ListConfirmedSeatings(ctx context.Context, date Date, tableID *uuid.UUID) ([]TableReservation, error) {
	q := su.supabaseClient.From(TableReservationsTable).
		Select("*", "", false).
		Eq("table_date", date.String()).
		Eq("table_reservation_status", string(ReservationConfirmed))
	if tableID != nil {
		q = q.Eq("table_id", tableID.String())
	}
	return execRows[TableReservation](q, "table seatings")
}

func (su *SupabaseRepo) ListTableReservationsBetween(ctx context.Context, from, to Date) ([]TableReservation, error) {
	q := su.supabaseClient.From(TableReservationsTable).
		Select("*", "", false).
		Gte("table_date", from.String()).
		Lte("table_date", to.String())
	return execRows[TableReservation](q, "table reservations")
}
