package models

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// StatusTarget names where an entity keeps its status and optional reason.
type StatusTarget struct {
	Entity       string
	Table        string
	IDColumn     string
	StatusColumn string
	ReasonColumn string
}

var (
	RoomStatusTarget             = StatusTarget{Entity: "room", Table: RoomsTable, IDColumn: "room_id", StatusColumn: "room_status"}
	RoomReservationStatusTarget  = StatusTarget{Entity: "room_reservation", Table: RoomReservationsTable, IDColumn: "room_reservation_id", StatusColumn: "room_reservation_status", ReasonColumn: "room_reservation_reason"}
	EventReservationStatusTarget = StatusTarget{Entity: "event_reservation", Table: EventReservationsTable, IDColumn: "event_reservation_id", StatusColumn: "event_reservation_status", ReasonColumn: "event_reservation_reason"}
	TableReservationStatusTarget = StatusTarget{Entity: "table_reservation", Table: TableReservationsTable, IDColumn: "table_reservation_id", StatusColumn: "table_reservation_status", ReasonColumn: "table_reservation_reason"}
	VenueStatusTarget            = StatusTarget{Entity: "venue", Table: EventVenuesTable, IDColumn: "venue_id", StatusColumn: "venue_status"}
	PackageStatusTarget          = StatusTarget{Entity: "package", Table: EventFoodPackagesTable, IDColumn: "package_id", StatusColumn: "package_status"}
	FoodItemStatusTarget         = StatusTarget{Entity: "food_item", Table: FoodItemsTable, IDColumn: "food_id", StatusColumn: "food_status"}
	DrinkStatusTarget            = StatusTarget{Entity: "drink", Table: DrinksTable, IDColumn: "drink_id", StatusColumn: "drink_status"}
	TourStatusTarget             = StatusTarget{Entity: "tour", Table: VirtualToursTable, IDColumn: "tour_id", StatusColumn: "tour_status"}
	StaffStatusTarget            = StatusTarget{Entity: "staff", Table: StaffTable, IDColumn: "staff_id", StatusColumn: "staff_status"}
	TableStatusTarget            = StatusTarget{Entity: "table", Table: DiningTablesTable, IDColumn: "table_id", StatusColumn: "table_status"}
)

type StatusRepo interface {
	// UpdateStatus overwrites the status unconditionally and returns the value it replaced.
	UpdateStatus(ctx context.Context, target StatusTarget, id uuid.UUID, status string, reason *string) (string, error)
}

func (su *SupabaseRepo) UpdateStatus(ctx context.Context, target StatusTarget, id uuid.UUID, status string, reason *string) (string, error) {
	current, err := execFirst[map[string]json.RawMessage](
		su.supabaseClient.From(target.Table).Select(target.StatusColumn, "", false).Eq(target.IDColumn, id.String()),
		target.Entity,
	)
	if err != nil {
		return "", err
	}
	var previous string
	if raw, ok := (*current)[target.StatusColumn]; ok {
		_ = json.Unmarshal(raw, &previous)
	}

	fields := map[string]any{target.StatusColumn: status}
	if target.ReasonColumn != "" {
		fields[target.ReasonColumn] = reason
	}
	_, _, err = su.supabaseClient.From(target.Table).
		Update(fields, "minimal", "").
		Eq(target.IDColumn, id.String()).
		Execute()
	if err != nil {
		return "", fmt.Errorf("failed to update %s status: %w", target.Entity, classify(err))
	}
	return previous, nil
}
