package models

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// The bridge table also references venues and packages, so the direct
// relations are named by foreign key to keep embedding unambiguous.
const eventReservationSelect = "*," +
	"venue:event_venues!event_reservations_venue_id_fkey(*)," +
	"package:event_food_packages!event_reservations_package_id_fkey(*)," +
	"guest:guests(" + guestColumns + ")," +
	"items:event_reservation_list(*,food:food_items(*))"

type EventRepo interface {
	CreateVenue(ctx context.Context, venue *EventVenue) (*EventVenue, error)
	GetVenue(ctx context.Context, id uuid.UUID) (*EventVenue, error)
	ListVenues(ctx context.Context) ([]EventVenue, error)
	UpdateVenue(ctx context.Context, id uuid.UUID, fields map[string]any) (*EventVenue, error)

	CreatePackage(ctx context.Context, pkg *EventFoodPackage) (*EventFoodPackage, error)
	GetPackage(ctx context.Context, id uuid.UUID) (*EventFoodPackage, error)
	ListPackages(ctx context.Context) ([]EventFoodPackage, error)
	UpdatePackage(ctx context.Context, id uuid.UUID, fields map[string]any) (*EventFoodPackage, error)

	// CreateEventReservation stores the reservation and one bridge row per food id atomically.
	CreateEventReservation(ctx context.Context, res *EventReservation, foodIDs []uuid.UUID) (uuid.UUID, error)
	GetEventReservation(ctx context.Context, id uuid.UUID) (*EventReservationRecord, error)
	ListEventReservationsByGuest(ctx context.Context, guestID uuid.UUID) ([]EventReservationRecord, error)
	ListEventReservationsOn(ctx context.Context, date Date) ([]EventReservationRecord, error)
	ListEventReservationsBetween(ctx context.Context, from, to Date) ([]EventReservation, error)
}

func (su *SupabaseRepo) CreateVenue(ctx context.Context, venue *EventVenue) (*EventVenue, error) {
	row := map[string]any{
		"venue_name":        venue.Name,
		"venue_description": venue.Description,
		"venue_max_pax":     venue.MaxPax,
		"venue_price":       venue.Price,
		"venue_status":      venue.Status,
		"venue_image":       venue.ImageURL,
	}
	return execFirst[EventVenue](su.insertOne(EventVenuesTable, row), "venue")
}

func (su *SupabaseRepo) GetVenue(ctx context.Context, id uuid.UUID) (*EventVenue, error) {
	q := su.supabaseClient.From(EventVenuesTable).Select("*", "", false).Eq("venue_id", id.String())
	return execFirst[EventVenue](q, "venue")
}

func (su *SupabaseRepo) ListVenues(ctx context.Context) ([]EventVenue, error) {
	q := su.supabaseClient.From(EventVenuesTable).Select("*", "", false).Order("venue_name", ascending())
	return execRows[EventVenue](q, "venues")
}

func (su *SupabaseRepo) UpdateVenue(ctx context.Context, id uuid.UUID, fields map[string]any) (*EventVenue, error) {
	return execFirst[EventVenue](su.updateOne(EventVenuesTable, "venue_id", id, fields), "venue")
}

func (su *SupabaseRepo) CreatePackage(ctx context.Context, pkg *EventFoodPackage) (*EventFoodPackage, error) {
	row := map[string]any{
		"package_name":        pkg.Name,
		"package_description": pkg.Description,
		"package_price":       pkg.Price,
		"package_max_items":   pkg.MaxItems,
		"package_status":      pkg.Status,
	}
	return execFirst[EventFoodPackage](su.insertOne(EventFoodPackagesTable, row), "food package")
}

func (su *SupabaseRepo) GetPackage(ctx context.Context, id uuid.UUID) (*EventFoodPackage, error) {
	q := su.supabaseClient.From(EventFoodPackagesTable).Select("*", "", false).Eq("package_id", id.String())
	return execFirst[EventFoodPackage](q, "food package")
}

func (su *SupabaseRepo) ListPackages(ctx context.Context) ([]EventFoodPackage, error) {
	q := su.supabaseClient.From(EventFoodPackagesTable).Select("*", "", false).Order("package_name", ascending())
	return execRows[EventFoodPackage](q, "food packages")
}

func (su *SupabaseRepo) UpdatePackage(ctx context.Context, id uuid.UUID, fields map[string]any) (*EventFoodPackage, error) {
	return execFirst[EventFoodPackage](su.updateOne(EventFoodPackagesTable, "package_id", id, fields), "food package")
}

func (su *SupabaseRepo) CreateEventReservation(ctx context.Context, res *EventReservation, foodIDs []uuid.UUID) (uuid.UUID, error) {
	body := map[string]any{
		"p_guest_id":          res.GuestID,
		"p_venue_id":          res.VenueID,
		"p_package_id":        res.PackageID,
		"p_event_type":        res.Type,
		"p_event_date":        res.Date,
		"p_event_start_time":  res.StartTime,
		"p_event_end_time":    res.EndTime,
		"p_event_no_guest":    res.NoGuest,
		"p_event_total_price": res.TotalPrice,
		"p_status":            res.Status,
		"p_food_ids":          uuidStrings(foodIDs),
	}
	raw, err := su.callRPC(CreateEventReservationFunc, body)
	if err != nil {
		return uuid.Nil, err
	}
	var id uuid.UUID
	if err := json.Unmarshal(raw, &id); err != nil {
		return uuid.Nil, fmt.Errorf("failed to decode event reservation id: %w", err)
	}
	return id, nil
}

func (su *SupabaseRepo) GetEventReservation(ctx context.Context, id uuid.UUID) (*EventReservationRecord, error) {
	q := su.supabaseClient.From(EventReservationsTable).
		Select(eventReservationSelect, "", false).
		Eq("event_reservation_id", id.String())
	return execFirst[EventReservationRecord](q, "event reservation")
}

func (su *SupabaseRepo) ListEventReservationsByGuest(ctx context.Context, guestID uuid.UUID) ([]EventReservationRecord, error) {
	q := su.supabaseClient.From(EventReservationsTable).
		Select(eventReservationSelect, "", false).
		Eq("guest_id", guestID.String()).
		Order("event_reservation_created_at", ascending()).
		Order("event_reservation_id", ascending())
	return execRows[EventReservationRecord](q, "event reservations")
}

func (su *SupabaseRepo) ListEventReservationsOn(ctx context.Context, date Date) ([]EventReservationRecord, error) {
	q := su.supabaseClient.From(EventReservationsTable).
		Select(eventReservationSelect, "", false).
		Eq("event_date", date.String()).
		Order("event_start_time", ascending()).
		Order("event_reservation_id", ascending())
	return execRows[EventReservationRecord](q, "event reservations")
}

func (su *SupabaseRepo) ListEventReservationsBetween(ctx context.Context, from, to Date) ([]EventReservation, error) {
	q := su.supabaseClient.From(EventReservationsTable).
		Select("*", "", false).
		Gte("event_date", from.String()).
		Lte("event_date", to.String())
	return execRows[EventReservation](q, "event reservations")
}

// callRPC invokes a database function; the client reports failures in the body.
func (su *SupabaseRepo) callRPC(name string, body any) (json.RawMessage, error) {
	raw := su.supabaseClient.Rpc(name, "", body)
	if raw == "" {
		return nil, fmt.Errorf("rpc %s returned an empty response", name)
	}
	var rpcErr struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal([]byte(raw), &rpcErr) == nil && rpcErr.Code != "" && rpcErr.Message != "" {
		su.logger.Error("rpc failed", "function", name, "code", rpcErr.Code, "message", rpcErr.Message)
		return nil, classify(fmt.Errorf("rpc %s: (%s) %s", name, rpcErr.Code, rpcErr.Message))
	}
	return json.RawMessage(raw), nil
}
