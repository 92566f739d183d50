package models

import (
	"context"

	"github.com/google/uuid"
)

// roomReservationSelect embeds the booked room and the guest in one round trip.
const roomReservationSelect = "*,room:rooms(*),guest:guests(" + guestColumns + ")"

type RoomRepo interface {
	CreateRoom(ctx context.Context, room *Room) (*Room, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	UpdateRoom(ctx context.Context, id uuid.UUID, fields map[string]any) (*Room, error)

	CreateRoomReservation(ctx context.Context, res *RoomReservation) (*RoomReservation, error)
	GetRoomReservation(ctx context.Context, id uuid.UUID) (*RoomReservationRecord, error)
	ListRoomReservationsByGuest(ctx context.Context, guestID uuid.UUID) ([]RoomReservationRecord, error)
	// ListRoomReservationsOn returns CONFIRMED and COMPLETED stays touching date, departures included.
	ListRoomReservationsOn(ctx context.Context, date Date) ([]RoomReservationRecord, error)
	// ListConfirmedStays returns CONFIRMED reservations overlapping [checkIn, checkOut), for one room when roomID is set.
	ListConfirmedStays(ctx context.Context, roomID *uuid.UUID, checkIn, checkOut Date) ([]RoomReservation, error)
	ListRoomReservationsBetween(ctx context.Context, from, to Date) ([]RoomReservation, error)
}

func (su *SupabaseRepo) CreateRoom(ctx context.Context, room *Room) (*Room, error) {
	row := map[string]any{
		"room_number":      room.Number,
		"room_type":        room.Type,
		"room_description": room.Description,
		"room_max_pax":     room.MaxPax,
		"room_rate":        room.Rate,
		"room_discount":    room.Discount,
		"room_status":      room.Status,
		"room_image":       room.ImageURL,
	}
	return execFirst[Room](su.insertOne(RoomsTable, row), "room")
}

func (su *SupabaseRepo) GetRoom(ctx context.Context, id uuid.UUID) (*Room, error) {
	q := su.supabaseClient.From(RoomsTable).Select("*", "", false).Eq("room_id", id.String())
	return execFirst[Room](q, "room")
}

func (su *SupabaseRepo) ListRooms(ctx context.Context) ([]Room, error) {
	q := su.supabaseClient.From(RoomsTable).Select("*", "", false).Order("room_number", ascending())
	return execRows[Room](q, "rooms")
}

func (su *SupabaseRepo) UpdateRoom(ctx context.Context, id uuid.UUID, fields map[string]any) (*Room, error) {
	return execFirst[Room](su.updateOne(RoomsTable, "room_id", id, fields), "room")
}

func (su *SupabaseRepo) CreateRoomReservation(ctx context.Context, res *RoomReservation) (*RoomReservation, error) {
	row := map[string]any{
		"guest_id":                res.GuestID,
		"room_id":                 res.RoomID,
		"room_check_in_date":      res.CheckIn,
		"room_check_out_date":     res.CheckOut,
		"room_no_guest":           res.NoGuest,
		"room_final_rate":         res.FinalRate,
		"room_total_cost":         res.TotalCost,
		"room_reservation_status": res.Status,
	}
	return execFirst[RoomReservation](su.insertOne(RoomReservationsTable, row), "room reservation")
}

func (su *SupabaseRepo) GetRoomReservation(ctx context.Context, id uuid.UUID) (*RoomReservationRecord, error) {
	q := su.supabaseClient.From(RoomReservationsTable).
		Select(roomReservationSelect, "", false).
		Eq("room_reservation_id", id.String())
	return execFirst[RoomReservationRecord](q, "room reservation")
}

func (su *SupabaseRepo) ListRoomReservationsByGuest(ctx context.Context, guestID uuid.UUID) ([]RoomReservationRecord, error) {
	q := su.supabaseClient.From(RoomReservationsTable).
		Select(roomReservationSelect, "", false).
		Eq("guest_id", guestID.String()).
		Order("room_reservation_created_at", ascending()).
		Order("room_reservation_id", ascending())
	return execRows[RoomReservationRecord](q, "room reservations")
}

func (su *SupabaseRepo) ListRoomReservationsOn(ctx context.Context, date Date) ([]RoomReservationRecord, error) {
	q := su.supabaseClient.From(RoomReservationsTable).
		Select(roomReservationSelect, "", false).
		Lte("room_check_in_date", date.String()).
		Gte("room_check_out_date", date.String()).
		In("room_reservation_status", []string{string(ReservationConfirmed), string(ReservationCompleted)}).
		Order("room_check_in_date", ascending()).
		Order("room_reservation_id", ascending())
	return execRows[RoomReservationRecord](q, "room reservations")
}

func (su *SupabaseRepo) ListConfirmedStays(ctx context.Context, roomID *uuid.UUID, checkIn, checkOut Date) ([]RoomReservation, error) {
	q := su.supabaseClient.From(RoomReservationsTable).
		Select("*", "", false).
		Eq("room_reservation_status", string(ReservationConfirmed)).
		Lt("room_check_in_date", checkOut.String()).
		Gt("room_check_out_date", checkIn.String())
	if roomID != nil {
		q = q.Eq("room_id", roomID.String())
	}
	return execRows[RoomReservation](q, "room stays")
}

func (su *SupabaseRepo) ListRoomReservationsBetween(ctx context.Context, from, to Date) ([]RoomReservation, error) {
	q := su.supabaseClient.From(RoomReservationsTable).
		Select("*", "", false).
		Gte("room_check_in_date", from.String()).
		Lte("room_check_in_date", to.String())
	return execRows[RoomReservation](q, "room reservations")
}
