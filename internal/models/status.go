package models

import (
	"fmt"
	"strings"
)

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCanceled  ReservationStatus = "CANCELED"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationNoShow    ReservationStatus = "NO SHOW"
)

var ReservationStatuses = []ReservationStatus{ReservationConfirmed, ReservationCanceled, ReservationCompleted, ReservationNoShow}

// Billable reports whether a reservation in this status counts toward revenue.
func (s ReservationStatus) Billable() bool {
	return s == ReservationConfirmed || s == ReservationCompleted
}

// RecordStatus applies to venues, food packages, dining tables and virtual tours.
type RecordStatus string

const (
	RecordActive   RecordStatus = "ACTIVE"
	RecordInactive RecordStatus = "INACTIVE"
)

var RecordStatuses = []RecordStatus{RecordActive, RecordInactive}

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomMaintenance RoomStatus = "MAINTENANCE"
	RoomInactive    RoomStatus = "INACTIVE"
)

var RoomStatuses = []RoomStatus{RoomAvailable, RoomOccupied, RoomMaintenance, RoomInactive}

// Bookable reports whether future stays may be reserved. OCCUPIED only describes tonight;
// date overlap decides the rest.
func (s RoomStatus) Bookable() bool {
	return s == RoomAvailable || s == RoomOccupied
}

// ItemStatus applies to food items and drinks.
type ItemStatus string

const (
	ItemAvailable   ItemStatus = "AVAILABLE"
	ItemUnavailable ItemStatus = "UNAVAILABLE"
)

var ItemStatuses = []ItemStatus{ItemAvailable, ItemUnavailable}

type StaffRole string

const (
	RoleAdmin      StaffRole = "ADMIN"
	RoleManager    StaffRole = "MANAGER"
	RoleFrontDesk  StaffRole = "FRONT DESK"
	RoleRestaurant StaffRole = "RESTAURANT"
	RoleBar        StaffRole = "BAR"
)

var StaffRoles = []StaffRole{RoleAdmin, RoleManager, RoleFrontDesk, RoleRestaurant, RoleBar}

type StaffStatus string

const (
	StaffActive   StaffStatus = "ACTIVE"
	StaffInactive StaffStatus = "INACTIVE"
	StaffOnLeave  StaffStatus = "ON LEAVE"
)

var StaffStatuses = []StaffStatus{StaffActive, StaffInactive, StaffOnLeave}

// parseEnum normalises raw ("no_show", " canceled ") and matches it against allowed.
func parseEnum[T ~string](kind, raw string, allowed []T) (T, error) {
	norm := strings.ToUpper(strings.TrimSpace(raw))
	norm = strings.ReplaceAll(norm, "_", " ")
	for _, a := range allowed {
		if string(a) == norm {
			return a, nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q: must be one of %s", kind, raw, strings.Join(names, ", "))
}

func ParseReservationStatus(raw string) (ReservationStatus, error) {
	return parseEnum("reservation status", raw, ReservationStatuses)
}

func ParseRecordStatus(raw string) (RecordStatus, error) {
	return parseEnum("status", raw, RecordStatuses)
}

func ParseRoomStatus(raw string) (RoomStatus, error) {
	return parseEnum("room status", raw, RoomStatuses)
}

func ParseItemStatus(raw string) (ItemStatus, error) {
	return parseEnum("item status", raw, ItemStatuses)
}

func ParseStaffRole(raw string) (StaffRole, error) {
	return parseEnum("staff role", raw, StaffRoles)
}

func ParseStaffStatus(raw string) (StaffStatus, error) {
	return parseEnum("staff status", raw, StaffStatuses)
}
