package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DiningTablesTable      = "dining_tables"
	TableReservationsTable = "table_reservations"
)

type DiningTable struct {
	ID        uuid.UUID    `json:"table_id"`
	Name      string       `json:"table_name"`
	Capacity  int          `json:"table_capacity"`
	Status    RecordStatus `json:"table_status"`
	CreatedAt time.Time    `json:"table_created_at"`
}

type DiningTableRequest struct {
	Name     string `json:"table_name" validate:"required,max=40"`
	Capacity int    `json:"table_capacity" validate:"required,min=1"`
}

type TableReservation struct {
	ID        uuid.UUID         `json:"table_reservation_id"`
	TableID   uuid.UUID         `json:"table_id"`
	GuestID   *uuid.UUID        `json:"guest_id"`
	GuestName string            `json:"table_guest_name"`
	Date      Date              `json:"table_date"`
	Time      ClockTime         `json:"table_time"`
	NoGuest   int               `json:"table_no_guest"`
	Status    ReservationStatus `json:"table_reservation_status"`
	Reason    *string           `json:"table_reservation_reason"`
	CreatedAt time.Time         `json:"table_reservation_created_at"`
}

type TableReservationRecord struct {
	TableReservation
	Table *DiningTable `json:"table"`
	Guest *Guest       `json:"guest"`
}

type TableReservationRequest struct {
	TableID   string `json:"table_id" validate:"required,uuid"`
	GuestID   string `json:"guest_id" validate:"omitempty,uuid"`
	GuestName string `json:"table_guest_name" validate:"required,max=120"`
	Date      string `json:"table_date" validate:"required"`
	Time      string `json:"table_time" validate:"required"`
	NoGuest   int    `json:"table_no_guest" validate:"required,min=1"`
}

type TableReservationDetails struct {
	TableReservation
	Table     *DiningTable `json:"table"`
	TableName string       `json:"table_name"`
	Guest     *Guest       `json:"guest"`
}

type TableAvailability struct {
	DiningTable
	Available bool `json:"available"`
}
