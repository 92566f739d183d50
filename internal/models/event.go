package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventVenuesTable           = "event_venues"
	EventFoodPackagesTable     = "event_food_packages"
	EventReservationsTable     = "event_reservations"
	EventReservationListTable  = "event_reservation_list"
	CreateEventReservationFunc = "create_event_reservation"
)

type EventVenue struct {
	ID          uuid.UUID    `json:"venue_id"`
	Name        string       `json:"venue_name"`
	Description string       `json:"venue_description"`
	MaxPax      int          `json:"venue_max_pax"`
	Price       float64      `json:"venue_price"`
	Status      RecordStatus `json:"venue_status"`
	ImageURL    string       `json:"venue_image"`
	CreatedAt   time.Time    `json:"venue_created_at"`
}

type VenueRequest struct {
	Name        string  `json:"venue_name" validate:"required,max=120"`
	Description string  `json:"venue_description" validate:"max=2000"`
	MaxPax      int     `json:"venue_max_pax" validate:"required,min=1"`
	Price       float64 `json:"venue_price" validate:"min=0"`
	Image       string  `json:"venue_image"`
}

type EventFoodPackage struct {
	ID          uuid.UUID    `json:"package_id"`
	Name        string       `json:"package_name"`
	Description string       `json:"package_description"`
	Price       float64      `json:"package_price"`
	MaxItems    int          `json:"package_max_items"`
	Status      RecordStatus `json:"package_status"`
	CreatedAt   time.Time    `json:"package_created_at"`
}

type PackageRequest struct {
	Name        string  `json:"package_name" validate:"required,max=120"`
	Description string  `json:"package_description" validate:"max=2000"`
	Price       float64 `json:"package_price" validate:"min=0"`
	MaxItems    int     `json:"package_max_items" validate:"min=0"`
}

type EventReservation struct {
	ID         uuid.UUID         `json:"event_reservation_id"`
	GuestID    uuid.UUID         `json:"guest_id"`
	VenueID    uuid.UUID         `json:"venue_id"`
	PackageID  uuid.UUID         `json:"package_id"`
	Type       string            `json:"event_type"`
	Date       Date              `json:"event_date"`
	StartTime  ClockTime         `json:"event_start_time"`
	EndTime    ClockTime         `json:"event_end_time"`
	NoGuest    int               `json:"event_no_guest"`
	TotalPrice float64           `json:"event_total_price"`
	Status     ReservationStatus `json:"event_reservation_status"`
	Reason     *string           `json:"event_reservation_reason"`
	CreatedAt  time.Time         `json:"event_reservation_created_at"`
}

// EventReservationListRow is one bridge row: a food item chosen for a reservation.
type EventReservationListRow struct {
	ID                 uuid.UUID `json:"list_id"`
	EventReservationID uuid.UUID `json:"event_reservation_id"`
	VenueID            uuid.UUID `json:"venue_id"`
	PackageID          uuid.UUID `json:"package_id"`
	FoodID             uuid.UUID `json:"food_id"`
	Food               *FoodItem `json:"food,omitempty"`
}

type EventReservationRecord struct {
	EventReservation
	Venue   *EventVenue               `json:"venue"`
	Package *EventFoodPackage         `json:"package"`
	Guest   *Guest                    `json:"guest"`
	Items   []EventReservationListRow `json:"items"`
}

type EventReservationRequest struct {
	GuestID   string   `json:"guest_id" validate:"omitempty,uuid"`
	VenueID   string   `json:"venue_id" validate:"required,uuid"`
	PackageID string   `json:"package_id" validate:"required,uuid"`
	Type      string   `json:"event_type" validate:"required,max=80"`
	Date      string   `json:"event_date" validate:"required"`
	StartTime string   `json:"event_start_time" validate:"required"`
	EndTime   string   `json:"event_end_time" validate:"required"`
	NoGuest   int      `json:"event_no_guest" validate:"required,min=1"`
	FoodIDs   []string `json:"food_ids" validate:"dive,uuid"`
}

type EventReservationDetails struct {
	EventReservation
	Venue       *EventVenue       `json:"venue"`
	VenueName   string            `json:"venue_name"`
	VenueImage  string            `json:"venue_image"`
	Package     *EventFoodPackage `json:"package"`
	PackageName string            `json:"package_name"`
	FoodItems   []FoodItemView    `json:"food_items"`
	Guest       *Guest            `json:"guest"`
	GuestName   string            `json:"guest_name"`
}
