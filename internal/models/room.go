package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoomsTable            = "rooms"
	RoomReservationsTable = "room_reservations"
)

type Room struct {
	ID          uuid.UUID  `json:"room_id"`
	Number      string     `json:"room_number"`
	Type        string     `json:"room_type"`
	Description string     `json:"room_description"`
	MaxPax      int        `json:"room_max_pax"`
	Rate        float64    `json:"room_rate"`
	Discount    float64    `json:"room_discount"`
	Status      RoomStatus `json:"room_status"`
	ImageURL    string     `json:"room_image"`
	CreatedAt   time.Time  `json:"room_created_at"`
}

// FinalRate is the nightly rate after the room's percentage discount.
func (r *Room) FinalRate() float64 {
	return ApplyDiscount(r.Rate, r.Discount)
}

// RoomView is a room as shown to clients, with its discounted rate.
type RoomView struct {
	Room
	FinalRate float64 `json:"room_final_rate"`
}

func NewRoomView(r Room) RoomView {
	return RoomView{Room: r, FinalRate: r.FinalRate()}
}

type RoomRequest struct {
	Number      string  `json:"room_number" validate:"required,max=20"`
	Type        string  `json:"room_type" validate:"required,max=60"`
	Description string  `json:"room_description" validate:"max=2000"`
	MaxPax      int     `json:"room_max_pax" validate:"required,min=1"`
	Rate        float64 `json:"room_rate" validate:"required,gt=0"`
	Discount    float64 `json:"room_discount" validate:"min=0,max=100"`
	Image       string  `json:"room_image"`
}

type RoomReservation struct {
	ID        uuid.UUID         `json:"room_reservation_id"`
	GuestID   uuid.UUID         `json:"guest_id"`
	RoomID    uuid.UUID         `json:"room_id"`
	CheckIn   Date              `json:"room_check_in_date"`
	CheckOut  Date              `json:"room_check_out_date"`
	NoGuest   int               `json:"room_no_guest"`
	FinalRate float64           `json:"room_final_rate"`
	TotalCost float64           `json:"room_total_cost"`
	Status    ReservationStatus `json:"room_reservation_status"`
	Reason    *string           `json:"room_reservation_reason"`
	CreatedAt time.Time         `json:"room_reservation_created_at"`
}

func (r *RoomReservation) Nights() int {
	return NightsBetween(r.CheckIn, r.CheckOut)
}

// RoomReservationRecord is a reservation row with its room and guest embedded by the store.
type RoomReservationRecord struct {
	RoomReservation
	Room  *Room  `json:"room"`
	Guest *Guest `json:"guest"`
}

type RoomReservationRequest struct {
	GuestID  string `json:"guest_id" validate:"omitempty,uuid"`
	RoomID   string `json:"room_id" validate:"required,uuid"`
	CheckIn  string `json:"room_check_in_date" validate:"required"`
	CheckOut string `json:"room_check_out_date" validate:"required"`
	NoGuest  int    `json:"room_no_guest" validate:"required,min=1"`
}

// RoomReservationDetails is the assembled response for one room reservation.
type RoomReservationDetails struct {
	RoomReservation
	Nights    int       `json:"nights"`
	Room      *RoomView `json:"room"`
	RoomType  string    `json:"room_type"`
	RoomImage string    `json:"room_image"`
	Guest     *Guest    `json:"guest"`
	GuestName string    `json:"guest_name"`
	Movement  string    `json:"movement,omitempty"`
}

const (
	MovementArrival   = "arrival"
	MovementDeparture = "departure"
	MovementInHouse   = "in_house"
)
