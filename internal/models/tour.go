package models

import (
	"time"

	"github.com/google/uuid"
)

const VirtualToursTable = "virtual_tours"

type VirtualTour struct {
	ID        uuid.UUID    `json:"tour_id"`
	RoomID    uuid.UUID    `json:"room_id"`
	Title     string       `json:"tour_title"`
	MediaURL  string       `json:"tour_media_url"`
	Status    RecordStatus `json:"tour_status"`
	CreatedAt time.Time    `json:"tour_created_at"`
}

type VirtualTourRecord struct {
	VirtualTour
	Room *Room `json:"room"`
}

type VirtualTourRequest struct {
	RoomID string `json:"room_id" validate:"required,uuid"`
	Title  string `json:"tour_title" validate:"required,max=120"`
	Media  string `json:"tour_media" validate:"required"`
}

type VirtualTourDetails struct {
	VirtualTour
	Room       *RoomView `json:"room"`
	RoomNumber string    `json:"room_number"`
	RoomType   string    `json:"room_type"`
	RoomImage  string    `json:"room_image"`
}
