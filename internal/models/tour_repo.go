package models

import (
	"context"

	"github.com/google/uuid"
)

const virtualTourSelect = "*,room:rooms(*)"

type TourRepo interface {
	CreateTour(ctx context.Context, tour *VirtualTour) (*VirtualTour, error)
	GetTour(ctx context.Context, id uuid.UUID) (*VirtualTourRecord, error)
	// ListTours filters by status and room when they are set.
	ListTours(ctx context.Context, status RecordStatus, roomID *uuid.UUID) ([]VirtualTourRecord, error)
}

func (su *SupabaseRepo) CreateTour(ctx context.Context, tour *VirtualTour) (*VirtualTour, error) {
	row := map[string]any{
		"room_id":        tour.RoomID,
		"tour_title":     tour.Title,
		"tour_media_url": tour.MediaURL,
		"tour_status":    tour.Status,
	}
	return execFirst[VirtualTour](su.insertOne(VirtualToursTable, row), "virtual tour")
}

func (su *SupabaseRepo) GetTour(ctx context.Context, id uuid.UUID) (*VirtualTourRecord, error) {
	q := su.supabaseClient.From(VirtualToursTable).Select(virtualTourSelect, "", false).Eq("tour_id", id.String())
	return execFirst[VirtualTourRecord](q, "virtual tour")
}

func (su *SupabaseRepo) ListTours(ctx context.Context, status RecordStatus, roomID *uuid.UUID) ([]VirtualTourRecord, error) {
	q := su.supabaseClient.From(VirtualToursTable).Select(virtualTourSelect, "", false)
	if status != "" {
		q = q.Eq("tour_status", string(status))
	}
	if roomID != nil {
		q = q.Eq("room_id", roomID.String())
	}
	q = q.Order("tour_created_at", ascending()).Order("tour_id", ascending())
	return execRows[VirtualTourRecord](q, "virtual tours")
}
