package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/joshua-takyi/resort/internal/failure"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/models"
)

type TourService struct {
	tours       models.TourRepo
	rooms       models.RoomRepo
	views       models.TourViewsRepo
	media       helpers.MediaUploader
	status      *StatusChanger
	placeholder string
	logger      *slog.Logger
}

func NewTourService(tours models.TourRepo, rooms models.RoomRepo, views models.TourViewsRepo, media helpers.MediaUploader, status *StatusChanger, placeholder string, logger *slog.Logger) *TourService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TourService{
		tours:       tours,
		rooms:       rooms,
		views:       views,
		media:       media,
		status:      status,
		placeholder: placeholder,
		logger:      logger.With("service", "tour"),
	}
}

// ViewRequest describes who looked at a tour.
type ViewRequest struct {
	SessionID string
	IPAddress string
	UserAgent string
}

// ViewResult reports whether the view counted and which session it was charged to.
type ViewResult struct {
	Recorded  bool   `json:"recorded"`
	SessionID string `json:"session_id"`
}

func (ts *TourService) details(rec models.VirtualTourRecord) models.VirtualTourDetails {
	d := models.VirtualTourDetails{
		VirtualTour: rec.VirtualTour,
		RoomNumber:  models.UnknownLabel,
		RoomType:    models.UnknownLabel,
		RoomImage:   ts.placeholder,
	}
	if rec.Room != nil {
		v := models.NewRoomView(*rec.Room)
		v.ImageURL = mediaOrPlaceholder(v.ImageURL, ts.placeholder)
		d.Room = &v
		d.RoomNumber = v.Number
		d.RoomType = v.Type
		d.RoomImage = v.ImageURL
	}
	return d
}

func (ts *TourService) list(ctx context.Context, roomID *uuid.UUID) ([]models.VirtualTourDetails, error) {
	recs, err := ts.tours.ListTours(ctx, models.RecordActive, roomID)
	if err != nil {
		ts.logger.Error("failed to list tours", "error", err)
		return nil, err
	}
	out := make([]models.VirtualTourDetails, 0, len(recs))
	for _, rec := range recs {
		out = append(out, ts.details(rec))
	}
	return out, nil
}

// ListTours returns active tours with their rooms.
func (ts *TourService) ListTours(ctx context.Context) ([]models.VirtualTourDetails, error) {
	return ts.list(ctx, nil)
}

func (ts *TourService) ListRoomTours(ctx context.Context, roomID uuid.UUID) ([]models.VirtualTourDetails, error) {
	if _, err := ts.rooms.GetRoom(ctx, roomID); err != nil {
		return nil, repoError(err, "room")
	}
	return ts.list(ctx, &roomID)
}

func (ts *TourService) CreateTour(ctx context.Context, req models.VirtualTourRequest) (*models.VirtualTourDetails, error) {
	req.Title = helpers.StringTrim(req.Title)
	req.Media = helpers.StringTrim(req.Media)
	if err := validate(req); err != nil {
		return nil, err
	}
	if !helpers.IsMediaSource(req.Media) {
		return nil, failure.BadRequestFromString("tour_media must be a URL or a data URI")
	}
	roomID, err := ParseID(req.RoomID, "room")
	if err != nil {
		return nil, err
	}
	room, err := ts.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return nil, repoError(err, "room")
	}

	url, err := ts.media.Upload(ctx, req.Media, helpers.TourFolder)
	if err != nil {
		ts.logger.Error("tour media upload failed", "room_id", roomID, "error", err)
		return nil, failure.BadRequestFromString("tour_media: " + err.Error())
	}

	tour, err := ts.tours.CreateTour(ctx, &models.VirtualTour{
		RoomID:   roomID,
		Title:    req.Title,
		MediaURL: url,
		Status:   models.RecordActive,
	})
	if err != nil {
		return nil, repoError(err, "tour")
	}
	d := ts.details(models.VirtualTourRecord{VirtualTour: *tour, Room: room})
	return &d, nil
}

func (ts *TourService) ChangeTourStatus(ctx context.Context, actor *models.Principal, id uuid.UUID, raw string) (*models.StatusChange, error) {
	status, err := models.ParseRecordStatus(raw)
	if err != nil {
		return nil, failure.BadRequest(err)
	}
	return ts.status.Change(ctx, actor, models.TourStatusTarget, id, string(status), nil)
}

// RecordView counts a view of an active tour. A missing session id gets a fresh one.
func (ts *TourService) RecordView(ctx context.Context, actor *models.Principal, tourID uuid.UUID, req ViewRequest) (*ViewResult, error) {
	rec, err := ts.tours.GetTour(ctx, tourID)
	if err != nil {
		return nil, repoError(err, "tour")
	}
	if rec.Status != models.RecordActive {
		return nil, failure.NotFound("tour not found")
	}

	sessionID := helpers.StringTrim(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	view := &models.TourView{
		TourID:    tourID.String(),
		RoomID:    rec.RoomID.String(),
		SessionID: sessionID,
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
	}
	if actor != nil && actor.UID != "" {
		uid := actor.UID
		view.GuestUID = &uid
	}

	recorded, err := ts.views.TrackTourView(ctx, view)
	if err != nil {
		ts.logger.Error("failed to track tour view", "tour_id", tourID, "error", err)
		return nil, err
	}
	return &ViewResult{Recorded: recorded, SessionID: sessionID}, nil
}

func (ts *TourService) Stats(ctx context.Context, tourID uuid.UUID) (*models.TourViewStats, error) {
	if _, err := ts.tours.GetTour(ctx, tourID); err != nil {
		return nil, repoError(err, "tour")
	}
	stats, err := ts.views.GetTourViewStats(ctx, tourID.String())
	if err != nil {
		ts.logger.Error("failed to load tour stats", "tour_id", tourID, "error", err)
		return nil, err
	}
	return stats, nil
}
