package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/joshua-takyi/resort/internal/failure"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/models"
)

type RoomService struct {
	rooms       models.RoomRepo
	guests      models.GuestRepo
	media       helpers.MediaUploader
	status      *StatusChanger
	placeholder string
	logger      *slog.Logger
}

func NewRoomService(rooms models.RoomRepo, guests models.GuestRepo, media helpers.MediaUploader, status *StatusChanger, placeholder string, logger *slog.Logger) *RoomService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RoomService{
		rooms:       rooms,
		guests:      guests,
		media:       media,
		status:      status,
		placeholder: placeholder,
		logger:      logger.With("service", "room"),
	}
}

func (rs *RoomService) ListRooms(ctx context.Context) ([]models.RoomView, error) {
	rooms, err := rs.rooms.ListRooms(ctx)
	if err != nil {
		rs.logger.Error("failed to list rooms", "error", err)
		return nil, err
	}
	out := make([]models.RoomView, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, rs.view(r))
	}
	return out, nil
}

func (rs *RoomService) GetRoom(ctx context.Context, id uuid.UUID) (*models.RoomView, error) {
	room, err := rs.rooms.GetRoom(ctx, id)
	if err != nil {
		return nil, repoError(err, "room")
	}
	v := rs.view(*room)
	return &v, nil
}

func (rs *RoomService) view(r models.Room) models.RoomView {
	r.ImageURL = mediaOrPlaceholder(r.ImageURL, rs.placeholder)
	return models.NewRoomView(r)
}

func (rs *RoomService) uploadImage(ctx context.Context, source string) (string, error) {
	source = helpers.StringTrim(source)
	if source == "" {
		return "", nil
	}
	url, err := rs.media.Upload(ctx, source, helpers.RoomFolder)
	if err != nil {
		return "", failure.BadRequestFromString("room_image: " + err.Error())
	}
	return url, nil
}

func (rs *RoomService) CreateRoom(ctx context.Context, req models.RoomRequest) (*models.RoomView, error) {
	req.Number = helpers.StringTrim(req.Number)
	req.Type = helpers.StringTrim(req.Type)
	if err := validate(req); err != nil {
		return nil, err
	}
	image, err := rs.uploadImage(ctx, req.Image)
	if err != nil {
		return nil, err
	}
	room, err := rs.rooms.CreateRoom(ctx, &models.Room{
		Number:      req.Number,
		Type:        req.Type,
		Description: req.Description,
		MaxPax:      req.MaxPax,
		Rate:        req.Rate,
		Discount:    req.Discount,
		Status:      models.RoomAvailable,
		ImageURL:    image,
	})
	if err != nil {
		return nil, repoError(err, "room")
	}
	v := rs.view(*room)
	return &v, nil
}

// UpdateRoom replaces the descriptive fields; the image is kept unless a new one is sent.
func (rs *RoomService) UpdateRoom(ctx context.Context, id uuid.UUID, req models.RoomRequest) (*models.RoomView, error) {
	req.Number = helpers.StringTrim(req.Number)
	req.Type = helpers.StringTrim(req.Type)
	if err := validate(req); err != nil {
		return nil, err
	}
	fields := map[string]any{
		"room_number":      req.Number,
		"room_type":        req.Type,
		"room_description": req.Description,
		"room_max_pax":     req.MaxPax,
		"room_rate":        req.Rate,
		"room_discount":    req.Discount,
	}
	image, err := rs.uploadImage(ctx, req.Image)
	if err != nil {
		return nil, err
	}
	if image != "" {
		fields["room_image"] = image
	}
	room, err := rs.rooms.UpdateRoom(ctx, id, fields)
	if err != nil {
		return nil, repoError(err, "room")
	}
	v := rs.view(*room)
	return &v, nil
}

func (rs *RoomService) ChangeRoomStatus(ctx context.Context, actor *models.Principal, id uuid.UUID, raw string) (*models.StatusChange, error) {
	status, err := models.ParseRoomStatus(raw)
	if err != nil {
		return nil, failure.BadRequest(err)
	}
	return rs.status.Change(ctx, actor, models.RoomStatusTarget, id, string(status), nil)
}

func parseStay(checkInRaw, checkOutRaw string) (models.Date, models.Date, error) {
	in, err := parseDate(checkInRaw, "room_check_in_date")
	if err != nil {
		return in, in, err
	}
	out, err := parseDate(checkOutRaw, "room_check_out_date")
	if err != nil {
		return in, out, err
	}
	if models.NightsBetween(in, out) < 1 {
		return in, out, failure.BadRequestFromString("check-out must be at least one night after check-in")
	}
	return in, out, nil
}

// Availability lists bookable rooms that fit guests and have no confirmed stay overlapping the dates.
func (rs *RoomService) Availability(ctx context.Context, checkInRaw, checkOutRaw string, guests int) ([]models.RoomView, error) {
	in, out, err := parseStay(checkInRaw, checkOutRaw)
	if err != nil {
		return nil, err
	}
	if guests < 1 {
		guests = 1
	}
	rooms, err := rs.rooms.ListRooms(ctx)
	if err != nil {
		rs.logger.Error("failed to list rooms", "error", err)
		return nil, err
	}
	stays, err := rs.rooms.ListConfirmedStays(ctx, nil, in, out)
	if err != nil {
		rs.logger.Error("failed to list confirmed stays", "error", err)
		return nil, err
	}
	booked := map[uuid.UUID]bool{}
	for _, s := range stays {
		if models.Overlaps(s.CheckIn, s.CheckOut, in, out) {
			booked[s.RoomID] = true
		}
	}

	available := []models.RoomView{}
	for _, r := range rooms {
		if r.Status.Bookable() && r.MaxPax >= guests && !booked[r.ID] {
			available = append(available, rs.view(r))
		}
	}
	return available, nil
}

// guestFor resolves whose reservation this is: guests always book for themselves.
func guestFor(ctx context.Context, guests models.GuestRepo, actor *models.Principal, raw string) (uuid.UUID, error) {
	if actor.IsGuest() {
		if raw != "" && raw != actor.GuestID.String() {
			return uuid.Nil, failure.Forbidden("guests may only book for themselves")
		}
		return actor.GuestID, nil
	}
	if raw == "" {
		return uuid.Nil, failure.BadRequestFromString("guest_id is required")
	}
	id, err := ParseID(raw, "guest")
	if err != nil {
		return uuid.Nil, err
	}
	if _, err := guests.GetGuestByID(ctx, id); err != nil {
		return uuid.Nil, repoError(err, "guest")
	}
	return id, nil
}

func (rs *RoomService) CreateReservation(ctx context.Context, actor *models.Principal, req models.RoomReservationRequest) (*models.RoomReservation, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	in, out, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	guestID, err := guestFor(ctx, rs.guests, actor, req.GuestID)
	if err != nil {
		return nil, err
	}
	roomID, err := ParseID(req.RoomID, "room")
	if err != nil {
		return nil, err
	}

	room, err := rs.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return nil, repoError(err, "room")
	}
	if !room.Status.Bookable() {
		return nil, failure.BadRequestFromString(fmt.Sprintf("room %s is not available for booking", room.Number))
	}
	if req.NoGuest > room.MaxPax {
		return nil, failure.BadRequestFromString(fmt.Sprintf("room %s holds at most %d guests", room.Number, room.MaxPax))
	}

	stays, err := rs.rooms.ListConfirmedStays(ctx, &roomID, in, out)
	if err != nil {
		rs.logger.Error("failed to check room overlap", "room_id", roomID, "error", err)
		return nil, err
	}
	for _, s := range stays {
		if s.RoomID == roomID && models.Overlaps(s.CheckIn, s.CheckOut, in, out) {
			return nil, failure.BadRequestFromString("room is already booked for the selected dates")
		}
	}

	nights := models.NightsBetween(in, out)
	rate := room.FinalRate()
	res, err := rs.rooms.CreateRoomReservation(ctx, &models.RoomReservation{
		GuestID:   guestID,
		RoomID:    roomID,
		CheckIn:   in,
		CheckOut:  out,
		NoGuest:   req.NoGuest,
		FinalRate: rate,
		TotalCost: models.RoundCents(rate * float64(nights)),
		Status:    models.ReservationConfirmed,
	})
	if err != nil {
		rs.logger.Error("failed to create room reservation", "room_id", roomID, "error", err)
		return nil, repoError(err, "room reservation")
	}
	return res, nil
}

func (rs *RoomService) details(rec models.RoomReservationRecord) models.RoomReservationDetails {
	d := models.RoomReservationDetails{
		RoomReservation: rec.RoomReservation,
		Nights:          rec.Nights(),
		Guest:           rec.Guest,
		GuestName:       rec.Guest.FullName(),
		RoomType:        models.UnknownLabel,
		RoomImage:       rs.placeholder,
	}
	if rec.Room != nil {
		v := rs.view(*rec.Room)
		d.Room = &v
		d.RoomType = v.Type
		d.RoomImage = v.ImageURL
	}
	return d
}

func (rs *RoomService) GetReservation(ctx context.Context, actor *models.Principal, id uuid.UUID) (*models.RoomReservationDetails, error) {
	rec, err := rs.rooms.GetRoomReservation(ctx, id)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			rs.logger.Error("failed to fetch room reservation", "id", id, "error", err)
		}
		return nil, repoError(err, "room reservation")
	}
	if actor.IsGuest() && !actor.OwnsGuest(rec.GuestID) {
		return nil, failure.NotFound("room reservation not found")
	}
	d := rs.details(*rec)
	return &d, nil
}

func (rs *RoomService) ListGuestReservations(ctx context.Context, actor *models.Principal, guestID uuid.UUID) ([]models.RoomReservationDetails, error) {
	if !canManageGuest(actor, guestID) {
		return nil, failure.Forbidden("you may only view your own reservations")
	}
	recs, err := rs.rooms.ListRoomReservationsByGuest(ctx, guestID)
	if err != nil {
		rs.logger.Error("failed to list guest room reservations", "guest_id", guestID, "error", err)
		return nil, err
	}
	out := make([]models.RoomReservationDetails, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rs.details(rec))
	}
	return out, nil
}

// ListForDate is the front desk board: arrivals, in-house stays and departures on date.
func (rs *RoomService) ListForDate(ctx context.Context, dateRaw string) ([]models.RoomReservationDetails, error) {
	date, err := parseDate(dateRaw, "date")
	if err != nil {
		return nil, err
	}
	recs, err := rs.rooms.ListRoomReservationsOn(ctx, date)
	if err != nil {
		rs.logger.Error("failed to list room reservations by date", "date", date.String(), "error", err)
		return nil, err
	}
	out := make([]models.RoomReservationDetails, 0, len(recs))
	for _, rec := range recs {
		d := rs.details(rec)
		switch {
		case rec.CheckIn.Equal(date.Time):
			d.Movement = models.MovementArrival
		case rec.CheckOut.Equal(date.Time):
			d.Movement = models.MovementDeparture
		default:
			d.Movement = models.MovementInHouse
		}
		out = append(out, d)
	}
	return out, nil
}

// ChangeReservationStatus is unconditional for staff; guests may only cancel their own bookings.
func (rs *RoomService) ChangeReservationStatus(ctx context.Context, actor *models.Principal, id uuid.UUID, raw, reason string) (*models.StatusChange, error) {
	status, err := models.ParseReservationStatus(raw)
	if err != nil {
		return nil, failure.BadRequest(err)
	}
	if actor.IsGuest() {
		if status != models.ReservationCanceled {
			return nil, failure.Forbidden("guests may only cancel a reservation")
		}
		rec, err := rs.rooms.GetRoomReservation(ctx, id)
		if err != nil {
			return nil, repoError(err, "room reservation")
		}
		if !actor.OwnsGuest(rec.GuestID) {
			return nil, failure.NotFound("room reservation not found")
		}
	}
	return rs.status.Change(ctx, actor, models.RoomReservationStatusTarget, id, string(status), optionalReason(reason))
}
