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

type EventService struct {
	events      models.EventRepo
	catalog     models.CatalogRepo
	guests      models.GuestRepo
	media       helpers.MediaUploader
	status      *StatusChanger
	placeholder string
	logger      *slog.Logger
}

func NewEventService(events models.EventRepo, catalog models.CatalogRepo, guests models.GuestRepo, media helpers.MediaUploader, status *StatusChanger, placeholder string, logger *slog.Logger) *EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventService{
		events:      events,
		catalog:     catalog,
		guests:      guests,
		media:       media,
		status:      status,
		placeholder: placeholder,
		logger:      logger.With("service", "event"),
	}
}

// ---- venues ----

func (es *EventService) venueView(v models.EventVenue) models.EventVenue {
	v.ImageURL = mediaOrPlaceholder(v.ImageURL, es.placeholder)
	return v
}

func (es *EventService) ListVenues(ctx context.Context) ([]models.EventVenue, error) {
	venues, err := es.events.ListVenues(ctx)
	if err != nil {
		es.logger.Error("failed to list venues", "error", err)
		return nil, err
	}
	for i := range venues {
		venues[i] = es.venueView(venues[i])
	}
	return venues, nil
}

func (es *EventService) GetVenue(ctx context.Context, id uuid.UUID) (*models.EventVenue, error) {
	v, err := es.events.GetVenue(ctx, id)
	if err != nil {
		return nil, repoError(err, "venue")
	}
	out := es.venueView(*v)
	return &out, nil
}

func (es *EventService) uploadVenueImage(ctx context.Context, source string) (string, error) {
	source = helpers.StringTrim(source)
	if source == "" {
		return "", nil
	}
	url, err := es.media.Upload(ctx, source, helpers.VenueFolder)
	if err != nil {
		return "", failure.BadRequestFromString("venue_image: " + err.Error())
	}
	return url, nil
}

func (es *EventService) CreateVenue(ctx context.Context, req models.VenueRequest) (*models.EventVenue, error) {
	req.Name = helpers.StringTrim(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}
	image, err := es.uploadVenueImage(ctx, req.Image)
	if err != nil {
		return nil, err
	}
	v, err := es.events.CreateVenue(ctx, &models.EventVenue{
		Name:        req.Name,
		Description: req.Description,
		MaxPax:      req.MaxPax,
		Price:       req.Price,
		Status:      models.RecordActive,
		ImageURL:    image,
	})
	if err != nil {
		return nil, repoError(err, "venue")
	}
	out := es.venueView(*v)
	return &out, nil
}

func (es *EventService) UpdateVenue(ctx context.Context, id uuid.UUID, req models.VenueRequest) (*models.EventVenue, error) {
	req.Name = helpers.StringTrim(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}
	fields := map[string]any{
		"venue_name":        req.Name,
		"venue_description": req.Description,
		"venue_max_pax":     req.MaxPax,
		"venue_price":       req.Price,
	}
	image, err := es.uploadVenueImage(ctx, req.Image)
	if err != nil {
		return nil, err
	}
	if image != "" {
		fields["venue_image"] = image
	}
	v, err := es.events.UpdateVenue(ctx, id, fields)
	if err != nil {
		return nil, repoError(err, "venue")
	}
	out := es.venueView(*v)
	return &out, nil
}

func (es *EventService) ChangeVenueStatus(ctx context.Context, actor *models.Principal, id uuid.UUID, raw string) (*models.StatusChange, error) {
	status, err := models.ParseRecordStatus(raw)
	if err != nil {
		return nil, failure.BadRequest(err)
	}
	return es.status.Change(ctx, actor, models.VenueStatusTarget, id, string(status), nil)
}

// ---- packages ----

func (es *EventService) ListPackages(ctx context.Context) ([]models.EventFoodPackage, error) {
	pkgs, err := es.events.ListPackages(ctx)
	if err != nil {
		es.logger.Error("failed to list food packages", "error", err)
		return nil, err
	}
	return pkgs, nil
}

func (es *EventService) CreatePackage(ctx context.Context, req models.PackageRequest) (*models.EventFoodPackage, error) {
	req.Name = helpers.StringTrim(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}
	pkg, err := es.events.CreatePackage(ctx, &models.EventFoodPackage{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		MaxItems:    req.MaxItems,
		Status:      models.RecordActive,
	})
	if err != nil {
		return nil, repoError(err, "food package")
	}
	return pkg, nil
}

func (es *EventService) UpdatePackage(ctx context.Context, id uuid.UUID, req models.PackageRequest) (*models.EventFoodPackage, error) {
	req.Name = helpers.StringTrim(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}
	pkg, err := es.events.UpdatePackage(ctx, id, map[string]any{
		"package_name":        req.Name,
		"package_description": req.Description,
		"package_price":       req.Price,
		"package_max_items":   req.MaxItems,
	})
	if err != nil {
		return nil, repoError(err, "food package")
	}
	return pkg, nil
}

func (es *EventService) ChangePackageStatus(ctx context.Context, actor *models.Principal, id uuid.UUID, raw string) (*models.StatusChange, error) {
	status, err := models.ParseRecordStatus(raw)
	if err != nil {
		return nil, failure.BadRequest(err)
	}
	return es.status.Change(ctx, actor, models.PackageStatusTarget, id, string(status), nil)
}

// ---- reservations ----

func parseFoodIDs(raw []string) ([]uuid.UUID, error) {
	seen := map[uuid.UUID]bool{}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := ParseID(r, "food")
		if err != nil {
			return nil, err
		}
		if seen[id] {
			return nil, failure.BadRequestFromString("food_ids must not repeat an item")
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// CreateReservation validates the booking against venue capacity and the package rules,
// then stores the reservation and its food selections in one transaction.
func (es *EventService) CreateReservation(ctx context.Context, actor *models.Principal, req models.EventReservationRequest) (uuid.UUID, error) {
	req.Type = helpers.StringTrim(req.Type)
	if err := validate(req); err != nil {
		return uuid.Nil, err
	}
	date, err := parseDate(req.Date, "event_date")
	if err != nil {
		return uuid.Nil, err
	}
	start, err := parseClock(req.StartTime, "event_start_time")
	if err != nil {
		return uuid.Nil, err
	}
	end, err := parseClock(req.EndTime, "event_end_time")
	if err != nil {
		return uuid.Nil, err
	}
	if !start.Before(end) {
		return uuid.Nil, failure.BadRequestFromString("event_end_time must be after event_start_time")
	}
	foodIDs, err := parseFoodIDs(req.FoodIDs)
	if err != nil {
		return uuid.Nil, err
	}
	guestID, err := guestFor(ctx, es.guests, actor, req.GuestID)
	if err != nil {
		return uuid.Nil, err
	}
	venueID, err := ParseID(req.VenueID, "venue")
	if err != nil {
		return uuid.Nil, err
	}
	packageID, err := ParseID(req.PackageID, "package")
	if err != nil {
		return uuid.Nil, err
	}

	venue, err := es.events.GetVenue(ctx, venueID)
	if err != nil {
		return uuid.Nil, repoError(err, "venue")
	}
	if venue.Status != models.RecordActive {
		return uuid.Nil, failure.BadRequestFromString(fmt.Sprintf("venue %s is not active", venue.Name))
	}
	if req.NoGuest > venue.MaxPax {
		return uuid.Nil, failure.BadRequestFromString(fmt.Sprintf("venue %s holds at most %d guests", venue.Name, venue.MaxPax))
	}

	pkg, err := es.events.GetPackage(ctx, packageID)
	if err != nil {
		return uuid.Nil, repoError(err, "food package")
	}
	if pkg.Status != models.RecordActive {
		return uuid.Nil, failure.BadRequestFromString(fmt.Sprintf("food package %s is not active", pkg.Name))
	}
	if pkg.MaxItems > 0 && len(foodIDs) > pkg.MaxItems {
		return uuid.Nil, failure.BadRequestFromString(fmt.Sprintf("food package %s allows at most %d items", pkg.Name, pkg.MaxItems))
	}

	if err := es.checkFoodAvailable(ctx, foodIDs); err != nil {
		return uuid.Nil, err
	}

	id, err := es.events.CreateEventReservation(ctx, &models.EventReservation{
		GuestID:    guestID,
		VenueID:    venueID,
		PackageID:  packageID,
		Type:       req.Type,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		NoGuest:    req.NoGuest,
		TotalPrice: models.RoundCents(venue.Price + pkg.Price),
		Status:     models.ReservationConfirmed,
	}, foodIDs)
	if err != nil {
		es.logger.Error("failed to create event reservation", "venue_id", venueID, "error", err)
		return uuid.Nil, repoError(err, "event reservation")
	}
	return id, nil
}

func (es *EventService) checkFoodAvailable(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	items, err := es.catalog.GetFoodItemsByIDs(ctx, ids)
	if err != nil {
		es.logger.Error("failed to load food items", "error", err)
		return err
	}
	found := make(map[uuid.UUID]models.FoodItem, len(items))
	for _, f := range items {
		found[f.ID] = f
	}
	for _, id := range ids {
		f, ok := found[id]
		if !ok {
			return failure.NotFound(fmt.Sprintf("food item %s not found", id))
		}
		if f.Status != models.ItemAvailable {
			return failure.BadRequestFromString(fmt.Sprintf("food item %s is not available", f.Name))
		}
	}
	return nil
}

func (es *EventService) details(rec models.EventReservationRecord) models.EventReservationDetails {
	d := models.EventReservationDetails{
		EventReservation: rec.EventReservation,
		Package:          rec.Package,
		PackageName:      models.UnknownLabel,
		Guest:            rec.Guest,
		GuestName:        rec.Guest.FullName(),
		VenueName:        models.UnknownLabel,
		VenueImage:       es.placeholder,
		FoodItems:        []models.FoodItemView{},
	}
	if rec.Venue != nil {
		v := es.venueView(*rec.Venue)
		d.Venue = &v
		d.VenueName = v.Name
		d.VenueImage = v.ImageURL
	}
	if rec.Package != nil {
		d.PackageName = rec.Package.Name
	}
	for _, it := range rec.Items {
		if it.Food != nil {
			d.FoodItems = append(d.FoodItems, models.NewFoodItemView(*it.Food))
		}
	}
	return d
}

func (es *EventService) GetReservation(ctx context.Context, actor *models.Principal, id uuid.UUID) (*models.EventReservationDetails, error) {
	rec, err := es.events.GetEventReservation(ctx, id)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			es.logger.Error("failed to fetch event reservation", "id", id, "error", err)
		}
		return nil, repoError(err, "event reservation")
	}
	if actor.IsGuest() && !actor.OwnsGuest(rec.GuestID) {
		return nil, failure.NotFound("event reservation not found")
	}
	d := es.details(*rec)
	return &d, nil
}

func (es *EventService) ListGuestReservations(ctx context.Context, actor *models.Principal, guestID uuid.UUID) ([]models.EventReservationDetails, error) {
	if !canManageGuest(actor, guestID) && !actor.HasRole(models.RoleRestaurant) {
		return nil, failure.Forbidden("you may only view your own reservations")
	}
	recs, err := es.events.ListEventReservationsByGuest(ctx, guestID)
	if err != nil {
		es.logger.Error("failed to list guest event reservations", "guest_id", guestID, "error", err)
		return nil, err
	}
	out := make([]models.EventReservationDetails, 0, len(recs))
	for _, rec := range recs {
		out = append(out, es.details(rec))
	}
	return out, nil
}

func (es *EventService) ListForDate(ctx context.Context, dateRaw string) ([]models.EventReservationDetails, error) {
	date, err := parseDate(dateRaw, "date")
	if err != nil {
		return nil, err
	}
	recs, err := es.events.ListEventReservationsOn(ctx, date)
	if err != nil {
		es.logger.Error("failed to list event reservations by date", "date", date.String(), "error", err)
		return nil, err
	}
	out := make([]models.EventReservationDetails, 0, len(recs))
	for _, rec := range recs {
		out = append(out, es.details(rec))
	}
	return out, nil
}

func (es *EventService) ChangeReservationStatus(ctx context.Context, actor *models.Principal, id uuid.UUID, raw, reason string) (*models.StatusChange, error) {
	status, err := models.ParseReservationStatus(raw)
	if err != nil {
		return nil, failure.BadRequest(err)
	}
	if actor.IsGuest() {
		if status != models.ReservationCanceled {
			return nil, failure.Forbidden("guests may only cancel a reservation")
		}
		rec, err := es.events.GetEventReservation(ctx, id)
		if err != nil {
			return nil, repoError(err, "event reservation")
		}
		if !actor.OwnsGuest(rec.GuestID) {
			return nil, failure.NotFound("event reservation not found")
		}
	}
	return es.status.Change(ctx, actor, models.EventReservationStatusTarget, id, string(status), optionalReason(reason))
}
