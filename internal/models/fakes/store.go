// Package fakes holds in-memory stand-ins for the stores and the identity
// provider, used by service and handler tests.
package fakes

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/resort/internal/models"
)

// Store implements every repository interface over maps.
type Store struct {
	mu sync.Mutex

	Guests            map[uuid.UUID]models.Guest
	GuestHashes       map[uuid.UUID]string
	Staff             map[uuid.UUID]models.Staff
	StaffHashes       map[uuid.UUID]string
	Rooms             map[uuid.UUID]models.Room
	RoomReservations  map[uuid.UUID]models.RoomReservation
	Venues            map[uuid.UUID]models.EventVenue
	Packages          map[uuid.UUID]models.EventFoodPackage
	EventReservations map[uuid.UUID]models.EventReservation
	EventItems        []models.EventReservationListRow
	FoodItems         map[uuid.UUID]models.FoodItem
	Drinks            map[uuid.UUID]models.Drink
	Tables            map[uuid.UUID]models.DiningTable
	TableReservations map[uuid.UUID]models.TableReservation
	Tours             map[uuid.UUID]models.VirtualTour
	StatusChanges     []models.StatusChange
	TourViews         []models.TourView
	Wishlists         map[uuid.UUID]*models.Wishlist

	failures map[string]error
	clock    time.Time
}

var (
	_ models.GuestRepo     = (*Store)(nil)
	_ models.StaffRepo     = (*Store)(nil)
	_ models.RoomRepo      = (*Store)(nil)
	_ models.EventRepo     = (*Store)(nil)
	_ models.CatalogRepo   = (*Store)(nil)
	_ models.TableRepo     = (*Store)(nil)
	_ models.TourRepo      = (*Store)(nil)
	_ models.StatusRepo    = (*Store)(nil)
	_ models.AuditRepo     = (*Store)(nil)
	_ models.TourViewsRepo = (*Store)(nil)
	_ models.WishlistRepo  = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		Guests:            map[uuid.UUID]models.Guest{},
		GuestHashes:       map[uuid.UUID]string{},
		Staff:             map[uuid.UUID]models.Staff{},
		StaffHashes:       map[uuid.UUID]string{},
		Rooms:             map[uuid.UUID]models.Room{},
		RoomReservations:  map[uuid.UUID]models.RoomReservation{},
		Venues:            map[uuid.UUID]models.EventVenue{},
		Packages:          map[uuid.UUID]models.EventFoodPackage{},
		EventReservations: map[uuid.UUID]models.EventReservation{},
		FoodItems:         map[uuid.UUID]models.FoodItem{},
		Drinks:            map[uuid.UUID]models.Drink{},
		Tables:            map[uuid.UUID]models.DiningTable{},
		TableReservations: map[uuid.UUID]models.TableReservation{},
		Tours:             map[uuid.UUID]models.VirtualTour{},
		Wishlists:         map[uuid.UUID]*models.Wishlist{},
		failures:          map[string]error{},
		clock:             time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Fail makes the named method return err until cleared with a nil err.
func (s *Store) Fail(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, method)
		return
	}
	s.failures[method] = err
}

func (s *Store) fail(method string) error {
	return s.failures[method]
}

// tick hands out strictly increasing creation times so ordering is stable.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, models.ErrNotFound)
}

// Counts reports how many rows each reservation table holds.
func (s *Store) Counts() (rooms, events, items, tables int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.RoomReservations), len(s.EventReservations), len(s.EventItems), len(s.TableReservations)
}

// ---- guests ----

func (s *Store) CreateGuest(ctx context.Context, guest *models.Guest, passwordHash string) (*models.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateGuest"); err != nil {
		return nil, err
	}
	for _, g := range s.Guests {
		if strings.EqualFold(g.Email, guest.Email) {
			return nil, fmt.Errorf("guest: %w", models.ErrDuplicate)
		}
	}
	g := *guest
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	g.Email = strings.ToLower(g.Email)
	g.CreatedAt = s.tick()
	s.Guests[g.ID] = g
	s.GuestHashes[g.ID] = passwordHash
	return &g, nil
}

func (s *Store) GetGuestByID(ctx context.Context, id uuid.UUID) (*models.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetGuestByID"); err != nil {
		return nil, err
	}
	g, ok := s.Guests[id]
	if !ok {
		return nil, notFound("guest")
	}
	return &g, nil
}

func (s *Store) GetGuestByUID(ctx context.Context, uid string) (*models.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.Guests {
		if g.UID == uid {
			return &g, nil
		}
	}
	return nil, notFound("guest")
}

func (s *Store) GetGuestCredentials(ctx context.Context, email string) (*models.GuestCredentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.Guests {
		if strings.EqualFold(g.Email, email) {
			return &models.GuestCredentials{ID: g.ID, UID: g.UID, Email: g.Email, PasswordHash: s.GuestHashes[g.ID]}, nil
		}
	}
	return nil, notFound("guest credentials")
}

func (s *Store) ListGuests(ctx context.Context, search string) ([]models.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListGuests"); err != nil {
		return nil, err
	}
	search = strings.ToLower(strings.TrimSpace(search))
	out := []models.Guest{}
	for _, g := range s.Guests {
		hay := strings.ToLower(g.FirstName + " " + g.LastName + " " + g.Email)
		if search == "" || strings.Contains(hay, search) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (s *Store) UpdateGuest(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.Guests[id]
	if !ok {
		return nil, notFound("guest")
	}
	for k, v := range fields {
		str, _ := v.(string)
		switch k {
		case "guest_fname":
			g.FirstName = str
		case "guest_lname":
			g.LastName = str
		case "guest_phone":
			g.Phone = str
		case "guest_address":
			g.Address = str
		}
	}
	s.Guests[id] = g
	return &g, nil
}

// ---- staff ----

func (s *Store) CreateStaff(ctx context.Context, staff *models.Staff, passwordHash string) (*models.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateStaff"); err != nil {
		return nil, err
	}
	for _, m := range s.Staff {
		if strings.EqualFold(m.Email, staff.Email) {
			return nil, fmt.Errorf("staff: %w", models.ErrDuplicate)
		}
	}
	m := *staff
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.Email = strings.ToLower(m.Email)
	m.CreatedAt = s.tick()
	s.Staff[m.ID] = m
	s.StaffHashes[m.ID] = passwordHash
	return &m, nil
}

func (s *Store) GetStaffByID(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.Staff[id]
	if !ok {
		return nil, notFound("staff")
	}
	return &m, nil
}

func (s *Store) GetStaffByUID(ctx context.Context, uid string) (*models.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.Staff {
		if m.UID == uid {
			return &m, nil
		}
	}
	return nil, notFound("staff")
}

func (s *Store) GetStaffCredentials(ctx context.Context, email string) (*models.StaffCredentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.Staff {
		if strings.EqualFold(m.Email, email) {
			return &models.StaffCredentials{ID: m.ID, UID: m.UID, Email: m.Email, PasswordHash: s.StaffHashes[m.ID], Status: m.Status}, nil
		}
	}
	return nil, notFound("staff credentials")
}

func (s *Store) ListStaff(ctx context.Context, role models.StaffRole) ([]models.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListStaff"); err != nil {
		return nil, err
	}
	out := []models.Staff{}
	for _, m := range s.Staff {
		if role == "" || m.Role == role {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out, nil
}

func (s *Store) UpdateStaff(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.Staff[id]
	if !ok {
		return nil, notFound("staff")
	}
	for k, v := range fields {
		switch k {
		case "staff_fname":
			m.FirstName = v.(string)
		case "staff_lname":
			m.LastName = v.(string)
		case "staff_phone":
			m.Phone = v.(string)
		case "staff_role":
			m.Role = v.(models.StaffRole)
		case "staff_shift_start":
			m.ShiftStart = v.(models.ClockTime)
		case "staff_shift_end":
			m.ShiftEnd = v.(models.ClockTime)
		}
	}
	s.Staff[id] = m
	return &m, nil
}

// ---- rooms ----

func (s *Store) CreateRoom(ctx context.Context, room *models.Room) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateRoom"); err != nil {
		return nil, err
	}
	r := *room
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = s.tick()
	s.Rooms[r.ID] = r
	return &r, nil
}

func (s *Store) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetRoom"); err != nil {
		return nil, err
	}
	r, ok := s.Rooms[id]
	if !ok {
		return nil, notFound("room")
	}
	return &r, nil
}

func (s *Store) ListRooms(ctx context.Context) ([]models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListRooms"); err != nil {
		return nil, err
	}
	out := []models.Room{}
	for _, r := range s.Rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (s *Store) UpdateRoom(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.Rooms[id]
	if !ok {
		return nil, notFound("room")
	}
	for k, v := range fields {
		switch k {
		case "room_number":
			r.Number = v.(string)
		case "room_type":
			r.Type = v.(string)
		case "room_description":
			r.Description = v.(string)
		case "room_max_pax":
			r.MaxPax = v.(int)
		case "room_rate":
			r.Rate = v.(float64)
		case "room_discount":
			r.Discount = v.(float64)
		case "room_image":
			r.ImageURL = v.(string)
		}
	}
	s.Rooms[id] = r
	return &r, nil
}

func (s *Store) CreateRoomReservation(ctx context.Context, res *models.RoomReservation) (*models.RoomReservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateRoomReservation"); err != nil {
		return nil, err
	}
	r := *res
	r.ID = uuid.New()
	r.CreatedAt = s.tick()
	s.RoomReservations[r.ID] = r
	return &r, nil
}

func (s *Store) roomRecord(r models.RoomReservation) models.RoomReservationRecord {
	rec := models.RoomReservationRecord{RoomReservation: r}
	if room, ok := s.Rooms[r.RoomID]; ok {
		rec.Room = &room
	}
	if g, ok := s.Guests[r.GuestID]; ok {
		rec.Guest = &g
	}
	return rec
}

func (s *Store) GetRoomReservation(ctx context.Context, id uuid.UUID) (*models.RoomReservationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetRoomReservation"); err != nil {
		return nil, err
	}
	r, ok := s.RoomReservations[id]
	if !ok {
		return nil, notFound("room reservation")
	}
	rec := s.roomRecord(r)
	return &rec, nil
}

func (s *Store) ListRoomReservationsByGuest(ctx context.Context, guestID uuid.UUID) ([]models.RoomReservationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListRoomReservationsByGuest"); err != nil {
		return nil, err
	}
	out := []models.RoomReservationRecord{}
	for _, r := range s.sortedRoomReservations() {
		if r.GuestID == guestID {
			out = append(out, s.roomRecord(r))
		}
	}
	return out, nil
}

func (s *Store) ListRoomReservationsOn(ctx context.Context, date models.Date) ([]models.RoomReservationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListRoomReservationsOn"); err != nil {
		return nil, err
	}
	out := []models.RoomReservationRecord{}
	for _, r := range s.sortedRoomReservations() {
		if !r.Status.Billable() {
			continue
		}
		if !r.CheckIn.After(date.Time) && !r.CheckOut.Before(date.Time) {
			out = append(out, s.roomRecord(r))
		}
	}
	return out, nil
}

func (s *Store) ListConfirmedStays(ctx context.Context, roomID *uuid.UUID, checkIn, checkOut models.Date) ([]models.RoomReservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListConfirmedStays"); err != nil {
		return nil, err
	}
	out := []models.RoomReservation{}
	for _, r := range s.sortedRoomReservations() {
		if r.Status != models.ReservationConfirmed || (roomID != nil && r.RoomID != *roomID) {
			continue
		}
		if models.Overlaps(r.CheckIn, r.CheckOut, checkIn, checkOut) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) ListRoomReservationsBetween(ctx context.Context, from, to models.Date) ([]models.RoomReservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListRoomReservationsBetween"); err != nil {
		return nil, err
	}
	out := []models.RoomReservation{}
	for _, r := range s.sortedRoomReservations() {
		if inRange(r.CheckIn, from, to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) sortedRoomReservations() []models.RoomReservation {
	out := make([]models.RoomReservation, 0, len(s.RoomReservations))
	for _, r := range s.RoomReservations {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func inRange(d, from, to models.Date) bool {
	return !d.Before(from.Time) && !d.After(to.Time)
}

// ---- events ----

func (s *Store) CreateVenue(ctx context.Context, venue *models.EventVenue) (*models.EventVenue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := *venue
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = s.tick()
	s.Venues[v.ID] = v
	return &v, nil
}

func (s *Store) GetVenue(ctx context.Context, id uuid.UUID) (*models.EventVenue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetVenue"); err != nil {
		return nil, err
	}
	v, ok := s.Venues[id]
	if !ok {
		return nil, notFound("venue")
	}
	return &v, nil
}

func (s *Store) ListVenues(ctx context.Context) ([]models.EventVenue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.EventVenue{}
	for _, v := range s.Venues {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpdateVenue(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.EventVenue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.Venues[id]
	if !ok {
		return nil, notFound("venue")
	}
	for k, val := range fields {
		switch k {
		case "venue_name":
			v.Name = val.(string)
		case "venue_description":
			v.Description = val.(string)
		case "venue_max_pax":
			v.MaxPax = val.(int)
		case "venue_price":
			v.Price = val.(float64)
		case "venue_image":
			v.ImageURL = val.(string)
		}
	}
	s.Venues[id] = v
	return &v, nil
}

func (s *Store) CreatePackage(ctx context.Context, pkg *models.EventFoodPackage) (*models.EventFoodPackage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *pkg
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = s.tick()
	s.Packages[p.ID] = p
	return &p, nil
}

func (s *Store) GetPackage(ctx context.Context, id uuid.UUID) (*models.EventFoodPackage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Packages[id]
	if !ok {
		return nil, notFound("food package")
	}
	return &p, nil
}

func (s *Store) ListPackages(ctx context.Context) ([]models.EventFoodPackage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.EventFoodPackage{}
	for _, p := range s.Packages {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpdatePackage(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.EventFoodPackage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Packages[id]
	if !ok {
		return nil, notFound("food package")
	}
	for k, val := range fields {
		switch k {
		case "package_name":
			p.Name = val.(string)
		case "package_description":
			p.Description = val.(string)
		case "package_price":
			p.Price = val.(float64)
		case "package_max_items":
			p.MaxItems = val.(int)
		}
	}
	s.Packages[id] = p
	return &p, nil
}

func (s *Store) CreateEventReservation(ctx context.Context, res *models.EventReservation, foodIDs []uuid.UUID) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateEventReservation"); err != nil {
		return uuid.Nil, err
	}
	r := *res
	r.ID = uuid.New()
	r.CreatedAt = s.tick()
	items := make([]models.EventReservationListRow, 0, len(foodIDs))
	for _, fid := range foodIDs {
		if _, ok := s.FoodItems[fid]; !ok {
			// the database function rolls back on a bad foreign key
			return uuid.Nil, errors.New("rpc create_event_reservation: (23503) foreign key violation")
		}
		items = append(items, models.EventReservationListRow{
			ID: uuid.New(), EventReservationID: r.ID, VenueID: r.VenueID, PackageID: r.PackageID, FoodID: fid,
		})
	}
	s.EventReservations[r.ID] = r
	s.EventItems = append(s.EventItems, items...)
	return r.ID, nil
}

func (s *Store) eventRecord(r models.EventReservation) models.EventReservationRecord {
	rec := models.EventReservationRecord{EventReservation: r, Items: []models.EventReservationListRow{}}
	if v, ok := s.Venues[r.VenueID]; ok {
		rec.Venue = &v
	}
	if p, ok := s.Packages[r.PackageID]; ok {
		rec.Package = &p
	}
	if g, ok := s.Guests[r.GuestID]; ok {
		rec.Guest = &g
	}
	for _, it := range s.EventItems {
		if it.EventReservationID != r.ID {
			continue
		}
		if f, ok := s.FoodItems[it.FoodID]; ok {
			it.Food = &f
		}
		rec.Items = append(rec.Items, it)
	}
	return rec
}

func (s *Store) sortedEventReservations() []models.EventReservation {
	out := make([]models.EventReservation, 0, len(s.EventReservations))
	for _, r := range s.EventReservations {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Store) GetEventReservation(ctx context.Context, id uuid.UUID) (*models.EventReservationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetEventReservation"); err != nil {
		return nil, err
	}
	r, ok := s.EventReservations[id]
	if !ok {
		return nil, notFound("event reservation")
	}
	rec := s.eventRecord(r)
	return &rec, nil
}

func (s *Store) ListEventReservationsByGuest(ctx context.Context, guestID uuid.UUID) ([]models.EventReservationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListEventReservationsByGuest"); err != nil {
		return nil, err
	}
	out := []models.EventReservationRecord{}
	for _, r := range s.sortedEventReservations() {
		if r.GuestID == guestID {
			out = append(out, s.eventRecord(r))
		}
	}
	return out, nil
}

func (s *Store) ListEventReservationsOn(ctx context.Context, date models.Date) ([]models.EventReservationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.EventReservationRecord{}
	for _, r := range s.sortedEventReservations() {
		if r.Date.Equal(date.Time) {
			out = append(out, s.eventRecord(r))
		}
	}
	return out, nil
}

func (s *Store) ListEventReservationsBetween(ctx context.Context, from, to models.Date) ([]models.EventReservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListEventReservationsBetween"); err != nil {
		return nil, err
	}
	out := []models.EventReservation{}
	for _, r := range s.sortedEventReservations() {
		if inRange(r.Date, from, to) {
			out = append(out, r)
		}
	}
	return out, nil
}

// ---- catalog ----

func (s *Store) CreateFoodItem(ctx context.Context, item *models.FoodItem) (*models.FoodItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := *item
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.CreatedAt = s.tick()
	s.FoodItems[f.ID] = f
	return &f, nil
}

func (s *Store) GetFoodItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.FoodItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetFoodItemsByIDs"); err != nil {
		return nil, err
	}
	out := []models.FoodItem{}
	for _, id := range ids {
		if f, ok := s.FoodItems[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *Store) ListFoodItems(ctx context.Context, category string) ([]models.FoodItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.FoodItem{}
	for _, f := range s.FoodItems {
		if category == "" || strings.EqualFold(f.Category, category) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpdateFoodItem(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.FoodItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.FoodItems[id]
	if !ok {
		return nil, notFound("food item")
	}
	for k, v := range fields {
		switch k {
		case "food_name":
			f.Name = v.(string)
		case "food_category":
			f.Category = v.(string)
		case "food_price":
			f.Price = v.(float64)
		case "food_discount":
			f.Discount = v.(float64)
		}
	}
	s.FoodItems[id] = f
	return &f, nil
}

func (s *Store) CreateDrink(ctx context.Context, drink *models.Drink) (*models.Drink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := *drink
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.CreatedAt = s.tick()
	s.Drinks[d.ID] = d
	return &d, nil
}

func (s *Store) ListDrinks(ctx context.Context, category string) ([]models.Drink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Drink{}
	for _, d := range s.Drinks {
		if category == "" || strings.EqualFold(d.Category, category) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpdateDrink(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Drink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.Drinks[id]
	if !ok {
		return nil, notFound("drink")
	}
	for k, v := range fields {
		switch k {
		case "drink_name":
			d.Name = v.(string)
		case "drink_category":
			d.Category = v.(string)
		case "drink_price":
			d.Price = v.(float64)
		case "drink_discount":
			d.Discount = v.(float64)
		}
	}
	s.Drinks[id] = d
	return &d, nil
}

// ---- tables ----

func (s *Store) CreateDiningTable(ctx context.Context, table *models.DiningTable) (*models.DiningTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := *table
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = s.tick()
	s.Tables[t.ID] = t
	return &t, nil
}

func (s *Store) GetDiningTable(ctx context.Context, id uuid.UUID) (*models.DiningTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.Tables[id]
	if !ok {
		return nil, notFound("dining table")
	}
	return &t, nil
}

func (s *Store) ListDiningTables(ctx context.Context) ([]models.DiningTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListDiningTables"); err != nil {
		return nil, err
	}
	out := []models.DiningTable{}
	for _, t := range s.Tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateTableReservation(ctx context.Context, res *models.TableReservation) (*models.TableReservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateTableReservation"); err != nil {
		return nil, err
	}
	r := *res
	r.ID = uuid.New()
	r.CreatedAt = s.tick()
	s.TableReservations[r.ID] = r
	return &r, nil
}

func (s *Store) sortedTableReservations() []models.TableReservation {
	out := make([]models.TableReservation, 0, len(s.TableReservations))
	for _, r := range s.TableReservations {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Store) ListTableReservationsOn(ctx context.Context, date models.Date) ([]models.TableReservationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListTableReservationsOn"); err != nil {
		return nil, err
	}
	out := []models.TableReservationRecord{}
	for _, r := range s.sortedTableReservations() {
		if !r.Date.Equal(date.Time) {
			continue
		}
		rec := models.TableReservationRecord{TableReservation: r}
		if t, ok := s.Tables[r.TableID]; ok {
			rec.Table = &t
		}
		if r.GuestID != nil {
			if g, ok := s.Guests[*r.GuestID]; ok {
				rec.Guest = &g
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) ListConfirmedSeatings(ctx context.Context, date models.Date, tableID *uuid.UUID) ([]models.TableReservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListConfirmedSeatings"); err != nil {
		return nil, err
	}
	out := []models.TableReservation{}
	for _, r := range s.sortedTableReservations() {
		if r.Status != models.ReservationConfirmed || !r.Date.Equal(date.Time) {
			continue
		}
		if tableID != nil && r.TableID != *tableID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) ListTableReservationsBetween(ctx context.Context, from, to models.Date) ([]models.TableReservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.TableReservation{}
	for _, r := range s.sortedTableReservations() {
		if inRange(r.Date, from, to) {
			out = append(out, r)
		}
	}
	return out, nil
}

// ---- tours ----

func (s *Store) CreateTour(ctx context.Context, tour *models.VirtualTour) (*models.VirtualTour, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateTour"); err != nil {
		return nil, err
	}
	t := *tour
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = s.tick()
	s.Tours[t.ID] = t
	return &t, nil
}

func (s *Store) GetTour(ctx context.Context, id uuid.UUID) (*models.VirtualTourRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.Tours[id]
	if !ok {
		return nil, notFound("virtual tour")
	}
	rec := models.VirtualTourRecord{VirtualTour: t}
	if r, ok := s.Rooms[t.RoomID]; ok {
		rec.Room = &r
	}
	return &rec, nil
}

func (s *Store) ListTours(ctx context.Context, status models.RecordStatus, roomID *uuid.UUID) ([]models.VirtualTourRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListTours"); err != nil {
		return nil, err
	}
	tours := make([]models.VirtualTour, 0, len(s.Tours))
	for _, t := range s.Tours {
		if status != "" && t.Status != status {
			continue
		}
		if roomID != nil && t.RoomID != *roomID {
			continue
		}
		tours = append(tours, t)
	}
	sort.Slice(tours, func(i, j int) bool { return tours[i].CreatedAt.Before(tours[j].CreatedAt) })
	out := make([]models.VirtualTourRecord, 0, len(tours))
	for _, t := range tours {
		rec := models.VirtualTourRecord{VirtualTour: t}
		if r, ok := s.Rooms[t.RoomID]; ok {
			rec.Room = &r
		}
		out = append(out, rec)
	}
	return out, nil
}

// ---- status and audit ----

func (s *Store) UpdateStatus(ctx context.Context, target models.StatusTarget, id uuid.UUID, status string, reason *string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpdateStatus"); err != nil {
		return "", err
	}
	var previous string
	switch target.Table {
	case models.RoomsTable:
		r, ok := s.Rooms[id]
		if !ok {
			return "", notFound(target.Entity)
		}
		previous, r.Status = string(r.Status), models.RoomStatus(status)
		s.Rooms[id] = r
	case models.RoomReservationsTable:
		r, ok := s.RoomReservations[id]
		if !ok {
			return "", notFound(target.Entity)
		}
		previous, r.Status, r.Reason = string(r.Status), models.ReservationStatus(status), reason
		s.RoomReservations[id] = r
	case models.EventReservationsTable:
		r, ok := s.EventReservations[id]
		if !ok {
			return "", notFound(target.Entity)
		}
		previous, r.Status, r.Reason = string(r.Status), models.ReservationStatus(status), reason
		s.EventReservations[id] = r
	case models.TableReservationsTable:
		r, ok := s.TableReservations[id]
		if !ok {
			return "", notFound(target.Entity)
		}
		previous, r.Status, r.Reason = string(r.Status), models.ReservationStatus(status), reason
		s.TableReservations[id] = r
	case models.EventVenuesTable:
		v, ok := s.Venues[id]
		if !ok {
			return "", notFound(target.Entity)
		}
		previous, v.Status = string(v.Status), models.RecordStatus(status)
		s.Venues[id] = v
	case models.EventFoodPackagesTable:
		p, ok := s.Packages[id]
		if !ok {
			return "", notFound(target.Entity)
		}
		previous, p.Status = string(p.Status), models.RecordStatus(status)
		s.Packages[id] = p
	case models.FoodItemsTable:
		f, ok := s.FoodItems[id]
		if !ok {
			return "", notFound(target.Entity)
		}
		previous, f.Status = string(f.Status), models.ItemStatus(status)
		s.FoodItems[id] = f
	case models.DrinksTable:
		d, ok := s.Drinks[id]
		if !ok {
			return "", notFound(target.Entity)
		}
		previous, d.Status = string(d.Status), models.ItemStatus(status)
		s.Drinks[id] = d
	case models.VirtualToursTable:
		t, ok := s.Tours[id]
		if !ok {
			return "", notFound(target.Entity)
		}
		previous, t.Status = string(t.Status), models.RecordStatus(status)
		s.Tours[id] = t
	case models.DiningTablesTable:
		t, ok := s.Tables[id]
		if !ok {
			return "", notFound(target.Entity)
		}
		previous, t.Status = string(t.Status), models.RecordStatus(status)
		s.Tables[id] = t
	case models.StaffTable:
		m, ok := s.Staff[id]
		if !ok {
			return "", notFound(target.Entity)
		}
		previous, m.Status = string(m.Status), models.StaffStatus(status)
		s.Staff[id] = m
	default:
		return "", fmt.Errorf("unknown status table %q", target.Table)
	}
	return previous, nil
}

func (s *Store) RecordStatusChange(ctx context.Context, change *models.StatusChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("RecordStatusChange"); err != nil {
		return err
	}
	c := *change
	if c.ChangedAt.IsZero() {
		c.ChangedAt = s.tick()
	}
	s.StatusChanges = append(s.StatusChanges, c)
	return nil
}

func (s *Store) ListStatusChanges(ctx context.Context, entity, entityID string, limit int) ([]models.StatusChange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.StatusChange{}
	for i := len(s.StatusChanges) - 1; i >= 0; i-- {
		c := s.StatusChanges[i]
		if (entity == "" || c.Entity == entity) && (entityID == "" || c.EntityID == entityID) {
			out = append(out, c)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// ---- tour views ----

func (s *Store) TrackTourView(ctx context.Context, view *models.TourView) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("TrackTourView"); err != nil {
		return false, err
	}
	now := time.Now().UTC()
	for _, v := range s.TourViews {
		if v.TourID == view.TourID && v.SessionID == view.SessionID && now.Sub(v.ViewedAt) < models.TourViewWindow {
			return false, nil
		}
	}
	v := *view
	v.ViewedAt = now
	v.ExpiresAt = now.Add(models.TourViewTTL)
	s.TourViews = append(s.TourViews, v)
	return true, nil
}

func (s *Store) GetTourViewStats(ctx context.Context, tourID string) (*models.TourViewStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &models.TourViewStats{TourID: tourID}
	sessions := map[string]bool{}
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	startOfWeek := startOfDay.AddDate(0, 0, -int(now.Weekday()))
	for _, v := range s.TourViews {
		if v.TourID != tourID {
			continue
		}
		stats.TotalViews++
		sessions[v.SessionID] = true
		if !v.ViewedAt.Before(startOfDay) {
			stats.ViewsToday++
		}
		if !v.ViewedAt.Before(startOfWeek) {
			stats.ViewsThisWeek++
		}
	}
	stats.UniqueViews = int64(len(sessions))
	return stats, nil
}

// ---- wishlist ----

func (s *Store) AddToWishlist(ctx context.Context, guestID uuid.UUID, itemID string, itemType models.WishlistItemType) (*models.Wishlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("AddToWishlist"); err != nil {
		return nil, err
	}
	wl, ok := s.Wishlists[guestID]
	if !ok {
		wl = &models.Wishlist{GuestID: guestID.String(), Items: map[string]models.WishlistItem{}, CreatedAt: s.tick()}
		s.Wishlists[guestID] = wl
	}
	wl.Items[itemID] = models.WishlistItem{ItemID: itemID, ItemType: itemType, AddedAt: s.tick()}
	wl.UpdatedAt = s.clock
	return cloneWishlist(wl), nil
}

func (s *Store) RemoveFromWishlist(ctx context.Context, guestID uuid.UUID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if wl, ok := s.Wishlists[guestID]; ok {
		delete(wl.Items, itemID)
	}
	return nil
}

func (s *Store) GetWishlist(ctx context.Context, guestID uuid.UUID) (*models.Wishlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wl, ok := s.Wishlists[guestID]
	if !ok {
		return &models.Wishlist{GuestID: guestID.String(), Items: map[string]models.WishlistItem{}}, nil
	}
	return cloneWishlist(wl), nil
}

func cloneWishlist(wl *models.Wishlist) *models.Wishlist {
	c := *wl
	c.Items = make(map[string]models.WishlistItem, len(wl.Items))
	for k, v := range wl.Items {
		c.Items[k] = v
	}
	return &c
}
