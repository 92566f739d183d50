package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/models"
	"github.com/joshua-takyi/resort/internal/models/fakes"
	"github.com/stretchr/testify/require"
)

const testPlaceholder = "https://img.example.com/placeholder.png"

type fixture struct {
	ctx      context.Context
	store    *fakes.Store
	identity *fakes.Identity

	auth     *AuthService
	guests   *GuestService
	staff    *StaffService
	rooms    *RoomService
	events   *EventService
	catalog  *CatalogService
	tables   *TableService
	tours    *TourService
	wishlist *WishlistService
	reports  *ReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := fakes.NewStore()
	identity := fakes.NewIdentity()
	media := helpers.NewMediaUploader(nil)
	status := NewStatusChanger(store, store, logger)

	return &fixture{
		ctx:      context.Background(),
		store:    store,
		identity: identity,
		auth:     NewAuthService(store, store, identity, logger),
		guests:   NewGuestService(store, identity, logger),
		staff:    NewStaffService(store, identity, status, logger),
		rooms:    NewRoomService(store, store, media, status, testPlaceholder, logger),
		events:   NewEventService(store, store, store, media, status, testPlaceholder, logger),
		catalog:  NewCatalogService(store, status, logger),
		tables:   NewTableService(store, store, status, logger),
		tours:    NewTourService(store, store, store, media, status, testPlaceholder, logger),
		wishlist: NewWishlistService(store, store, store, logger),
		reports:  NewReportService(store, store, store, store, logger),
	}
}

func (f *fixture) guest(t *testing.T, first string) (*models.Guest, *models.Principal) {
	t.Helper()
	g, err := f.store.CreateGuest(f.ctx, &models.Guest{
		UID:       uuid.NewString(),
		FirstName: first,
		LastName:  "Mensah",
		Email:     first + "@example.com",
		Phone:     "0244000000",
	}, "hash")
	require.NoError(t, err)
	return g, guestPrincipal(g)
}

func staffActor(role models.StaffRole) *models.Principal {
	return &models.Principal{UID: uuid.NewString(), Kind: models.PrincipalStaff, Role: role, StaffID: uuid.New()}
}

func (f *fixture) room(t *testing.T, number string, rate, discount float64, maxPax int, status models.RoomStatus) *models.Room {
	t.Helper()
	r, err := f.store.CreateRoom(f.ctx, &models.Room{
		Number:   number,
		Type:     "Deluxe",
		MaxPax:   maxPax,
		Rate:     rate,
		Discount: discount,
		Status:   status,
		ImageURL: "https://img.example.com/" + number + ".jpg",
	})
	require.NoError(t, err)
	return r
}

func (f *fixture) venue(t *testing.T, name string, maxPax int, price float64, status models.RecordStatus) *models.EventVenue {
	t.Helper()
	v, err := f.store.CreateVenue(f.ctx, &models.EventVenue{Name: name, MaxPax: maxPax, Price: price, Status: status})
	require.NoError(t, err)
	return v
}

func (f *fixture) pkg(t *testing.T, name string, price float64, maxItems int, status models.RecordStatus) *models.EventFoodPackage {
	t.Helper()
	p, err := f.store.CreatePackage(f.ctx, &models.EventFoodPackage{Name: name, Price: price, MaxItems: maxItems, Status: status})
	require.NoError(t, err)
	return p
}

func (f *fixture) food(t *testing.T, name string, status models.ItemStatus) *models.FoodItem {
	t.Helper()
	item, err := f.store.CreateFoodItem(f.ctx, &models.FoodItem{Name: name, Category: "Mains", Price: 50, Status: status})
	require.NoError(t, err)
	return item
}

func (f *fixture) table(t *testing.T, name string, capacity int, status models.RecordStatus) *models.DiningTable {
	t.Helper()
	tbl, err := f.store.CreateDiningTable(f.ctx, &models.DiningTable{Name: name, Capacity: capacity, Status: status})
	require.NoError(t, err)
	return tbl
}
