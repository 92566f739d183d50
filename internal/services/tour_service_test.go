package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/resort/internal/failure"
	"github.com/joshua-takyi/resort/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListTours(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "101", 100, 0, 2, models.RoomAvailable)

	tour, err := f.tours.CreateTour(f.ctx, models.VirtualTourRequest{
		RoomID: room.ID.String(),
		Title:  "Ocean suite walkthrough",
		Media:  "https://cdn.example.com/tours/101.mp4",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/tours/101.mp4", tour.MediaURL)
	assert.Equal(t, "101", tour.RoomNumber)

	_, err = f.tours.CreateTour(f.ctx, models.VirtualTourRequest{RoomID: uuid.NewString(), Title: "Ghost", Media: "https://cdn.example.com/x.mp4"})
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	_, err = f.tours.CreateTour(f.ctx, models.VirtualTourRequest{RoomID: room.ID.String(), Title: "Bad", Media: "ftp://x"})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	list, err := f.tours.ListRoomTours(f.ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = f.tours.ChangeTourStatus(f.ctx, staffActor(models.RoleManager), tour.ID, "inactive")
	require.NoError(t, err)
	active, err := f.tours.ListTours(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestTourWithMissingRoomUsesPlaceholders(t *testing.T) {
	f := newFixture(t)
	orphan, err := f.store.CreateTour(f.ctx, &models.VirtualTour{RoomID: uuid.New(), Title: "Lobby", MediaURL: "https://cdn.example.com/lobby.mp4", Status: models.RecordActive})
	require.NoError(t, err)

	list, err := f.tours.ListTours(f.ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, orphan.ID, list[0].ID)
	assert.Equal(t, models.UnknownLabel, list[0].RoomType)
	assert.Equal(t, testPlaceholder, list[0].RoomImage)
	assert.Nil(t, list[0].Room)
}

func TestRecordTourViewDedupesSession(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "101", 100, 0, 2, models.RoomAvailable)
	tour, err := f.tours.CreateTour(f.ctx, models.VirtualTourRequest{RoomID: room.ID.String(), Title: "Suite", Media: "https://cdn.example.com/101.mp4"})
	require.NoError(t, err)

	first, err := f.tours.RecordView(f.ctx, nil, tour.ID, ViewRequest{})
	require.NoError(t, err)
	assert.True(t, first.Recorded)
	assert.NotEmpty(t, first.SessionID)

	again, err := f.tours.RecordView(f.ctx, nil, tour.ID, ViewRequest{SessionID: first.SessionID})
	require.NoError(t, err)
	assert.False(t, again.Recorded)

	_, me := f.guest(t, "ama")
	other, err := f.tours.RecordView(f.ctx, me, tour.ID, ViewRequest{SessionID: "tab-2"})
	require.NoError(t, err)
	assert.True(t, other.Recorded)
	require.Len(t, f.store.TourViews, 2)
	assert.Equal(t, me.UID, *f.store.TourViews[1].GuestUID)
	assert.WithinDuration(t, time.Now().Add(models.TourViewTTL), f.store.TourViews[1].ExpiresAt, time.Minute)

	stats, err := f.tours.Stats(f.ctx, tour.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalViews)
	assert.EqualValues(t, 2, stats.UniqueViews)
	assert.EqualValues(t, 2, stats.ViewsToday)

	_, err = f.tours.RecordView(f.ctx, nil, uuid.New(), ViewRequest{})
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestWishlist(t *testing.T) {
	f := newFixture(t)
	_, me := f.guest(t, "ama")
	room := f.room(t, "101", 100, 0, 2, models.RoomAvailable)
	venue := f.venue(t, "Garden", 50, 1000, models.RecordActive)

	_, err := f.wishlist.Add(f.ctx, me, room.ID.String(), "room")
	require.NoError(t, err)
	wl, err := f.wishlist.Add(f.ctx, me, venue.ID.String(), "venue")
	require.NoError(t, err)
	assert.Len(t, wl.Items, 2)

	_, err = f.wishlist.Add(f.ctx, me, room.ID.String(), "venue")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	_, err = f.wishlist.Add(f.ctx, me, "not-a-uuid", "room")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	_, err = f.wishlist.Add(f.ctx, me, room.ID.String(), "event")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	require.NoError(t, f.wishlist.Remove(f.ctx, me, room.ID.String()))
	wl, err = f.wishlist.Get(f.ctx, me)
	require.NoError(t, err)
	assert.Len(t, wl.Items, 1)
	assert.Contains(t, wl.Items, venue.ID.String())

	_, err = f.wishlist.Get(f.ctx, staffActor(models.RoleManager))
	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
}

func TestEmptyWishlist(t *testing.T) {
	f := newFixture(t)
	_, me := f.guest(t, "ama")

	wl, err := f.wishlist.Get(f.ctx, me)
	require.NoError(t, err)
	assert.NotNil(t, wl.Items)
	assert.Empty(t, wl.Items)
}
