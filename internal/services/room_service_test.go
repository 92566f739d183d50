package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/joshua-takyi/resort/internal/failure"
	"github.com/joshua-takyi/resort/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stay(room *models.Room, in, out string, guests int) models.RoomReservationRequest {
	return models.RoomReservationRequest{RoomID: room.ID.String(), CheckIn: in, CheckOut: out, NoGuest: guests}
}

func TestCreateRoomReservationCost(t *testing.T) {
	f := newFixture(t)
	_, me := f.guest(t, "ama")
	room := f.room(t, "101", 200, 10, 2, models.RoomAvailable)

	res, err := f.rooms.CreateReservation(f.ctx, me, stay(room, "2024-06-01", "2024-06-03", 2))
	require.NoError(t, err)
	assert.Equal(t, me.GuestID, res.GuestID)
	assert.Equal(t, 180.0, res.FinalRate)
	assert.Equal(t, 360.0, res.TotalCost)
	assert.Equal(t, models.ReservationConfirmed, res.Status)
	assert.Equal(t, 2, res.Nights())
}

func TestCreateRoomReservationRejections(t *testing.T) {
	f := newFixture(t)
	_, me := f.guest(t, "ama")
	room := f.room(t, "101", 100, 0, 2, models.RoomAvailable)
	closed := f.room(t, "102", 100, 0, 2, models.RoomMaintenance)

	tests := []struct {
		name string
		req  models.RoomReservationRequest
		code int
	}{
		{"missing room", models.RoomReservationRequest{CheckIn: "2024-06-01", CheckOut: "2024-06-02", NoGuest: 1}, http.StatusBadRequest},
		{"zero nights", stay(room, "2024-06-01", "2024-06-01", 1), http.StatusBadRequest},
		{"reversed dates", stay(room, "2024-06-03", "2024-06-01", 1), http.StatusBadRequest},
		{"bad date", stay(room, "June 1", "2024-06-02", 1), http.StatusBadRequest},
		{"over capacity", stay(room, "2024-06-01", "2024-06-02", 3), http.StatusBadRequest},
		{"maintenance", stay(closed, "2024-06-01", "2024-06-02", 1), http.StatusBadRequest},
		{"unknown room", models.RoomReservationRequest{RoomID: "6f1c1f0e-8c57-4a43-9c11-2f0d1c2b3a4d", CheckIn: "2024-06-01", CheckOut: "2024-06-02", NoGuest: 1}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.rooms.CreateReservation(f.ctx, me, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.code, failure.GetCode(err))
		})
	}

	rooms, _, _, _ := f.store.Counts()
	assert.Zero(t, rooms)
}

func TestCreateRoomReservationOverlap(t *testing.T) {
	f := newFixture(t)
	_, me := f.guest(t, "ama")
	room := f.room(t, "101", 100, 0, 2, models.RoomAvailable)

	_, err := f.rooms.CreateReservation(f.ctx, me, stay(room, "2024-06-01", "2024-06-04", 1))
	require.NoError(t, err)

	_, err = f.rooms.CreateReservation(f.ctx, me, stay(room, "2024-06-03", "2024-06-05", 1))
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	// checking in on the previous guest's check-out day is fine
	_, err = f.rooms.CreateReservation(f.ctx, me, stay(room, "2024-06-04", "2024-06-05", 1))
	assert.NoError(t, err)
}

func TestCanceledStayFreesRoom(t *testing.T) {
	f := newFixture(t)
	_, me := f.guest(t, "ama")
	room := f.room(t, "101", 100, 0, 2, models.RoomAvailable)

	res, err := f.rooms.CreateReservation(f.ctx, me, stay(room, "2024-06-01", "2024-06-04", 1))
	require.NoError(t, err)
	_, err = f.rooms.ChangeReservationStatus(f.ctx, me, res.ID, "canceled", "plans changed")
	require.NoError(t, err)

	free, err := f.rooms.Availability(f.ctx, "2024-06-02", "2024-06-03", 1)
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, room.ID, free[0].ID)
}

func TestRoomReservationGuestRules(t *testing.T) {
	f := newFixture(t)
	_, me := f.guest(t, "ama")
	other, otherActor := f.guest(t, "yaw")
	room := f.room(t, "101", 100, 0, 2, models.RoomAvailable)

	req := stay(room, "2024-06-01", "2024-06-02", 1)
	req.GuestID = other.ID.String()
	_, err := f.rooms.CreateReservation(f.ctx, me, req)
	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))

	desk := staffActor(models.RoleFrontDesk)
	_, err = f.rooms.CreateReservation(f.ctx, desk, stay(room, "2024-06-01", "2024-06-02", 1))
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	res, err := f.rooms.CreateReservation(f.ctx, desk, req)
	require.NoError(t, err)
	assert.Equal(t, other.ID, res.GuestID)

	// someone else's booking reads as missing and cannot be cancelled
	_, err = f.rooms.GetReservation(f.ctx, me, res.ID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	_, err = f.rooms.ChangeReservationStatus(f.ctx, me, res.ID, "canceled", "")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	_, err = f.rooms.ChangeReservationStatus(f.ctx, otherActor, res.ID, "completed", "")
	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
}

func TestGetRoomReservationIsStable(t *testing.T) {
	f := newFixture(t)
	guest, me := f.guest(t, "ama")
	room := f.room(t, "101", 150, 0, 2, models.RoomAvailable)
	res, err := f.rooms.CreateReservation(f.ctx, me, stay(room, "2024-06-01", "2024-06-03", 2))
	require.NoError(t, err)

	first, err := f.rooms.GetReservation(f.ctx, me, res.ID)
	require.NoError(t, err)
	second, err := f.rooms.GetReservation(f.ctx, me, res.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, 2, first.Nights)
	assert.Equal(t, "Deluxe", first.RoomType)
	assert.Equal(t, room.ImageURL, first.RoomImage)
	assert.Equal(t, guest.FullName(), first.GuestName)
}

func TestRoomReservationDetailsPlaceholders(t *testing.T) {
	f := newFixture(t)
	_, me := f.guest(t, "ama")
	room := f.room(t, "101", 150, 0, 2, models.RoomAvailable)
	res, err := f.rooms.CreateReservation(f.ctx, me, stay(room, "2024-06-01", "2024-06-03", 2))
	require.NoError(t, err)

	delete(f.store.Rooms, room.ID)
	d, err := f.rooms.GetReservation(f.ctx, me, res.ID)
	require.NoError(t, err)
	assert.Nil(t, d.Room)
	assert.Equal(t, models.UnknownLabel, d.RoomType)
	assert.Equal(t, testPlaceholder, d.RoomImage)
}

func TestListGuestRoomReservationsEmpty(t *testing.T) {
	f := newFixture(t)
	guest, me := f.guest(t, "ama")

	list, err := f.rooms.ListGuestReservations(f.ctx, me, guest.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestRoomListForDateMovements(t *testing.T) {
	f := newFixture(t)
	_, me := f.guest(t, "ama")
	a := f.room(t, "101", 100, 0, 2, models.RoomAvailable)
	b := f.room(t, "102", 100, 0, 2, models.RoomAvailable)
	c := f.room(t, "103", 100, 0, 2, models.RoomAvailable)
	d := f.room(t, "104", 100, 0, 2, models.RoomAvailable)

	canceled, err := f.rooms.CreateReservation(f.ctx, me, stay(d, "2024-06-05", "2024-06-06", 1))
	require.NoError(t, err)
	_, err = f.rooms.ChangeReservationStatus(f.ctx, me, canceled.ID, "canceled", "")
	require.NoError(t, err)

	_, err = f.rooms.CreateReservation(f.ctx, me, stay(a, "2024-06-05", "2024-06-07", 1))
	require.NoError(t, err)
	_, err = f.rooms.CreateReservation(f.ctx, me, stay(b, "2024-06-03", "2024-06-05", 1))
	require.NoError(t, err)
	_, err = f.rooms.CreateReservation(f.ctx, me, stay(c, "2024-06-04", "2024-06-08", 1))
	require.NoError(t, err)

	board, err := f.rooms.ListForDate(f.ctx, "2024-06-05")
	require.NoError(t, err)
	require.Len(t, board, 3)

	moves := map[string]string{}
	for _, d := range board {
		moves[d.Room.Number] = d.Movement
	}
	assert.Equal(t, models.MovementArrival, moves["101"])
	assert.Equal(t, models.MovementDeparture, moves["102"])
	assert.Equal(t, models.MovementInHouse, moves["103"])
	assert.NotContains(t, moves, "104")
}

func TestRoomStatusChangeIsAudited(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "101", 100, 0, 2, models.RoomAvailable)
	manager := staffActor(models.RoleManager)

	change, err := f.rooms.ChangeRoomStatus(f.ctx, manager, room.ID, "maintenance")
	require.NoError(t, err)
	assert.Equal(t, "AVAILABLE", change.FromStatus)
	assert.Equal(t, "MAINTENANCE", change.ToStatus)

	// transitions are unconditional, even back and forth
	_, err = f.rooms.ChangeRoomStatus(f.ctx, manager, room.ID, "available")
	require.NoError(t, err)

	require.Len(t, f.store.StatusChanges, 2)
	assert.Equal(t, "room", f.store.StatusChanges[0].Entity)
	assert.Equal(t, "MANAGER", f.store.StatusChanges[0].ActorRole)

	_, err = f.rooms.ChangeRoomStatus(f.ctx, manager, room.ID, "demolished")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestStatusChangeSurvivesAuditFailure(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "101", 100, 0, 2, models.RoomAvailable)
	f.store.Fail("RecordStatusChange", errors.New("mongo down"))

	_, err := f.rooms.ChangeRoomStatus(f.ctx, staffActor(models.RoleManager), room.ID, "occupied")
	require.NoError(t, err)
	assert.Equal(t, models.RoomOccupied, f.store.Rooms[room.ID].Status)
	assert.Empty(t, f.store.StatusChanges)
}

func TestRoomStoreFailureIsInternal(t *testing.T) {
	f := newFixture(t)
	f.store.Fail("ListRooms", errors.New("connection reset"))

	_, err := f.rooms.ListRooms(f.ctx)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestCreateRoomWithImage(t *testing.T) {
	f := newFixture(t)

	view, err := f.rooms.CreateRoom(f.ctx, models.RoomRequest{
		Number: "201", Type: "Suite", MaxPax: 4, Rate: 300, Discount: 25,
		Image: "https://img.example.com/201.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, 225.0, view.FinalRate)
	assert.Equal(t, "https://img.example.com/201.jpg", view.ImageURL)

	_, err = f.rooms.CreateRoom(f.ctx, models.RoomRequest{Number: "202", Type: "Suite", MaxPax: 4, Rate: 300, Image: "data:image/png;base64,AAAA"})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestRoomAvailabilityRejectsTrailingDateText(t *testing.T) {
	f := newFixture(t)
	f.room(t, "101", 100, 0, 2, models.RoomAvailable)

	_, err := f.rooms.Availability(f.ctx, "2024-06-01garbage", "2024-06-03", 1)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
