package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/joshua-takyi/resort/internal/failure"
	"github.com/joshua-takyi/resort/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seating(table *models.DiningTable, at string, guests int) models.TableReservationRequest {
	return models.TableReservationRequest{
		TableID:   table.ID.String(),
		GuestName: "Walk-in",
		Date:      "2024-06-10",
		Time:      at,
		NoGuest:   guests,
	}
}

func TestSeatingsClash(t *testing.T) {
	day := models.NewDate(2024, time.June, 10)
	at := models.NewClockTime(19, 0)
	assert.True(t, seatingsClash(day, at, day, models.NewClockTime(19, 0)))
	assert.True(t, seatingsClash(day, at, day, models.NewClockTime(20, 59)))
	assert.True(t, seatingsClash(day, at, day, models.NewClockTime(17, 1)))
	assert.False(t, seatingsClash(day, at, day, models.NewClockTime(21, 0)))
	assert.False(t, seatingsClash(day, at, day, models.NewClockTime(17, 0)))
	assert.False(t, seatingsClash(day, at, day.AddDays(1), at))
}

func TestSeatingsClashAcrossMidnight(t *testing.T) {
	day := models.NewDate(2024, time.June, 10)
	late := models.NewClockTime(23, 30)

	assert.True(t, seatingsClash(day, late, day.AddDays(1), models.NewClockTime(0, 30)))
	assert.True(t, seatingsClash(day.AddDays(1), models.NewClockTime(1, 29), day, late))
	assert.False(t, seatingsClash(day, late, day.AddDays(1), models.NewClockTime(1, 30)))
}

func TestCreateTableReservationAcrossMidnight(t *testing.T) {
	f := newFixture(t)
	desk := staffActor(models.RoleRestaurant)
	window := f.table(t, "Window", 4, models.RecordActive)

	_, err := f.tables.CreateReservation(f.ctx, desk, seating(window, "23:30", 2))
	require.NoError(t, err)

	early := seating(window, "00:30", 2)
	early.Date = "2024-06-11"
	_, err = f.tables.CreateReservation(f.ctx, desk, early)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	slots, err := f.tables.Availability(f.ctx, "2024-06-11", "00:30", 2)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.False(t, slots[0].Available)

	early.Time = "01:30"
	_, err = f.tables.CreateReservation(f.ctx, desk, early)
	assert.NoError(t, err)
}

func TestCreateTableReservation(t *testing.T) {
	f := newFixture(t)
	desk := staffActor(models.RoleRestaurant)
	window := f.table(t, "Window", 4, models.RecordActive)

	res, err := f.tables.CreateReservation(f.ctx, desk, seating(window, "19:00", 4))
	require.NoError(t, err)
	assert.Nil(t, res.GuestID)
	assert.Equal(t, models.ReservationConfirmed, res.Status)

	_, err = f.tables.CreateReservation(f.ctx, desk, seating(window, "20:30", 2))
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	_, err = f.tables.CreateReservation(f.ctx, desk, seating(window, "21:00", 2))
	assert.NoError(t, err)
}

func TestCreateTableReservationRejections(t *testing.T) {
	f := newFixture(t)
	desk := staffActor(models.RoleRestaurant)
	window := f.table(t, "Window", 4, models.RecordActive)
	patio := f.table(t, "Patio", 6, models.RecordInactive)

	noName := seating(window, "19:00", 2)
	noName.GuestName = " "

	tests := []struct {
		name string
		req  models.TableReservationRequest
		code int
	}{
		{"missing name", noName, http.StatusBadRequest},
		{"bad time", seating(window, "7pm", 2), http.StatusBadRequest},
		{"over capacity", seating(window, "19:00", 5), http.StatusBadRequest},
		{"inactive table", seating(patio, "19:00", 2), http.StatusBadRequest},
		{"unknown table", models.TableReservationRequest{TableID: "6f1c1f0e-8c57-4a43-9c11-2f0d1c2b3a4d", GuestName: "x", Date: "2024-06-10", Time: "19:00", NoGuest: 1}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.tables.CreateReservation(f.ctx, desk, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.code, failure.GetCode(err))
		})
	}
	_, _, _, tables := f.store.Counts()
	assert.Zero(t, tables)
}

func TestGuestTableReservationIsLinked(t *testing.T) {
	f := newFixture(t)
	guest, me := f.guest(t, "ama")
	window := f.table(t, "Window", 4, models.RecordActive)

	res, err := f.tables.CreateReservation(f.ctx, me, seating(window, "12:00", 2))
	require.NoError(t, err)
	require.NotNil(t, res.GuestID)
	assert.Equal(t, guest.ID, *res.GuestID)
}

func TestTableAvailability(t *testing.T) {
	f := newFixture(t)
	desk := staffActor(models.RoleRestaurant)
	window := f.table(t, "Window", 4, models.RecordActive)
	f.table(t, "Bar", 2, models.RecordActive)
	f.table(t, "Corner", 6, models.RecordActive)
	f.table(t, "Patio", 8, models.RecordInactive)

	_, err := f.tables.CreateReservation(f.ctx, desk, seating(window, "19:00", 2))
	require.NoError(t, err)

	list, err := f.tables.Availability(f.ctx, "2024-06-10", "20:00", 3)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Corner", list[0].Name)
	assert.True(t, list[0].Available)
	assert.Equal(t, "Window", list[1].Name)
	assert.False(t, list[1].Available)

	later, err := f.tables.Availability(f.ctx, "2024-06-10", "21:30", 3)
	require.NoError(t, err)
	assert.True(t, later[1].Available)
}

func TestTableListForDate(t *testing.T) {
	f := newFixture(t)
	desk := staffActor(models.RoleRestaurant)
	window := f.table(t, "Window", 4, models.RecordActive)

	res, err := f.tables.CreateReservation(f.ctx, desk, seating(window, "19:00", 2))
	require.NoError(t, err)
	delete(f.store.Tables, window.ID)

	list, err := f.tables.ListForDate(f.ctx, "2024-06-10")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, res.ID, list[0].ID)
	assert.Equal(t, models.UnknownLabel, list[0].TableName)

	change, err := f.tables.ChangeReservationStatus(f.ctx, desk, res.ID, "no show", "")
	require.NoError(t, err)
	assert.Equal(t, "NO SHOW", change.ToStatus)
	assert.Nil(t, change.Reason)
}

func TestListTablesSortedByName(t *testing.T) {
	f := newFixture(t)
	f.table(t, "window", 4, models.RecordActive)
	f.table(t, "Bar", 2, models.RecordActive)

	list, err := f.tables.ListTables(f.ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bar", list[0].Name)
}
