package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/resort/internal/middleware"
	"github.com/joshua-takyi/resort/internal/models"
	"github.com/joshua-takyi/resort/internal/services"
)

func ListRooms(r *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rooms, err := r.ListRooms(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		list(c, rooms)
	}
}

func GetRoom(r *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id", "room id")
		if !valid {
			return
		}
		room, err := r.GetRoom(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, room)
	}
}

func CreateRoom(r *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RoomRequest
		if !bindJSON(c, &req) {
			return
		}
		room, err := r.CreateRoom(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		created(c, "room_id", room.ID, "Room created successfully")
	}
}

func UpdateRoom(r *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id", "room id")
		if !valid {
			return
		}
		var req models.RoomRequest
		if !bindJSON(c, &req) {
			return
		}
		room, err := r.UpdateRoom(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, room)
	}
}

func ChangeRoomStatus(r *services.RoomService) gin.HandlerFunc {
	return statusHandler("room id", r.ChangeRoomStatus)
}

func RoomAvailability(r *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		guests, valid := queryInt(c, "guests", 1)
		if !valid {
			return
		}
		rooms, err := r.Availability(c.Request.Context(), c.Query("check_in"), c.Query("check_out"), guests)
		if err != nil {
			respondError(c, err)
			return
		}
		list(c, rooms)
	}
}

func CreateRoomReservation(r *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RoomReservationRequest
		if !bindJSON(c, &req) {
			return
		}
		res, err := r.CreateReservation(c.Request.Context(), middleware.GetPrincipal(c), req)
		if err != nil {
			respondError(c, err)
			return
		}
		created(c, "reservation_id", res.ID, "Room reserved successfully")
	}
}

func GetRoomReservation(r *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id", "reservation id")
		if !valid {
			return
		}
		res, err := r.GetReservation(c.Request.Context(), middleware.GetPrincipal(c), id)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, res)
	}
}

func ListGuestRoomReservations(r *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id", "guest id")
		if !valid {
			return
		}
		res, err := r.ListGuestReservations(c.Request.Context(), middleware.GetPrincipal(c), id)
		if err != nil {
			respondError(c, err)
			return
		}
		list(c, res)
	}
}

// ListRoomReservationsForDate is the front desk board of arrivals, departures and in-house stays.
func ListRoomReservationsForDate(r *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := r.ListForDate(c.Request.Context(), c.Query("date"))
		if err != nil {
			respondError(c, err)
			return
		}
		list(c, res)
	}
}

func ChangeRoomReservationStatus(r *services.RoomService) gin.HandlerFunc {
	return reservationStatusHandler("reservation id", r.ChangeReservationStatus)
}
