package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/resort/internal/middleware"
	"github.com/joshua-takyi/resort/internal/models"
	"github.com/joshua-takyi/resort/internal/services"
)

func ListVenues(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		venues, err := e.ListVenues(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		list(c, venues)
	}
}

func GetVenue(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id", "venue id")
		if !valid {
			return
		}
		venue, err := e.GetVenue(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, venue)
	}
}

func CreateVenue(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.VenueRequest
		if !bindJSON(c, &req) {
			return
		}
		venue, err := e.CreateVenue(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		created(c, "venue_id", venue.ID, "Venue created successfully")
	}
}

func UpdateVenue(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id", "venue id")
		if !valid {
			return
		}
		var req models.VenueRequest
		if !bindJSON(c, &req) {
			return
		}
		venue, err := e.UpdateVenue(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, venue)
	}
}

func ChangeVenueStatus(e *services.EventService) gin.HandlerFunc {
	return statusHandler("venue id", e.ChangeVenueStatus)
}

func ListPackages(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		packages, err := e.ListPackages(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		list(c, packages)
	}
}

func CreatePackage(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.PackageRequest
		if !bindJSON(c, &req) {
			return
		}
		pkg, err := e.CreatePackage(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		created(c, "package_id", pkg.ID, "Package created successfully")
	}
}

func UpdatePackage(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id", "package id")
		if !valid {
			return
		}
		var req models.PackageRequest
		if !bindJSON(c, &req) {
			return
		}
		pkg, err := e.UpdatePackage(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, pkg)
	}
}

func ChangePackageStatus(e *services.EventService) gin.HandlerFunc {
	return statusHandler("package id", e.ChangePackageStatus)
}

func CreateEventReservation(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.EventReservationRequest
		if !bindJSON(c, &req) {
			return
		}
		id, err := e.CreateReservation(c.Request.Context(), middleware.GetPrincipal(c), req)
		if err != nil {
			respondError(c, err)
			return
		}
		created(c, "reservation_id", id, "Event reserved successfully")
	}
}

func GetEventReservation(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id", "reservation id")
		if !valid {
			return
		}
		res, err := e.GetReservation(c.Request.Context(), middleware.GetPrincipal(c), id)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, res)
	}
}

func ListGuestEventReservations(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id", "guest id")
		if !valid {
			return
		}
		res, err := e.ListGuestReservations(c.Request.Context(), middleware.GetPrincipal(c), id)
		if err != nil {
			respondError(c, err)
			return
		}
		list(c, res)
	}
}

func ListEventReservationsForDate(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := e.ListForDate(c.Request.Context(), c.Query("date"))
		if err != nil {
			respondError(c, err)
			return
		}
		list(c, res)
	}
}

func ChangeEventReservationStatus(e *services.EventService) gin.HandlerFunc {
	return reservationStatusHandler("reservation id", e.ChangeReservationStatus)
}
