package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/middleware"
	"github.com/joshua-takyi/resort/internal/models"
	"github.com/joshua-takyi/resort/internal/services"
)

// SessionHeader carries the browser session used to dedupe tour views.
const SessionHeader = "X-Session-ID"

func ListTours(t *services.TourService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tours, err := t.ListTours(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		list(c, tours)
	}
}

func ListRoomTours(t *services.TourService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id", "room id")
		if !valid {
			return
		}
		tours, err := t.ListRoomTours(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		list(c, tours)
	}
}

func CreateTour(t *services.TourService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.VirtualTourRequest
		if !bindJSON(c, &req) {
			return
		}
		tour, err := t.CreateTour(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(tour, "Tour created successfully"))
	}
}

func ChangeTourStatus(t *services.TourService) gin.HandlerFunc {
	return statusHandler("tour id", t.ChangeTourStatus)
}

// RecordTourView echoes the session id back so anonymous clients can reuse it.
func RecordTourView(t *services.TourService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id", "tour id")
		if !valid {
			return
		}
		res, err := t.RecordView(c.Request.Context(), middleware.GetPrincipal(c), id, services.ViewRequest{
			SessionID: c.GetHeader(SessionHeader),
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header(SessionHeader, res.SessionID)
		ok(c, res)
	}
}

func TourStats(t *services.TourService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id", "tour id")
		if !valid {
			return
		}
		stats, err := t.Stats(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, stats)
	}
}
