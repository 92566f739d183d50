package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/middleware"
	"github.com/joshua-takyi/resort/internal/models"
	"github.com/joshua-takyi/resort/internal/services"
)

func ListTables(t *services.TableService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tables, err := t.ListTables(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		list(c, tables)
	}
}

func CreateTable(t *services.TableService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.DiningTableRequest
		if !bindJSON(c, &req) {
			return
		}
		table, err := t.CreateTable(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(table, "Table created successfully"))
	}
}

func ChangeTableStatus(t *services.TableService) gin.HandlerFunc {
	return statusHandler("table id", t.ChangeTableStatus)
}

func TableAvailability(t *services.TableService) gin.HandlerFunc {
	return func(c *gin.Context) {
		guests, valid := queryInt(c, "guests", 1)
		if !valid {
			return
		}
		tables, err := t.Availability(c.Request.Context(), c.Query("date"), c.Query("time"), guests)
		if err != nil {
			respondError(c, err)
			return
		}
		list(c, tables)
	}
}

func CreateTableReservation(t *services.TableService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.TableReservationRequest
		if !bindJSON(c, &req) {
			return
		}
		res, err := t.CreateReservation(c.Request.Context(), middleware.GetPrincipal(c), req)
		if err != nil {
			respondError(c, err)
			return
		}
		created(c, "reservation_id", res.ID, "Table reserved successfully")
	}
}

func ListTableReservationsForDate(t *services.TableService) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := t.ListForDate(c.Request.Context(), c.Query("date"))
		if err != nil {
			respondError(c, err)
			return
		}
		list(c, res)
	}
}

func ChangeTableReservationStatus(t *services.TableService) gin.HandlerFunc {
	return reservationStatusHandler("reservation id", t.ChangeReservationStatus)
}
