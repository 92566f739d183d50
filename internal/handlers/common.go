package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/resort/internal/failure"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/middleware"
	"github.com/joshua-takyi/resort/internal/models"
	"github.com/joshua-takyi/resort/internal/services"
)

// StatusRequest is the body of every status-change endpoint.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// respondError writes failures with their own code; anything else is logged and hidden behind a 500.
func respondError(c *gin.Context, err error) {
	code := failure.GetCode(err)
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(code, helpers.ErrorResponse("Internal server error"))
		return
	}
	c.JSON(code, helpers.ErrorResponse(err.Error()))
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid request body: "+err.Error()))
		return false
	}
	return true
}

func pathID(c *gin.Context, param, what string) (uuid.UUID, bool) {
	id, err := services.ParseID(c.Param(param), what)
	if err != nil {
		respondError(c, err)
		return uuid.Nil, false
	}
	return id, true
}

// queryInt reads a positive integer query parameter, using def when it is absent.
func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := helpers.StringTrim(c.Query(key))
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		respondError(c, failure.BadRequestFromString(key+" must be a positive number"))
		return 0, false
	}
	return n, true
}

func created(c *gin.Context, key string, id uuid.UUID, message string) {
	c.JSON(http.StatusCreated, helpers.SuccessResponse(gin.H{key: id}, message))
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, helpers.SuccessResponse(data, ""))
}

func list[T any](c *gin.Context, items []T) {
	c.JSON(http.StatusOK, helpers.ListResponse(items))
}

type statusFunc func(ctx context.Context, actor *models.Principal, id uuid.UUID, status string) (*models.StatusChange, error)

type reservationStatusFunc func(ctx context.Context, actor *models.Principal, id uuid.UUID, status, reason string) (*models.StatusChange, error)

// statusHandler serves the PUT .../:id/status endpoints of records without a reason.
func statusHandler(what string, change statusFunc) gin.HandlerFunc {
	return reservationStatusHandler(what, func(ctx context.Context, actor *models.Principal, id uuid.UUID, status, _ string) (*models.StatusChange, error) {
		return change(ctx, actor, id, status)
	})
}

func reservationStatusHandler(what string, change reservationStatusFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id", what)
		if !valid {
			return
		}
		var req StatusRequest
		if !bindJSON(c, &req) {
			return
		}
		res, err := change(c.Request.Context(), middleware.GetPrincipal(c), id, req.Status, req.Reason)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(res, "Status updated successfully"))
	}
}
