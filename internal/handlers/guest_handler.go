package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/middleware"
	"github.com/joshua-takyi/resort/internal/models"
	"github.com/joshua-takyi/resort/internal/services"
)

func ListGuests(g *services.GuestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		guests, err := g.ListGuests(c.Request.Context(), c.Query("q"))
		if err != nil {
			respondError(c, err)
			return
		}
		list(c, guests)
	}
}

func GetGuest(g *services.GuestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id", "guest id")
		if !valid {
			return
		}
		guest, err := g.GetGuest(c.Request.Context(), middleware.GetPrincipal(c), id)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, guest)
	}
}

// UpdateGuest forwards the caller's token so the identity metadata stays in sync.
func UpdateGuest(g *services.GuestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id", "guest id")
		if !valid {
			return
		}
		var req models.UpdateGuestRequest
		if !bindJSON(c, &req) {
			return
		}
		guest, err := g.UpdateGuest(c.Request.Context(), middleware.GetPrincipal(c), id, req, middleware.AccessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(guest, "Profile updated successfully"))
	}
}
