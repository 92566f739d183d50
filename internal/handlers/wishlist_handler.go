package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/middleware"
	"github.com/joshua-takyi/resort/internal/services"
)

func GetWishlist(w *services.WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		wl, err := w.Get(c.Request.Context(), middleware.GetPrincipal(c))
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, wl)
	}
}

// AddToWishlist takes item_type from the body, or from the query string when no body is sent.
func AddToWishlist(w *services.WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			ItemType string `json:"item_type"`
		}
		if c.Request.ContentLength > 0 && !bindJSON(c, &body) {
			return
		}
		if body.ItemType == "" {
			body.ItemType = c.Query("item_type")
		}
		wl, err := w.Add(c.Request.Context(), middleware.GetPrincipal(c), c.Param("item_id"), body.ItemType)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(wl, "Added to wishlist"))
	}
}

func RemoveFromWishlist(w *services.WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := w.Remove(c.Request.Context(), middleware.GetPrincipal(c), c.Param("item_id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "Removed from wishlist"))
	}
}
