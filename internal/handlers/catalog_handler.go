package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/models"
	"github.com/joshua-takyi/resort/internal/services"
)

func ListFoodItems(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := cs.ListFoodItems(c.Request.Context(), c.Query("category"))
		if err != nil {
			respondError(c, err)
			return
		}
		list(c, items)
	}
}

func CreateFoodItem(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CatalogItemRequest
		if !bindJSON(c, &req) {
			return
		}
		item, err := cs.CreateFoodItem(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(item, "Food item created successfully"))
	}
}

func UpdateFoodItem(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id", "food id")
		if !valid {
			return
		}
		var req models.CatalogItemRequest
		if !bindJSON(c, &req) {
			return
		}
		item, err := cs.UpdateFoodItem(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, item)
	}
}

func ChangeFoodItemStatus(cs *services.CatalogService) gin.HandlerFunc {
	return statusHandler("food id", cs.ChangeFoodItemStatus)
}

func ListDrinks(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		drinks, err := cs.ListDrinks(c.Request.Context(), c.Query("category"))
		if err != nil {
			respondError(c, err)
			return
		}
		list(c, drinks)
	}
}

func CreateDrink(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CatalogItemRequest
		if !bindJSON(c, &req) {
			return
		}
		drink, err := cs.CreateDrink(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(drink, "Drink created successfully"))
	}
}

func UpdateDrink(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, valid := pathID(c, "id", "drink id")
		if !valid {
			return
		}
		var req models.CatalogItemRequest
		if !bindJSON(c, &req) {
			return
		}
		drink, err := cs.UpdateDrink(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, drink)
	}
}

func ChangeDrinkStatus(cs *services.CatalogService) gin.HandlerFunc {
	return statusHandler("drink id", cs.ChangeDrinkStatus)
}
