package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	FoodItemsTable = "food_items"
	DrinksTable    = "drinks"
)

type FoodItem struct {
	ID        uuid.UUID  `json:"food_id"`
	Name      string     `json:"food_name"`
	Category  string     `json:"food_category"`
	Price     float64    `json:"food_price"`
	Discount  float64    `json:"food_discount"`
	Status    ItemStatus `json:"food_status"`
	CreatedAt time.Time  `json:"food_created_at"`
}

type FoodItemView struct {
	FoodItem
	FinalPrice float64 `json:"final_price"`
}

func NewFoodItemView(f FoodItem) FoodItemView {
	return FoodItemView{FoodItem: f, FinalPrice: ApplyDiscount(f.Price, f.Discount)}
}

type Drink struct {
	ID        uuid.UUID  `json:"drink_id"`
	Name      string     `json:"drink_name"`
	Category  string     `json:"drink_category"`
	Price     float64    `json:"drink_price"`
	Discount  float64    `json:"drink_discount"`
	Status    ItemStatus `json:"drink_status"`
	CreatedAt time.Time  `json:"drink_created_at"`
}

type DrinkView struct {
	Drink
	FinalPrice float64 `json:"final_price"`
}

func NewDrinkView(d Drink) DrinkView {
	return DrinkView{Drink: d, FinalPrice: ApplyDiscount(d.Price, d.Discount)}
}

// CatalogItemRequest is shared by food items and drinks.
type CatalogItemRequest struct {
	Name     string  `json:"name" validate:"required,max=120"`
	Category string  `json:"category" validate:"required,max=60"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Discount float64 `json:"discount" validate:"min=0,max=100"`
}
