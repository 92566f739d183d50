package models

import (
	"context"

	"github.com/google/uuid"
)

type CatalogRepo interface {
	CreateFoodItem(ctx context.Context, item *FoodItem) (*FoodItem, error)
	GetFoodItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]FoodItem, error)
	ListFoodItems(ctx context.Context, category string) ([]FoodItem, error)
	UpdateFoodItem(ctx context.Context, id uuid.UUID, fields map[string]any) (*FoodItem, error)

	CreateDrink(ctx context.Context, drink *Drink) (*Drink, error)
	ListDrinks(ctx context.Context, category string) ([]Drink, error)
	UpdateDrink(ctx context.Context, id uuid.UUID, fields map[string]any) (*Drink, error)
}

func (su *SupabaseRepo) CreateFoodItem(ctx context.Context, item *FoodItem) (*FoodItem, error) {
	row := map[string]any{
		"food_name":     item.Name,
		"food_category": item.Category,
		"food_price":    item.Price,
		"food_discount": item.Discount,
		"food_status":   item.Status,
	}
	return execFirst[FoodItem](su.insertOne(FoodItemsTable, row), "food item")
}

func (su *SupabaseRepo) GetFoodItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]FoodItem, error) {
	if len(ids) == 0 {
		return []FoodItem{}, nil
	}
	q := su.supabaseClient.From(FoodItemsTable).Select("*", "", false).In("food_id", uuidStrings(ids))
	return execRows[FoodItem](q, "food items")
}

func (su *SupabaseRepo) ListFoodItems(ctx context.Context, category string) ([]FoodItem, error) {
	q := su.supabaseClient.From(FoodItemsTable).Select("*", "", false)
	if category != "" {
		q = q.Ilike("food_category", category)
	}
	q = q.Order("food_category", ascending()).Order("food_name", ascending())
	return execRows[FoodItem](q, "food items")
}

func (su *SupabaseRepo) UpdateFoodItem(ctx context.Context, id uuid.UUID, fields map[string]any) (*FoodItem, error) {
	return execFirst[FoodItem](su.updateOne(FoodItemsTable, "food_id", id, fields), "food item")
}

func (su *SupabaseRepo) CreateDrink(ctx context.Context, drink *Drink) (*Drink, error) {
	row := map[string]any{
		"drink_name":     drink.Name,
		"drink_category": drink.Category,
		"drink_price":    drink.Price,
		"drink_discount": drink.Discount,
		"drink_status":   drink.Status,
	}
	return execFirst[Drink](su.insertOne(DrinksTable, row), "drink")
}

func (su *SupabaseRepo) ListDrinks(ctx context.Context, category string) ([]Drink, error) {
	q := su.supabaseClient.From(DrinksTable).Select("*", "", false)
	if category != "" {
		q = q.Ilike("drink_category", category)
	}
	q = q.Order("drink_category", ascending()).Order("drink_name", ascending())
	return execRows[Drink](q, "drinks")
}

func (su *SupabaseRepo) UpdateDrink(ctx context.Context, id uuid.UUID, fields map[string]any) (*Drink, error) {
	return execFirst[Drink](su.updateOne(DrinksTable, "drink_id", id, fields), "drink")
}
