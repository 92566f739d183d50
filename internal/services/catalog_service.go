package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/joshua-takyi/resort/internal/failure"
	"github.com/joshua-takyi/resort/internal/helpers"
	"github.com/joshua-takyi/resort/internal/models"
)

type CatalogService struct {
	catalog models.CatalogRepo
	status  *StatusChanger
	logger  *slog.Logger
}

func NewCatalogService(catalog models.CatalogRepo, status *StatusChanger, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{catalog: catalog, status: status, logger: logger.With("service", "catalog")}
}

func trimItem(req *models.CatalogItemRequest) {
	req.Name = helpers.StringTrim(req.Name)
	req.Category = helpers.StringTrim(req.Category)
}

func (cs *CatalogService) ListFoodItems(ctx context.Context, category string) ([]models.FoodItemView, error) {
	items, err := cs.catalog.ListFoodItems(ctx, helpers.StringTrim(category))
	if err != nil {
		cs.logger.Error("failed to list food items", "error", err)
		return nil, err
	}
	out := make([]models.FoodItemView, 0, len(items))
	for _, f := range items {
		out = append(out, models.NewFoodItemView(f))
	}
	return out, nil
}

func (cs *CatalogService) CreateFoodItem(ctx context.Context, req models.CatalogItemRequest) (*models.FoodItemView, error) {
	trimItem(&req)
	if err := validate(req); err != nil {
		return nil, err
	}
	item, err := cs.catalog.CreateFoodItem(ctx, &models.FoodItem{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Discount: req.Discount,
		Status:   models.ItemAvailable,
	})
	if err != nil {
		return nil, repoError(err, "food item")
	}
	v := models.NewFoodItemView(*item)
	return &v, nil
}

func (cs *CatalogService) UpdateFoodItem(ctx context.Context, id uuid.UUID, req models.CatalogItemRequest) (*models.FoodItemView, error) {
	trimItem(&req)
	if err := validate(req); err != nil {
		return nil, err
	}
	item, err := cs.catalog.UpdateFoodItem(ctx, id, map[string]any{
		"food_name":     req.Name,
		"food_category": req.Category,
		"food_price":    req.Price,
		"food_discount": req.Discount,
	})
	if err != nil {
		return nil, repoError(err, "food item")
	}
	v := models.NewFoodItemView(*item)
	return &v, nil
}

func (cs *CatalogService) ChangeFoodItemStatus(ctx context.Context, actor *models.Principal, id uuid.UUID, raw string) (*models.StatusChange, error) {
	status, err := models.ParseItemStatus(raw)
	if err != nil {
		return nil, failure.BadRequest(err)
	}
	return cs.status.Change(ctx, actor, models.FoodItemStatusTarget, id, string(status), nil)
}

func (cs *CatalogService) ListDrinks(ctx context.Context, category string) ([]models.DrinkView, error) {
	drinks, err := cs.catalog.ListDrinks(ctx, helpers.StringTrim(category))
	if err != nil {
		cs.logger.Error("failed to list drinks", "error", err)
		return nil, err
	}
	out := make([]models.DrinkView, 0, len(drinks))
	for _, d := range drinks {
		out = append(out, models.NewDrinkView(d))
	}
	return out, nil
}

func (cs *CatalogService) CreateDrink(ctx context.Context, req models.CatalogItemRequest) (*models.DrinkView, error) {
	trimItem(&req)
	if err := validate(req); err != nil {
		return nil, err
	}
	drink, err := cs.catalog.CreateDrink(ctx, &models.Drink{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Discount: req.Discount,
		Status:   models.ItemAvailable,
	})
	if err != nil {
		return nil, repoError(err, "drink")
	}
	v := models.NewDrinkView(*drink)
	return &v, nil
}

func (cs *CatalogService) UpdateDrink(ctx context.Context, id uuid.UUID, req models.CatalogItemRequest) (*models.DrinkView, error) {
	trimItem(&req)
	if err := validate(req); err != nil {
		return nil, err
	}
	drink, err := cs.catalog.UpdateDrink(ctx, id, map[string]any{
		"drink_name":     req.Name,
		"drink_category": req.Category,
		"drink_price":    req.Price,
		"drink_discount": req.Discount,
	})
	if err != nil {
		return nil, repoError(err, "drink")
	}
	v := models.NewDrinkView(*drink)
	return &v, nil
}

func (cs *CatalogService) ChangeDrinkStatus(ctx context.Context, actor *models.Principal, id uuid.UUID, raw string) (*models.StatusChange, error) {
	status, err := models.ParseItemStatus(raw)
	if err != nil {
		return nil, failure.BadRequest(err)
	}
	return cs.status.Change(ctx, actor, models.DrinkStatusTarget, id, string(status), nil)
}
