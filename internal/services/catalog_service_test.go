package services

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/joshua-takyi/resort/internal/failure"
	"github.com/joshua-takyi/resort/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodItemFinalPrice(t *testing.T) {
	f := newFixture(t)

	item, err := f.catalog.CreateFoodItem(f.ctx, models.CatalogItemRequest{Name: "Grilled Tilapia", Category: "Mains", Price: 85, Discount: 20})
	require.NoError(t, err)
	assert.Equal(t, 68.0, item.FinalPrice)
	assert.Equal(t, models.ItemAvailable, item.Status)

	_, err = f.catalog.CreateFoodItem(f.ctx, models.CatalogItemRequest{Name: "Soup", Category: "Starters", Price: 30})
	require.NoError(t, err)

	mains, err := f.catalog.ListFoodItems(f.ctx, "Mains")
	require.NoError(t, err)
	require.Len(t, mains, 1)
	assert.Equal(t, "Grilled Tilapia", mains[0].Name)
}

func TestCatalogValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.catalog.CreateDrink(f.ctx, models.CatalogItemRequest{Name: "Sobolo", Category: "Local", Price: 0})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	_, err = f.catalog.CreateDrink(f.ctx, models.CatalogItemRequest{Name: "Sobolo", Category: "Local", Price: 10, Discount: 120})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	_, err = f.catalog.UpdateDrink(f.ctx, uuid.New(), models.CatalogItemRequest{Name: "Sobolo", Category: "Local", Price: 10})
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestDrinkUpdateAndStatus(t *testing.T) {
	f := newFixture(t)
	bar := staffActor(models.RoleBar)

	drink, err := f.catalog.CreateDrink(f.ctx, models.CatalogItemRequest{Name: "Palm Wine", Category: "Local", Price: 20})
	require.NoError(t, err)

	updated, err := f.catalog.UpdateDrink(f.ctx, drink.ID, models.CatalogItemRequest{Name: "Palm Wine", Category: "Local", Price: 25, Discount: 10})
	require.NoError(t, err)
	assert.Equal(t, 22.5, updated.FinalPrice)

	change, err := f.catalog.ChangeDrinkStatus(f.ctx, bar, drink.ID, "unavailable")
	require.NoError(t, err)
	assert.Equal(t, "drink", change.Entity)
	assert.Equal(t, "BAR", change.ActorRole)

	drinks, err := f.catalog.ListDrinks(f.ctx, "")
	require.NoError(t, err)
	require.Len(t, drinks, 1)
	assert.Equal(t, models.ItemUnavailable, drinks[0].Status)
}
