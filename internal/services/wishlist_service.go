package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/joshua-takyi/resort/internal/failure"
	"github.com/joshua-takyi/resort/internal/models"
)

type WishlistService struct {
	wishlists models.WishlistRepo
	rooms     models.RoomRepo
	events    models.EventRepo
	logger    *slog.Logger
}

func NewWishlistService(wishlists models.WishlistRepo, rooms models.RoomRepo, events models.EventRepo, logger *slog.Logger) *WishlistService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WishlistService{wishlists: wishlists, rooms: rooms, events: events, logger: logger.With("service", "wishlist")}
}

func wishlistOwner(actor *models.Principal) (uuid.UUID, error) {
	if actor == nil || !actor.IsGuest() || actor.GuestID == uuid.Nil {
		return uuid.Nil, failure.Forbidden("only guests keep a wishlist")
	}
	return actor.GuestID, nil
}

func (ws *WishlistService) Add(ctx context.Context, actor *models.Principal, itemRaw, typeRaw string) (*models.Wishlist, error) {
	guestID, err := wishlistOwner(actor)
	if err != nil {
		return nil, err
	}
	itemType, err := models.ParseWishlistItemType(typeRaw)
	if err != nil {
		return nil, failure.BadRequest(err)
	}
	itemID, err := ParseID(itemRaw, "item")
	if err != nil {
		return nil, err
	}

	switch itemType {
	case models.WishlistRoom:
		_, err = ws.rooms.GetRoom(ctx, itemID)
	case models.WishlistVenue:
		_, err = ws.events.GetVenue(ctx, itemID)
	}
	if err != nil {
		return nil, repoError(err, string(itemType))
	}

	wl, err := ws.wishlists.AddToWishlist(ctx, guestID, itemID.String(), itemType)
	if err != nil {
		ws.logger.Error("failed to add wishlist item", "guest_id", guestID, "item_id", itemID, "error", err)
		return nil, err
	}
	return wl, nil
}

func (ws *WishlistService) Remove(ctx context.Context, actor *models.Principal, itemRaw string) error {
	guestID, err := wishlistOwner(actor)
	if err != nil {
		return err
	}
	itemID, err := ParseID(itemRaw, "item")
	if err != nil {
		return err
	}
	if err := ws.wishlists.RemoveFromWishlist(ctx, guestID, itemID.String()); err != nil {
		ws.logger.Error("failed to remove wishlist item", "guest_id", guestID, "item_id", itemID, "error", err)
		return err
	}
	return nil
}

func (ws *WishlistService) Get(ctx context.Context, actor *models.Principal) (*models.Wishlist, error) {
	guestID, err := wishlistOwner(actor)
	if err != nil {
		return nil, err
	}
	wl, err := ws.wishlists.GetWishlist(ctx, guestID)
	if err != nil {
		ws.logger.Error("failed to load wishlist", "guest_id", guestID, "error", err)
		return nil, err
	}
	return wl, nil
}
