package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const WishlistColName = "wishlists"

type WishlistItemType string

const (
	WishlistRoom  WishlistItemType = "room"
	WishlistVenue WishlistItemType = "venue"
)

func ParseWishlistItemType(raw string) (WishlistItemType, error) {
	switch WishlistItemType(raw) {
	case WishlistRoom, WishlistVenue:
		return WishlistItemType(raw), nil
	}
	return "", fmt.Errorf("invalid item_type %q: must be room or venue", raw)
}

type WishlistItem struct {
	ItemID   string           `bson:"item_id" json:"item_id"`
	ItemType WishlistItemType `bson:"item_type" json:"item_type"`
	AddedAt  time.Time        `bson:"added_at" json:"added_at"`
}

type Wishlist struct {
	ID        primitive.ObjectID      `bson:"_id,omitempty" json:"id"`
	GuestID   string                  `bson:"guest_id" json:"guest_id"`
	Items     map[string]WishlistItem `bson:"items" json:"items"`
	CreatedAt time.Time               `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt time.Time               `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

type WishlistRepo interface {
	AddToWishlist(ctx context.Context, guestID uuid.UUID, itemID string, itemType WishlistItemType) (*Wishlist, error)
	RemoveFromWishlist(ctx context.Context, guestID uuid.UUID, itemID string) error
	// GetWishlist returns an empty wishlist when the guest has none.
	GetWishlist(ctx context.Context, guestID uuid.UUID) (*Wishlist, error)
}

func (mdb *MongodbRepo) AddToWishlist(ctx context.Context, guestID uuid.UUID, itemID string, itemType WishlistItemType) (*Wishlist, error) {
	col, err := mdb.GetCollection(WishlistColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	now := time.Now().UTC()
	filter := bson.M{"guest_id": guestID.String()}

	update := bson.M{
		"$set": bson.M{
			"updated_at": now,
			"items." + itemID: WishlistItem{
				ItemID:   itemID,
				ItemType: itemType,
				AddedAt:  now,
			},
		},
		"$setOnInsert": bson.M{
			"guest_id":   guestID.String(),
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result Wishlist
	if err := col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return nil, fmt.Errorf("error upserting wishlist: %v", err)
	}
	return &result, nil
}

func (mdb *MongodbRepo) RemoveFromWishlist(ctx context.Context, guestID uuid.UUID, itemID string) error {
	col, err := mdb.GetCollection(WishlistColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	update := bson.M{
		"$unset": bson.M{"items." + itemID: ""},
		"$set":   bson.M{"updated_at": time.Now().UTC()},
	}
	if _, err := col.UpdateOne(ctx, bson.M{"guest_id": guestID.String()}, update); err != nil {
		return fmt.Errorf("error removing wishlist item: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetWishlist(ctx context.Context, guestID uuid.UUID) (*Wishlist, error) {
	col, err := mdb.GetCollection(WishlistColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var wl Wishlist
	err = col.FindOne(ctx, bson.M{"guest_id": guestID.String()}).Decode(&wl)
	if err == mongo.ErrNoDocuments {
		return &Wishlist{GuestID: guestID.String(), Items: map[string]WishlistItem{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding wishlist: %v", err)
	}
	if wl.Items == nil {
		wl.Items = map[string]WishlistItem{}
	}
	return &wl, nil
}
