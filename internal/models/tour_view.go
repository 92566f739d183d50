package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	TourViewsColName = "tour_views"
	TourViewTTL      = 30 * 24 * time.Hour
	TourViewWindow   = time.Hour
)

type TourView struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TourID    string             `bson:"tour_id" json:"tour_id" validate:"required"`
	RoomID    string             `bson:"room_id" json:"room_id"`
	GuestUID  *string            `bson:"guest_uid,omitempty" json:"guest_uid,omitempty"`
	SessionID string             `bson:"session_id" json:"session_id" validate:"required"`
	IPAddress string             `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserAgent string             `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	ViewedAt  time.Time          `bson:"viewed_at" json:"viewed_at"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
}

type TourViewStats struct {
	TourID        string `json:"tour_id"`
	TotalViews    int64  `json:"total_views"`
	UniqueViews   int64  `json:"unique_views"`
	ViewsToday    int64  `json:"views_today"`
	ViewsThisWeek int64  `json:"views_this_week"`
}

type TourViewsRepo interface {
	// TrackTourView stores a view unless the session already viewed the tour within the last hour.
	TrackTourView(ctx context.Context, view *TourView) (bool, error)
	GetTourViewStats(ctx context.Context, tourID string) (*TourViewStats, error)
}

// EnsureTourViewIndexes creates the TTL index and the lookup indexes.
func (mdb *MongodbRepo) EnsureTourViewIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(TourViewsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().
				SetExpireAfterSeconds(0).
				SetName("expires_at_ttl"),
		},
		{
			Keys: bson.D{
				{Key: "tour_id", Value: 1},
				{Key: "session_id", Value: 1},
				{Key: "viewed_at", Value: -1},
			},
			Options: options.Index().SetName("tour_session_viewed_at_idx"),
		},
		{
			Keys: bson.D{
				{Key: "tour_id", Value: 1},
				{Key: "viewed_at", Value: -1},
			},
			Options: options.Index().SetName("tour_viewed_at_idx"),
		},
	}

	if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("error creating indexes: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) TrackTourView(ctx context.Context, view *TourView) (bool, error) {
	col, err := mdb.GetCollection(TourViewsColName)
	if err != nil {
		return false, fmt.Errorf("error getting collection: %v", err)
	}

	now := time.Now().UTC()
	err = col.FindOne(ctx, bson.M{
		"tour_id":    view.TourID,
		"session_id": view.SessionID,
		"viewed_at":  bson.M{"$gte": now.Add(-TourViewWindow)},
	}).Err()
	if err == nil {
		return false, nil
	}
	if err != mongo.ErrNoDocuments {
		return false, fmt.Errorf("error checking recent tour view: %v", err)
	}

	view.ViewedAt = now
	view.ExpiresAt = now.Add(TourViewTTL)
	if view.ID.IsZero() {
		view.ID = primitive.NewObjectID()
	}
	if _, err := col.InsertOne(ctx, view); err != nil {
		return false, fmt.Errorf("error inserting tour view: %v", err)
	}
	return true, nil
}

func (mdb *MongodbRepo) GetTourViewStats(ctx context.Context, tourID string) (*TourViewStats, error) {
	col, err := mdb.GetCollection(TourViewsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	stats := &TourViewStats{TourID: tourID}
	startOfDay, startOfWeek := viewWindows(time.Now().UTC())

	if stats.TotalViews, err = col.CountDocuments(ctx, bson.M{"tour_id": tourID}); err != nil {
		return nil, fmt.Errorf("error counting total views: %v", err)
	}

	uniquePipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"tour_id": tourID}}},
		{{Key: "$group", Value: bson.M{"_id": "$session_id"}}},
		{{Key: "$count", Value: "unique_sessions"}},
	}
	cursor, err := col.Aggregate(ctx, uniquePipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating unique views: %v", err)
	}
	defer cursor.Close(ctx)

	var uniqueResult []struct {
		UniqueSessions int64 `bson:"unique_sessions"`
	}
	if err := cursor.All(ctx, &uniqueResult); err != nil {
		return nil, fmt.Errorf("error decoding unique views: %v", err)
	}
	if len(uniqueResult) > 0 {
		stats.UniqueViews = uniqueResult[0].UniqueSessions
	}

	if stats.ViewsToday, err = col.CountDocuments(ctx, bson.M{
		"tour_id":   tourID,
		"viewed_at": bson.M{"$gte": startOfDay},
	}); err != nil {
		return nil, fmt.Errorf("error counting today's views: %v", err)
	}

	if stats.ViewsThisWeek, err = col.CountDocuments(ctx, bson.M{
		"tour_id":   tourID,
		"viewed_at": bson.M{"$gte": startOfWeek},
	}); err != nil {
		return nil, fmt.Errorf("error counting this week's views: %v", err)
	}

	return stats, nil
}

// viewWindows returns the start of the current day and of the current week (Sunday).
func viewWindows(now time.Time) (time.Time, time.Time) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return startOfDay, startOfDay.AddDate(0, 0, -int(now.Weekday()))
}
