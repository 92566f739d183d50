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

const StatusChangesColName = "status_changes"

type StatusChange struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Entity     string             `bson:"entity" json:"entity"`
	EntityID   string             `bson:"entity_id" json:"entity_id"`
	FromStatus string             `bson:"from_status" json:"from_status"`
	ToStatus   string             `bson:"to_status" json:"to_status"`
	Reason     *string            `bson:"reason,omitempty" json:"reason,omitempty"`
	ActorUID   string             `bson:"actor_uid" json:"actor_uid"`
	ActorRole  string             `bson:"actor_role" json:"actor_role"`
	ChangedAt  time.Time          `bson:"changed_at" json:"changed_at"`
}

type AuditRepo interface {
	RecordStatusChange(ctx context.Context, change *StatusChange) error
	// ListStatusChanges filters by entity and id when they are set, newest first.
	ListStatusChanges(ctx context.Context, entity, entityID string, limit int) ([]StatusChange, error)
}

func (mdb *MongodbRepo) EnsureAuditIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(StatusChangesColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	_, err = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "entity", Value: 1},
			{Key: "entity_id", Value: 1},
			{Key: "changed_at", Value: -1},
		},
		Options: options.Index().SetName("entity_changed_at_idx"),
	})
	if err != nil {
		return fmt.Errorf("error creating audit indexes: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) RecordStatusChange(ctx context.Context, change *StatusChange) error {
	col, err := mdb.GetCollection(StatusChangesColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	if change.ID.IsZero() {
		change.ID = primitive.NewObjectID()
	}
	if change.ChangedAt.IsZero() {
		change.ChangedAt = time.Now().UTC()
	}
	if _, err := col.InsertOne(ctx, change); err != nil {
		return fmt.Errorf("error inserting status change: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) ListStatusChanges(ctx context.Context, entity, entityID string, limit int) ([]StatusChange, error) {
	col, err := mdb.GetCollection(StatusChangesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	filter := bson.M{}
	if entity != "" {
		filter["entity"] = entity
	}
	if entityID != "" {
		filter["entity_id"] = entityID
	}
	opts := options.Find().SetSort(bson.D{{Key: "changed_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding status changes: %v", err)
	}
	defer cursor.Close(ctx)

	changes := []StatusChange{}
	if err := cursor.All(ctx, &changes); err != nil {
		return nil, fmt.Errorf("error decoding status changes: %v", err)
	}
	return changes, nil
}
