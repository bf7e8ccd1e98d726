package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dashkit/admin-api/internal/core/domain"
	"github.com/dashkit/admin-api/internal/core/ports"
)

const collectionActivities = "activities"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivities)}
}

type activityDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Action      string             `bson:"action"`
	Entity      string             `bson:"entity,omitempty"`
	EntityID    string             `bson:"entity_id,omitempty"`
	Description string             `bson:"description"`
	CreatedAt   time.Time          `bson:"created_at"`
}

// Insert persists an activity to the audit collection.
func (r *ActivityRepository) Insert(ctx context.Context, activity *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := activityDoc{
		ID:          primitive.NewObjectID(),
		UserID:      activity.UserID,
		Action:      string(activity.Action),
		Entity:      activity.Entity,
		EntityID:    activity.EntityID,
		Description: activity.Description,
		CreatedAt:   activity.CreatedAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	activity.ID = doc.ID.Hex()
	return nil
}

func (r *ActivityRepository) List(ctx context.Context, filter ports.ActivityFilter) ([]*domain.Activity, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := activityListFilter(filter)
	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}
	cur, err := r.col.Find(ctx, query, pageOptions(filter.Page, filter.Limit))
	if err != nil {
		return nil, 0, fmt.Errorf("find activities: %w", err)
	}

	var docs []activityDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode activities: %w", err)
	}
	out := make([]*domain.Activity, len(docs))
	for i, d := range docs {
		out[i] = &domain.Activity{
			ID:          d.ID.Hex(),
			UserID:      d.UserID,
			Action:      domain.ActivityAction(d.Action),
			Entity:      d.Entity,
			EntityID:    d.EntityID,
			Description: d.Description,
			CreatedAt:   d.CreatedAt.UTC(),
		}
	}
	return out, total, nil
}

func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	return err
}
