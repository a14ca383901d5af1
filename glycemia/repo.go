package glycemia

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"

	"github.com/afya-care/monitoring/store"
)

const (
	CollectionName = "glycemiaReadings"
)

func NewRepository(db *mongo.Database, lifecycle fx.Lifecycle) (Repository, error) {
	repo := &repository{
		collection: db.Collection(CollectionName),
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return repo.Initialize(ctx)
		},
	})

	return repo, nil
}

type repository struct {
	collection *mongo.Collection
}

func (r *repository) Initialize(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "patientId", Value: 1},
				{Key: "timestamp", Value: 1},
			},
			Options: options.Index().
				SetName("PatientReadingsByTime"),
		},
		{
			Keys: bson.D{
				{Key: "idempotencyKey", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("UniqueIdempotencyKey").
				SetPartialFilterExpression(bson.D{{Key: "idempotencyKey", Value: bson.M{"$exists": true}}}),
		},
	})
	return err
}

func (r *repository) Create(ctx context.Context, reading Reading) (*Reading, error) {
	res, err := r.collection.InsertOne(ctx, reading)
	if err != nil {
		// Re-submission of the same reading is a no-op returning the stored one
		if store.IsDuplicateKeyError(err) && reading.IdempotencyKey != nil {
			return r.FindByIdempotencyKey(ctx, *reading.IdempotencyKey)
		}
		return nil, fmt.Errorf("error creating reading: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	return r.Get(ctx, id.Hex())
}

func (r *repository) Get(ctx context.Context, id string) (*Reading, error) {
	readingId, _ := primitive.ObjectIDFromHex(id)
	selector := bson.M{"_id": readingId}

	reading := &Reading{}
	err := r.collection.FindOne(ctx, selector).Decode(reading)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return reading, nil
}

func (r *repository) FindByIdempotencyKey(ctx context.Context, key string) (*Reading, error) {
	selector := bson.M{"idempotencyKey": key}

	reading := &Reading{}
	err := r.collection.FindOne(ctx, selector).Decode(reading)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return reading, nil
}

func (r *repository) List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Reading, error) {
	opts := options.Find().
		SetSkip(int64(pagination.Offset)).
		SetLimit(int64(pagination.Limit)).
		SetSort(bson.D{{Key: "timestamp", Value: 1}})

	selector := bson.M{}
	if filter.PatientId != nil {
		selector["patientId"] = filter.PatientId
	}

	timestamp := bson.M{}
	if filter.From != nil {
		timestamp["$gte"] = filter.From
	}
	if filter.To != nil {
		timestamp["$lt"] = filter.To
	}
	if len(timestamp) > 0 {
		selector["timestamp"] = timestamp
	}

	cursor, err := r.collection.Find(ctx, selector, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing readings: %w", err)
	}

	readings := make([]*Reading, 0)
	if err = cursor.All(ctx, &readings); err != nil {
		return nil, fmt.Errorf("error decoding readings list: %w", err)
	}

	return readings, nil
}
