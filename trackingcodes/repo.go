package trackingcodes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"

	"github.com/afya-care/monitoring/store"
)

const (
	CollectionName = "trackingCodes"
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
				{Key: "code", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("UniqueTrackingCode"),
		},
		{
			Keys: bson.D{
				{Key: "doctorId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().
				SetName("TrackingCodesByDoctor"),
		},
	})
	return err
}

func (r *repository) Create(ctx context.Context, code TrackingCode) (*TrackingCode, error) {
	// Insertion fails on a generator collision thanks to the unique index;
	// the service retries with a fresh code
	res, err := r.collection.InsertOne(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("error creating tracking code: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	selector := bson.M{"_id": id}

	created := &TrackingCode{}
	if err := r.collection.FindOne(ctx, selector).Decode(created); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*TrackingCode, error) {
	selector := bson.M{"code": code}

	trackingCode := &TrackingCode{}
	err := r.collection.FindOne(ctx, selector).Decode(trackingCode)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return trackingCode, nil
}

func (r *repository) List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*TrackingCode, error) {
	opts := options.Find().
		SetSkip(int64(pagination.Offset)).
		SetLimit(int64(pagination.Limit)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	selector := bson.M{}
	if filter.DoctorId != nil {
		selector["doctorId"] = filter.DoctorId
	}
	if filter.IsActive != nil {
		selector["isActive"] = filter.IsActive
	}

	cursor, err := r.collection.Find(ctx, selector, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing tracking codes: %w", err)
	}

	codes := make([]*TrackingCode, 0)
	if err = cursor.All(ctx, &codes); err != nil {
		return nil, fmt.Errorf("error decoding tracking codes list: %w", err)
	}

	return codes, nil
}

func (r *repository) Deactivate(ctx context.Context, code string, patientId primitive.ObjectID, usedAt time.Time) (*TrackingCode, error) {
	// Conditional update: only an active code can be deactivated, so two
	// concurrent redemptions can never both succeed
	selector := bson.M{
		"code":     code,
		"isActive": true,
	}
	update := bson.M{
		"$set": bson.M{
			"isActive": false,
			"usedBy":   patientId,
			"usedAt":   usedAt,
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	trackingCode := &TrackingCode{}
	err := r.collection.FindOneAndUpdate(ctx, selector, update, opts).Decode(trackingCode)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAlreadyRedeemed
	} else if err != nil {
		return nil, fmt.Errorf("error deactivating tracking code: %w", err)
	}

	return trackingCode, nil
}
