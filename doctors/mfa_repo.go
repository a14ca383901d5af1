package doctors

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const (
	MFACollectionName = "mfaCodes"
)

func NewMFARepository(db *mongo.Database, lifecycle fx.Lifecycle) (MFARepository, error) {
	repo := &mfaRepository{
		collection: db.Collection(MFACollectionName),
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return repo.Initialize(ctx)
		},
	})

	return repo, nil
}

type mfaRepository struct {
	collection *mongo.Collection
}

func (r *mfaRepository) Initialize(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "doctorId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().
				SetName("MFACodesByDoctor"),
		},
	})
	return err
}

func (r *mfaRepository) Create(ctx context.Context, code MFACode) error {
	if _, err := r.collection.InsertOne(ctx, code); err != nil {
		return fmt.Errorf("error creating mfa code: %w", err)
	}
	return nil
}

func (r *mfaRepository) FindLatest(ctx context.Context, doctorId primitive.ObjectID, code string) (*MFACode, error) {
	selector := bson.M{
		"doctorId": doctorId,
		"code":     code,
		"consumed": false,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	mfaCode := &MFACode{}
	err := r.collection.FindOne(ctx, selector, opts).Decode(mfaCode)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrMFACodeInvalid
	} else if err != nil {
		return nil, err
	}

	return mfaCode, nil
}

func (r *mfaRepository) Consume(ctx context.Context, id primitive.ObjectID) error {
	selector := bson.M{
		"_id":      id,
		"consumed": false,
	}
	update := bson.M{
		"$set": bson.M{
			"consumed": true,
		},
	}

	err := r.collection.FindOneAndUpdate(ctx, selector, update).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Lost the race with a concurrent verification of the same code
		return ErrMFACodeInvalid
	} else if err != nil {
		return fmt.Errorf("error consuming mfa code: %w", err)
	}

	return nil
}
