package doctors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"

	"github.com/afya-care/monitoring/store"
)

const (
	CollectionName = "doctors"
)

func NewRepository(db *mongo.Database, lifecycle fx.Lifecycle) (Service, error) {
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
				{Key: "email", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("UniqueDoctorEmail"),
		},
	})
	return err
}

func (r *repository) Get(ctx context.Context, id string) (*Doctor, error) {
	doctorId, _ := primitive.ObjectIDFromHex(id)
	selector := bson.M{"_id": doctorId}

	doctor := &Doctor{}
	err := r.collection.FindOne(ctx, selector).Decode(doctor)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return doctor, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Doctor, error) {
	selector := bson.M{"email": strings.ToLower(email)}

	doctor := &Doctor{}
	err := r.collection.FindOne(ctx, selector).Decode(doctor)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return doctor, nil
}

func (r *repository) List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Doctor, error) {
	opts := options.Find().
		SetSkip(int64(pagination.Offset)).
		SetLimit(int64(pagination.Limit)).
		SetSort(bson.D{{Key: "lastName", Value: 1}})

	selector := bson.M{}
	if len(filter.Ids) > 0 {
		selector["_id"] = bson.M{"$in": store.ObjectIDSFromStringArray(filter.Ids)}
	}
	if filter.Email != nil {
		selector["email"] = strings.ToLower(*filter.Email)
	}

	cursor, err := r.collection.Find(ctx, selector, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing doctors: %w", err)
	}

	doctors := make([]*Doctor, 0)
	if err = cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("error decoding doctors list: %w", err)
	}

	return doctors, nil
}

func (r *repository) Create(ctx context.Context, doctor Doctor) (*Doctor, error) {
	if doctor.Email != nil {
		email := strings.ToLower(*doctor.Email)
		doctor.Email = &email
	}
	doctor.CreatedTime = time.Now()
	doctor.UpdatedTime = time.Now()

	res, err := r.collection.InsertOne(ctx, doctor)
	if err != nil {
		if store.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("error creating doctor: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	return r.Get(ctx, id.Hex())
}
