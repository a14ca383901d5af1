package patients

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
	CollectionName = "patients"
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
				SetName("UniquePatientEmail"),
		},
		{
			Keys: bson.D{
				{Key: "doctorId", Value: 1},
			},
			Options: options.Index().
				SetName("PatientDoctor"),
		},
	})
	return err
}

func (r *repository) Get(ctx context.Context, id string) (*Patient, error) {
	patientId, _ := primitive.ObjectIDFromHex(id)
	selector := bson.M{"_id": patientId}

	patient := &Patient{}
	err := r.collection.FindOne(ctx, selector).Decode(patient)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return patient, nil
}

func (r *repository) List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Patient, error) {
	opts := options.Find().
		SetSkip(int64(pagination.Offset)).
		SetLimit(int64(pagination.Limit)).
		SetSort(bson.D{{Key: "fullName", Value: 1}})

	selector := bson.M{}
	if len(filter.Ids) > 0 {
		selector["_id"] = bson.M{"$in": store.ObjectIDSFromStringArray(filter.Ids)}
	}
	if filter.Email != nil {
		selector["email"] = strings.ToLower(*filter.Email)
	}
	if filter.DoctorId != nil {
		selector["doctorId"] = filter.DoctorId
	}

	cursor, err := r.collection.Find(ctx, selector, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing patients: %w", err)
	}

	patients := make([]*Patient, 0)
	if err = cursor.All(ctx, &patients); err != nil {
		return nil, fmt.Errorf("error decoding patients list: %w", err)
	}

	return patients, nil
}

func (r *repository) Create(ctx context.Context, patient Patient) (*Patient, error) {
	if patient.Email != nil {
		email := strings.ToLower(*patient.Email)
		patient.Email = &email
	}
	if !patient.MonitoringMode.IsValid() {
		patient.MonitoringMode = ModeClassique
	}
	patient.CreatedTime = time.Now()
	patient.UpdatedTime = time.Now()

	res, err := r.collection.InsertOne(ctx, patient)
	if err != nil {
		if store.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("error creating patient: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	return r.Get(ctx, id.Hex())
}

func (r *repository) Associate(ctx context.Context, id string, association Association) (*Patient, error) {
	patientId, _ := primitive.ObjectIDFromHex(id)
	selector := bson.M{"_id": patientId}
	update := bson.M{
		"$set": bson.M{
			"doctorId":            association.DoctorId,
			"doctorName":          association.DoctorName,
			"trackingCode":        association.TrackingCode,
			"associatedAt":        association.AssociatedAt,
			"hasUnlockedFeatures": true,
			"updatedTime":         time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	patient := &Patient{}
	err := r.collection.FindOneAndUpdate(ctx, selector, update, opts).Decode(patient)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("error associating patient: %w", err)
	}

	return patient, nil
}
