package messages

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
	CollectionName = "messages"
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
				{Key: "patientId", Value: 1},
				{Key: "doctorId", Value: 1},
				{Key: "sentAt", Value: -1},
			},
			Options: options.Index().
				SetName("MessagesByThread"),
		},
	})
	return err
}

func (r *repository) Send(ctx context.Context, message Message) (*Message, error) {
	if !message.Sender.IsValid() {
		return nil, ErrInvalidSender
	}
	if message.Body == "" {
		return nil, ErrEmptyBody
	}
	if message.SentAt.IsZero() {
		message.SentAt = time.Now()
	}

	res, err := r.collection.InsertOne(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("error creating message: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	selector := bson.M{"_id": id}

	created := &Message{}
	if err := r.collection.FindOne(ctx, selector).Decode(created); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *repository) List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Message, error) {
	opts := options.Find().
		SetSkip(int64(pagination.Offset)).
		SetLimit(int64(pagination.Limit)).
		SetSort(bson.D{{Key: "sentAt", Value: -1}})

	selector := bson.M{}
	if filter.PatientId != nil {
		selector["patientId"] = filter.PatientId
	}
	if filter.DoctorId != nil {
		selector["doctorId"] = filter.DoctorId
	}

	cursor, err := r.collection.Find(ctx, selector, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}

	messages := make([]*Message, 0)
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("error decoding messages list: %w", err)
	}

	return messages, nil
}

func (r *repository) MarkRead(ctx context.Context, id string) error {
	messageId, _ := primitive.ObjectIDFromHex(id)
	selector := bson.M{
		"_id":    messageId,
		"readAt": nil,
	}
	update := bson.M{
		"$set": bson.M{
			"readAt": time.Now(),
		},
	}

	err := r.collection.FindOneAndUpdate(ctx, selector, update).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Already read or absent; marking read is idempotent
		return nil
	} else if err != nil {
		return fmt.Errorf("error marking message read: %w", err)
	}

	return nil
}
