package messages

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afya-care/monitoring/errors"
	"github.com/afya-care/monitoring/store"
)

var ErrNotFound = fmt.Errorf("message %w", errors.NotFound)
var ErrInvalidSender = fmt.Errorf("message sender %w", errors.BadRequest)
var ErrEmptyBody = fmt.Errorf("message body %w", errors.BadRequest)

type Sender string

const (
	SenderPatient Sender = "patient"
	SenderDoctor  Sender = "doctor"
)

func (s Sender) IsValid() bool {
	return s == SenderPatient || s == SenderDoctor
}

type Message struct {
	Id        *primitive.ObjectID `bson:"_id,omitempty"`
	PatientId primitive.ObjectID  `bson:"patientId"`
	DoctorId  primitive.ObjectID  `bson:"doctorId"`
	Sender    Sender              `bson:"sender"`
	Body      string              `bson:"body"`
	SentAt    time.Time           `bson:"sentAt"`
	ReadAt    *time.Time          `bson:"readAt,omitempty"`
}

type Filter struct {
	PatientId *primitive.ObjectID
	DoctorId  *primitive.ObjectID
}

//go:generate mockgen --build_flags=--mod=mod -source=./messages.go -destination=./test/mock_service.go -package test MockService

type Service interface {
	Send(ctx context.Context, message Message) (*Message, error)
	// List returns messages newest first; the portals poll it on an interval.
	List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Message, error)
	MarkRead(ctx context.Context, id string) error
}
