package doctors

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afya-care/monitoring/errors"
	"github.com/afya-care/monitoring/store"
)

var ErrNotFound = fmt.Errorf("doctor %w", errors.NotFound)
var ErrDuplicateEmail = fmt.Errorf("%w email address", errors.Duplicate)

type Doctor struct {
	Id          *primitive.ObjectID `bson:"_id,omitempty"`
	FirstName   *string             `bson:"firstName,omitempty"`
	LastName    *string             `bson:"lastName,omitempty"`
	Email       *string             `bson:"email,omitempty"`
	PhoneNumber *string             `bson:"phoneNumber,omitempty"`
	Speciality  *string             `bson:"speciality,omitempty"`
	CreatedTime time.Time           `bson:"createdTime,omitempty"`
	UpdatedTime time.Time           `bson:"updatedTime,omitempty"`
}

// FullName is the display name stamped on patients when a tracking code
// issued by this doctor is redeemed.
func (d *Doctor) FullName() string {
	parts := make([]string, 0, 2)
	if d.FirstName != nil && *d.FirstName != "" {
		parts = append(parts, *d.FirstName)
	}
	if d.LastName != nil && *d.LastName != "" {
		parts = append(parts, *d.LastName)
	}
	return strings.Join(parts, " ")
}

type Filter struct {
	Ids   []string
	Email *string
}

//go:generate mockgen --build_flags=--mod=mod -source=./doctors.go -destination=./test/mock_service.go -package test MockService

type Service interface {
	Get(ctx context.Context, id string) (*Doctor, error)
	GetByEmail(ctx context.Context, email string) (*Doctor, error)
	List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Doctor, error)
	Create(ctx context.Context, doctor Doctor) (*Doctor, error)
}
