package patients

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afya-care/monitoring/errors"
	"github.com/afya-care/monitoring/store"
)

var ErrNotFound = fmt.Errorf("patient %w", errors.NotFound)
var ErrDuplicateEmail = fmt.Errorf("%w email address", errors.Duplicate)

// MonitoringMode is the prescribed daily reading schedule.
type MonitoringMode string

const (
	ModeClassique MonitoringMode = "classique"
	ModeLean      MonitoringMode = "lean"
	ModeStrict    MonitoringMode = "strict"
	ModeStrict8   MonitoringMode = "strict8"
)

func (m MonitoringMode) IsValid() bool {
	switch m {
	case ModeClassique, ModeLean, ModeStrict, ModeStrict8:
		return true
	}
	return false
}

// ExpectedDailyReadings is the number of readings the mode prescribes per day.
func (m MonitoringMode) ExpectedDailyReadings() int {
	switch m {
	case ModeLean:
		return 5
	case ModeStrict:
		return 6
	case ModeStrict8:
		return 8
	default:
		return 4
	}
}

// PostMealTiming is how long after a meal the post-meal reading is taken.
type PostMealTiming string

const (
	PostMealOneHour  PostMealTiming = "1h"
	PostMealTwoHours PostMealTiming = "2h"
)

type Patient struct {
	Id             *primitive.ObjectID `bson:"_id,omitempty"`
	FullName       *string             `bson:"fullName,omitempty"`
	Email          *string             `bson:"email,omitempty"`
	PhoneNumber    *string             `bson:"phoneNumber,omitempty"`
	BirthDate      *string             `bson:"birthDate,omitempty"`
	MonitoringMode MonitoringMode      `bson:"monitoringMode,omitempty"`
	PostMealTiming PostMealTiming      `bson:"postMealTiming,omitempty"`

	// Doctor association state. HasUnlockedFeatures is true iff the patient
	// has a successfully resolved doctor association.
	DoctorId            *primitive.ObjectID `bson:"doctorId,omitempty"`
	DoctorName          *string             `bson:"doctorName,omitempty"`
	TrackingCode        *string             `bson:"trackingCode,omitempty"`
	AssociatedAt        *time.Time          `bson:"associatedAt,omitempty"`
	HasUnlockedFeatures bool                `bson:"hasUnlockedFeatures"`

	CreatedTime time.Time `bson:"createdTime,omitempty"`
	UpdatedTime time.Time `bson:"updatedTime,omitempty"`
}

// Association captures the fields set on a patient when a tracking code is
// redeemed on their behalf.
type Association struct {
	DoctorId     primitive.ObjectID
	DoctorName   string
	TrackingCode string
	AssociatedAt time.Time
}

type Filter struct {
	Ids      []string
	Email    *string
	DoctorId *primitive.ObjectID
}

//go:generate mockgen --build_flags=--mod=mod -source=./patients.go -destination=./test/mock_service.go -package test MockService

type Service interface {
	Get(ctx context.Context, id string) (*Patient, error)
	List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Patient, error)
	Create(ctx context.Context, patient Patient) (*Patient, error)
	Associate(ctx context.Context, id string, association Association) (*Patient, error)
}
