package glycemia

import (
	"context"
	"fmt"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afya-care/monitoring/errors"
	"github.com/afya-care/monitoring/patients"
	"github.com/afya-care/monitoring/store"
)

var ErrNotFound = fmt.Errorf("reading %w", errors.NotFound)
var ErrInvalidValue = fmt.Errorf("reading value %w", errors.BadRequest)
var ErrInvalidMealContext = fmt.Errorf("meal context %w", errors.BadRequest)
var ErrInvalidMealSlot = fmt.Errorf("meal slot %w", errors.BadRequest)

// Status is the clinical classification of a single reading.
type Status string

const (
	StatusHypo    Status = "hypo"
	StatusNormal  Status = "normal"
	StatusWarning Status = "warning"
	StatusHigh    Status = "high"
)

// MealContext determines which threshold table applies to a reading.
type MealContext string

const (
	ContextFasting    MealContext = "fasting"
	ContextBeforeMeal MealContext = "before_meal"
	ContextAfterMeal  MealContext = "after_meal"
)

func (m MealContext) IsValid() bool {
	switch m {
	case ContextFasting, ContextBeforeMeal, ContextAfterMeal:
		return true
	}
	return false
}

// MealSlot is the finer schedule tag a patient attaches to a reading.
type MealSlot string

const (
	SlotFasting         MealSlot = "fasting"
	SlotBeforeBreakfast MealSlot = "before_breakfast"
	SlotAfterBreakfast  MealSlot = "after_breakfast"
	SlotBeforeLunch     MealSlot = "before_lunch"
	SlotAfterLunch      MealSlot = "after_lunch"
	SlotBeforeDinner    MealSlot = "before_dinner"
	SlotAfterDinner     MealSlot = "after_dinner"
	SlotBedtime         MealSlot = "bedtime"
)

// scheduleByMode lists the slots a patient is expected to fill under each
// monitoring mode. The set size matches the mode's expected daily count.
var scheduleByMode = map[patients.MonitoringMode]mapset.Set[MealSlot]{
	patients.ModeClassique: mapset.NewSet(
		SlotFasting, SlotAfterBreakfast, SlotAfterLunch, SlotAfterDinner,
	),
	patients.ModeLean: mapset.NewSet(
		SlotFasting, SlotAfterBreakfast, SlotAfterLunch, SlotAfterDinner, SlotBedtime,
	),
	patients.ModeStrict: mapset.NewSet(
		SlotFasting, SlotBeforeLunch, SlotAfterBreakfast, SlotAfterLunch, SlotAfterDinner, SlotBedtime,
	),
	patients.ModeStrict8: mapset.NewSet(
		SlotFasting, SlotBeforeBreakfast, SlotAfterBreakfast, SlotBeforeLunch, SlotAfterLunch,
		SlotBeforeDinner, SlotAfterDinner, SlotBedtime,
	),
}

// ScheduleFor returns the meal slots expected under the given monitoring mode.
func ScheduleFor(mode patients.MonitoringMode) mapset.Set[MealSlot] {
	if schedule, ok := scheduleByMode[mode]; ok {
		return schedule
	}
	return scheduleByMode[patients.ModeClassique]
}

// Reading is a single blood-glucose measurement. Readings are immutable once
// stored: there is no update or delete operation.
type Reading struct {
	Id             *primitive.ObjectID `bson:"_id,omitempty"`
	PatientId      *primitive.ObjectID `bson:"patientId,omitempty"`
	Value          float64             `bson:"value"`
	MealContext    MealContext         `bson:"mealContext"`
	MealSlot       *MealSlot           `bson:"mealSlot,omitempty"`
	Timestamp      time.Time           `bson:"timestamp"`
	Status         Status              `bson:"status"`
	IdempotencyKey *string             `bson:"idempotencyKey,omitempty"`
	CreatedTime    time.Time           `bson:"createdTime"`
}

type Filter struct {
	PatientId *primitive.ObjectID
	From      *time.Time
	To        *time.Time
}

type Service interface {
	CreateReading(ctx context.Context, reading Reading) (*Reading, error)
	ListReadings(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Reading, error)
	DailySummary(ctx context.Context, patientId string, day time.Time) (*DailyAggregate, error)
	WeeklySummary(ctx context.Context, patientId string, weekStart time.Time) (*WeeklySummary, error)
}

//go:generate mockgen --build_flags=--mod=mod -source=./glycemia.go -destination=./test/mock_glycemia.go -package test

type Repository interface {
	Create(ctx context.Context, reading Reading) (*Reading, error)
	Get(ctx context.Context, id string) (*Reading, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*Reading, error)
	List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Reading, error)
}
