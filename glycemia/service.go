package glycemia

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/afya-care/monitoring/patients"
	"github.com/afya-care/monitoring/store"
)

// maxReadingsPerDay bounds the per-day fetch. Even the strictest monitoring
// mode prescribes 8 readings, so this leaves generous room for over-measuring.
const maxReadingsPerDay = 100

type service struct {
	repository Repository
	patients   patients.Service
	logger     *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(repository Repository, patientsService patients.Service, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		repository: repository,
		patients:   patientsService,
		logger:     logger,
	}, nil
}

func (s *service) CreateReading(ctx context.Context, reading Reading) (*Reading, error) {
	if reading.Value <= 0 {
		return nil, ErrInvalidValue
	}
	if !reading.MealContext.IsValid() {
		return nil, ErrInvalidMealContext
	}
	if reading.PatientId == nil {
		return nil, patients.ErrNotFound
	}

	patient, err := s.patients.Get(ctx, reading.PatientId.Hex())
	if err != nil {
		return nil, err
	}
	if reading.MealSlot != nil {
		if !ScheduleFor(patient.MonitoringMode).Contains(*reading.MealSlot) {
			return nil, ErrInvalidMealSlot
		}
	}

	// The status is derived once at write time so readings stay immutable
	reading.Status = Classify(reading.Value, reading.MealContext)
	if reading.Timestamp.IsZero() {
		reading.Timestamp = time.Now()
	}
	if reading.IdempotencyKey == nil {
		key := uuid.NewString()
		reading.IdempotencyKey = &key
	}
	reading.CreatedTime = time.Now()

	created, err := s.repository.Create(ctx, reading)
	if err != nil {
		return nil, err
	}

	s.logger.Debugw("stored glycemia reading",
		"patientId", reading.PatientId.Hex(),
		"status", created.Status,
	)
	return created, nil
}

func (s *service) ListReadings(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Reading, error) {
	return s.repository.List(ctx, filter, pagination)
}

func (s *service) DailySummary(ctx context.Context, patientId string, day time.Time) (*DailyAggregate, error) {
	patient, err := s.patients.Get(ctx, patientId)
	if err != nil {
		return nil, err
	}

	readings, err := s.readingsForDay(ctx, patient, day)
	if err != nil {
		return nil, err
	}

	aggregate := AggregateDay(readings, patient.MonitoringMode.ExpectedDailyReadings())
	aggregate.Date = startOfDay(day)
	return &aggregate, nil
}

func (s *service) WeeklySummary(ctx context.Context, patientId string, weekStart time.Time) (*WeeklySummary, error) {
	patient, err := s.patients.Get(ctx, patientId)
	if err != nil {
		return nil, err
	}

	expected := patient.MonitoringMode.ExpectedDailyReadings()
	days := make([]DailyAggregate, 0, 7)
	for i := 0; i < 7; i++ {
		day := startOfDay(weekStart).AddDate(0, 0, i)
		readings, err := s.readingsForDay(ctx, patient, day)
		if err != nil {
			return nil, err
		}

		aggregate := AggregateDay(readings, expected)
		aggregate.Date = day
		days = append(days, aggregate)
	}

	summary := AggregateWeek(days, expected)
	summary.WeekStart = startOfDay(weekStart)
	return &summary, nil
}

func (s *service) readingsForDay(ctx context.Context, patient *patients.Patient, day time.Time) ([]*Reading, error) {
	from := startOfDay(day)
	to := from.AddDate(0, 0, 1)
	filter := &Filter{
		PatientId: patient.Id,
		From:      &from,
		To:        &to,
	}
	return s.repository.List(ctx, filter, store.Pagination{Limit: maxReadingsPerDay})
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
