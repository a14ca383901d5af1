package glycemia_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/afya-care/monitoring/glycemia"
	glycemiaTest "github.com/afya-care/monitoring/glycemia/test"
	"github.com/afya-care/monitoring/patients"
	patientsTest "github.com/afya-care/monitoring/patients/test"
	"github.com/afya-care/monitoring/store"
)

var _ = Describe("Service", func() {
	var ctrl *gomock.Controller
	var repo *glycemiaTest.MockRepository
	var patientsService *patientsTest.MockService
	var service glycemia.Service

	var patient *patients.Patient

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		repo = glycemiaTest.NewMockRepository(ctrl)
		patientsService = patientsTest.NewMockService(ctrl)

		var err error
		service, err = glycemia.NewService(repo, patientsService, zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())

		p := patientsTest.RandomPatient()
		id := primitive.NewObjectID()
		p.Id = &id
		p.MonitoringMode = patients.ModeClassique
		patient = &p
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	newReading := func(value float64, context glycemia.MealContext) glycemia.Reading {
		return glycemia.Reading{
			PatientId:   patient.Id,
			Value:       value,
			MealContext: context,
			Timestamp:   time.Now(),
		}
	}

	Describe("CreateReading", func() {
		It("rejects non-positive values", func() {
			reading := newReading(0, glycemia.ContextFasting)
			_, err := service.CreateReading(context.Background(), reading)
			Expect(err).To(MatchError(glycemia.ErrInvalidValue))
		})

		It("rejects unknown meal contexts", func() {
			reading := newReading(0.9, glycemia.MealContext("brunch"))
			_, err := service.CreateReading(context.Background(), reading)
			Expect(err).To(MatchError(glycemia.ErrInvalidMealContext))
		})

		It("rejects meal slots outside the patient's schedule", func() {
			patientsService.EXPECT().
				Get(gomock.Any(), patient.Id.Hex()).
				Return(patient, nil)

			reading := newReading(0.9, glycemia.ContextBeforeMeal)
			slot := glycemia.SlotBeforeDinner
			reading.MealSlot = &slot

			// classique mode expects fasting plus the three post-meal slots
			_, err := service.CreateReading(context.Background(), reading)
			Expect(err).To(MatchError(glycemia.ErrInvalidMealSlot))
		})

		It("derives the status at write time", func() {
			patientsService.EXPECT().
				Get(gomock.Any(), patient.Id.Hex()).
				Return(patient, nil)
			repo.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, reading glycemia.Reading) (*glycemia.Reading, error) {
					return &reading, nil
				})

			created, err := service.CreateReading(context.Background(), newReading(1.3, glycemia.ContextAfterMeal))
			Expect(err).ToNot(HaveOccurred())
			Expect(created.Status).To(Equal(glycemia.StatusWarning))
		})

		It("assigns an idempotency key when the client sends none", func() {
			patientsService.EXPECT().
				Get(gomock.Any(), patient.Id.Hex()).
				Return(patient, nil)
			repo.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, reading glycemia.Reading) (*glycemia.Reading, error) {
					return &reading, nil
				})

			created, err := service.CreateReading(context.Background(), newReading(0.9, glycemia.ContextFasting))
			Expect(err).ToNot(HaveOccurred())
			Expect(created.IdempotencyKey).ToNot(BeNil())
			Expect(*created.IdempotencyKey).ToNot(BeEmpty())
		})
	})

	Describe("DailySummary", func() {
		It("aggregates the readings of the requested day", func() {
			day := time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC)
			readings := glycemiaTest.Readings([]float64{0.80, 0.90, 1.00, 1.10}, glycemia.ContextAfterMeal)

			patientsService.EXPECT().
				Get(gomock.Any(), patient.Id.Hex()).
				Return(patient, nil)
			repo.EXPECT().
				List(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(readings, nil)

			summary, err := service.DailySummary(context.Background(), patient.Id.Hex(), day)
			Expect(err).ToNot(HaveOccurred())
			Expect(summary.Date).To(Equal(time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)))
			Expect(summary.TotalReadings).To(Equal(4))
			Expect(summary.Completed).To(BeTrue())
			Expect(summary.Status).To(Equal(glycemia.DayStatusGood))
		})
	})

	Describe("WeeklySummary", func() {
		It("fetches each of the seven days once", func() {
			weekStart := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

			patientsService.EXPECT().
				Get(gomock.Any(), patient.Id.Hex()).
				Return(patient, nil)
			repo.EXPECT().
				List(gomock.Any(), gomock.Any(), store.Pagination{Limit: 100}).
				Return(glycemiaTest.Readings([]float64{0.85}, glycemia.ContextFasting), nil).
				Times(7)

			summary, err := service.WeeklySummary(context.Background(), patient.Id.Hex(), weekStart)
			Expect(err).ToNot(HaveOccurred())
			Expect(summary.WeekStart).To(Equal(weekStart))
			Expect(summary.TotalReadings).To(Equal(7))
			Expect(summary.Average).To(Equal(0.85))
		})
	})
})
