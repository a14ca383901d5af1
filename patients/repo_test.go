package patients_test

import (
	"context"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx/fxtest"

	"github.com/afya-care/monitoring/patients"
	patientsTest "github.com/afya-care/monitoring/patients/test"
	"github.com/afya-care/monitoring/pointer"
	"github.com/afya-care/monitoring/store"
	storeTest "github.com/afya-care/monitoring/store/test"
)

var _ = BeforeSuite(func() {
	storeTest.SetupDatabase()
})

var _ = AfterSuite(func() {
	storeTest.TeardownDatabase()
})

var _ = Describe("Repository", func() {
	var repo patients.Service

	BeforeEach(func() {
		lifecycle := fxtest.NewLifecycle(GinkgoT())

		var err error
		repo, err = patients.NewRepository(storeTest.GetTestDatabase(), lifecycle)
		Expect(err).ToNot(HaveOccurred())
		Expect(repo).ToNot(BeNil())

		lifecycle.RequireStart()
	})

	Describe("Create", func() {
		It("lowercases the email address", func() {
			patient := patientsTest.RandomPatient()
			patient.Email = pointer.FromAny(strings.ToUpper(*patient.Email))

			created, err := repo.Create(context.Background(), patient)
			Expect(err).ToNot(HaveOccurred())
			Expect(*created.Email).To(Equal(strings.ToLower(*patient.Email)))
		})

		It("defaults an unknown monitoring mode to classique", func() {
			patient := patientsTest.RandomPatient()
			patient.MonitoringMode = patients.MonitoringMode("relaxed")

			created, err := repo.Create(context.Background(), patient)
			Expect(err).ToNot(HaveOccurred())
			Expect(created.MonitoringMode).To(Equal(patients.ModeClassique))
		})

		It("rejects a duplicate email address", func() {
			patient := patientsTest.RandomPatient()

			_, err := repo.Create(context.Background(), patient)
			Expect(err).ToNot(HaveOccurred())

			_, err = repo.Create(context.Background(), patient)
			Expect(err).To(MatchError(patients.ErrDuplicateEmail))
		})
	})

	Describe("Associate", func() {
		It("stamps the doctor association and unlocks features", func() {
			created, err := repo.Create(context.Background(), patientsTest.RandomPatient())
			Expect(err).ToNot(HaveOccurred())
			Expect(created.HasUnlockedFeatures).To(BeFalse())

			association := patients.Association{
				DoctorId:     primitive.NewObjectID(),
				DoctorName:   "Leila Ben Salem",
				TrackingCode: "AFYA-AB12C",
				AssociatedAt: time.Now(),
			}

			updated, err := repo.Associate(context.Background(), created.Id.Hex(), association)
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.DoctorId).To(HaveValue(Equal(association.DoctorId)))
			Expect(updated.DoctorName).To(HaveValue(Equal(association.DoctorName)))
			Expect(updated.TrackingCode).To(HaveValue(Equal(association.TrackingCode)))
			Expect(updated.HasUnlockedFeatures).To(BeTrue())
		})

		It("fails for unknown patients", func() {
			association := patients.Association{
				DoctorId:     primitive.NewObjectID(),
				DoctorName:   "Leila Ben Salem",
				TrackingCode: "AFYA-AB12C",
				AssociatedAt: time.Now(),
			}

			_, err := repo.Associate(context.Background(), primitive.NewObjectID().Hex(), association)
			Expect(err).To(MatchError(patients.ErrNotFound))
		})
	})

	Describe("List", func() {
		It("filters by doctor", func() {
			doctorId := primitive.NewObjectID()

			created, err := repo.Create(context.Background(), patientsTest.RandomPatient())
			Expect(err).ToNot(HaveOccurred())
			_, err = repo.Associate(context.Background(), created.Id.Hex(), patients.Association{
				DoctorId:     doctorId,
				DoctorName:   "Leila Ben Salem",
				TrackingCode: "AFYA-XY99Z",
				AssociatedAt: time.Now(),
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = repo.Create(context.Background(), patientsTest.RandomPatient())
			Expect(err).ToNot(HaveOccurred())

			list, err := repo.List(context.Background(), &patients.Filter{DoctorId: &doctorId}, store.Pagination{Limit: 10})
			Expect(err).ToNot(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].Id).To(Equal(created.Id))
		})
	})
})
