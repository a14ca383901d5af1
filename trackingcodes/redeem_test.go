package trackingcodes_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"go.uber.org/fx/fxtest"

	"github.com/afya-care/monitoring/doctors"
	doctorsTest "github.com/afya-care/monitoring/doctors/test"
	mailerTest "github.com/afya-care/monitoring/mailer/test"
	"github.com/afya-care/monitoring/patients"
	patientsTest "github.com/afya-care/monitoring/patients/test"
	storeTest "github.com/afya-care/monitoring/store/test"
	"github.com/afya-care/monitoring/test"
	"github.com/afya-care/monitoring/trackingcodes"
)

// Drives the full redemption flow against mongo: the conditional deactivate
// and the patient association commit in the same transaction.
var _ = Describe("Redeem", func() {
	var ctrl *gomock.Controller
	var mailerClient *mailerTest.MockClient
	var service trackingcodes.Service
	var patientsRepo patients.Service

	var doctor *doctors.Doctor
	var patient *patients.Patient

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		mailerClient = mailerTest.NewMockClient(ctrl)

		lifecycle := fxtest.NewLifecycle(GinkgoT())
		db := storeTest.GetTestDatabase()

		repo, err := trackingcodes.NewRepository(db, lifecycle)
		Expect(err).ToNot(HaveOccurred())
		doctorsRepo, err := doctors.NewRepository(db, lifecycle)
		Expect(err).ToNot(HaveOccurred())
		patientsRepo, err = patients.NewRepository(db, lifecycle)
		Expect(err).ToNot(HaveOccurred())
		generator, err := trackingcodes.NewGenerator()
		Expect(err).ToNot(HaveOccurred())

		service, err = trackingcodes.NewService(db.Client(), repo, generator, doctorsRepo, patientsRepo, mailerClient, zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())

		lifecycle.RequireStart()

		doctor, err = doctorsRepo.Create(context.Background(), doctorsTest.RandomDoctor())
		Expect(err).ToNot(HaveOccurred())
		patient, err = patientsRepo.Create(context.Background(), patientsTest.RandomPatient())
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	It("associates the patient and deactivates the code in one step", func() {
		mailerClient.EXPECT().
			SendTrackingCode(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		created, err := service.Create(context.Background(), trackingcodes.NewCode{
			DoctorId:    *doctor.Id,
			SentTo:      test.Faker.Internet().Email(),
			SentBy:      trackingcodes.ChannelEmail,
			PatientName: test.Faker.Person().Name(),
		})
		Expect(err).ToNot(HaveOccurred())

		association, err := service.Redeem(context.Background(), created.Code, patient.Id.Hex())
		Expect(err).ToNot(HaveOccurred())
		Expect(association.DoctorId).To(Equal(*doctor.Id))
		Expect(association.DoctorName).To(Equal(doctor.FullName()))
		Expect(association.Code).To(Equal(created.Code))

		updated, err := patientsRepo.Get(context.Background(), patient.Id.Hex())
		Expect(err).ToNot(HaveOccurred())
		Expect(updated.HasUnlockedFeatures).To(BeTrue())
		Expect(updated.DoctorId).To(HaveValue(Equal(*doctor.Id)))
		Expect(updated.DoctorName).To(HaveValue(Equal(doctor.FullName())))
		Expect(updated.TrackingCode).To(HaveValue(Equal(created.Code)))

		redeemed, err := service.Get(context.Background(), created.Code)
		Expect(err).ToNot(HaveOccurred())
		Expect(redeemed.IsActive).To(BeFalse())
		Expect(redeemed.UsedBy).To(HaveValue(Equal(*patient.Id)))
		Expect(redeemed.UsedAt).ToNot(BeNil())

		// The same patient retrying is a no-op success
		again, err := service.Redeem(context.Background(), created.Code, patient.Id.Hex())
		Expect(err).ToNot(HaveOccurred())
		Expect(again.Code).To(Equal(created.Code))

		// Any other patient loses
		other, err := patientsRepo.Create(context.Background(), patientsTest.RandomPatient())
		Expect(err).ToNot(HaveOccurred())
		_, err = service.Redeem(context.Background(), created.Code, other.Id.Hex())
		Expect(err).To(MatchError(trackingcodes.ErrAlreadyRedeemed))

		unchanged, err := patientsRepo.Get(context.Background(), other.Id.Hex())
		Expect(err).ToNot(HaveOccurred())
		Expect(unchanged.HasUnlockedFeatures).To(BeFalse())
		Expect(unchanged.DoctorId).To(BeNil())
	})
})
