package trackingcodes_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/afya-care/monitoring/doctors"
	doctorsTest "github.com/afya-care/monitoring/doctors/test"
	mailerTest "github.com/afya-care/monitoring/mailer/test"
	"github.com/afya-care/monitoring/patients"
	patientsTest "github.com/afya-care/monitoring/patients/test"
	"github.com/afya-care/monitoring/test"
	"github.com/afya-care/monitoring/trackingcodes"
	trackingcodesTest "github.com/afya-care/monitoring/trackingcodes/test"
)

var _ = Describe("Service", func() {
	var ctrl *gomock.Controller
	var repo *trackingcodesTest.MockRepository
	var doctorsService *doctorsTest.MockService
	var patientsService *patientsTest.MockService
	var mailerClient *mailerTest.MockClient
	var service trackingcodes.Service

	var doctor *doctors.Doctor

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		repo = trackingcodesTest.NewMockRepository(ctrl)
		doctorsService = doctorsTest.NewMockService(ctrl)
		patientsService = patientsTest.NewMockService(ctrl)
		mailerClient = mailerTest.NewMockClient(ctrl)
		doctor = doctorsTest.PersistedDoctor()

		generator, err := trackingcodes.NewGenerator()
		Expect(err).ToNot(HaveOccurred())

		service, err = trackingcodes.NewService(nil, repo, generator, doctorsService, patientsService, mailerClient, zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	Describe("Create", func() {
		var create trackingcodes.NewCode

		BeforeEach(func() {
			create = trackingcodes.NewCode{
				DoctorId:    *doctor.Id,
				SentTo:      test.Faker.Internet().Email(),
				SentBy:      trackingcodes.ChannelEmail,
				PatientName: test.Faker.Person().Name(),
			}
		})

		It("fails when the doctor does not exist", func() {
			doctorsService.EXPECT().
				Get(gomock.Any(), doctor.Id.Hex()).
				Return(nil, doctors.ErrNotFound)

			_, err := service.Create(context.Background(), create)
			Expect(err).To(MatchError(doctors.ErrNotFound))
		})

		It("retries generation when the code collides", func() {
			doctorsService.EXPECT().
				Get(gomock.Any(), doctor.Id.Hex()).
				Return(doctor, nil)

			duplicate := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
			gomock.InOrder(
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, duplicate),
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, code trackingcodes.TrackingCode) (*trackingcodes.TrackingCode, error) {
						return &code, nil
					}),
			)
			mailerClient.EXPECT().
				SendTrackingCode(gomock.Any(), create.SentTo, gomock.Any(), create.PatientName).
				Return(nil)

			created, err := service.Create(context.Background(), create)
			Expect(err).ToNot(HaveOccurred())
			Expect(created.IsActive).To(BeTrue())
			Expect(trackingcodes.ValidateFormat(created.Code)).To(BeTrue())
		})

		It("succeeds even when the notification cannot be delivered", func() {
			doctorsService.EXPECT().
				Get(gomock.Any(), doctor.Id.Hex()).
				Return(doctor, nil)
			repo.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, code trackingcodes.TrackingCode) (*trackingcodes.TrackingCode, error) {
					return &code, nil
				})
			mailerClient.EXPECT().
				SendTrackingCode(gomock.Any(), create.SentTo, gomock.Any(), create.PatientName).
				Return(context.DeadlineExceeded)

			created, err := service.Create(context.Background(), create)
			Expect(err).ToNot(HaveOccurred())
			Expect(created).ToNot(BeNil())
		})

		It("skips email delivery for sms codes", func() {
			create.SentBy = trackingcodes.ChannelSMS

			doctorsService.EXPECT().
				Get(gomock.Any(), doctor.Id.Hex()).
				Return(doctor, nil)
			repo.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, code trackingcodes.TrackingCode) (*trackingcodes.TrackingCode, error) {
					return &code, nil
				})

			_, err := service.Create(context.Background(), create)
			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("Get", func() {
		It("rejects malformed codes before hitting the store", func() {
			_, err := service.Get(context.Background(), "AFYA-AB1")
			Expect(err).To(MatchError(trackingcodes.ErrInvalidFormat))
		})

		It("normalizes the code before the lookup", func() {
			code := trackingcodesTest.RandomActiveCode(*doctor.Id)
			repo.EXPECT().
				FindByCode(gomock.Any(), code.Code).
				Return(code, nil)

			found, err := service.Get(context.Background(), "  "+code.Code+"  ")
			Expect(err).ToNot(HaveOccurred())
			Expect(found).To(Equal(code))
		})
	})

	Describe("Redeem", func() {
		var patientId primitive.ObjectID

		BeforeEach(func() {
			patientId = primitive.NewObjectID()
		})

		It("rejects malformed codes without touching the store", func() {
			_, err := service.Redeem(context.Background(), "not-a-code", patientId.Hex())
			Expect(err).To(MatchError(trackingcodes.ErrInvalidFormat))
		})

		It("rejects invalid patient ids", func() {
			_, err := service.Redeem(context.Background(), trackingcodesTest.RandomCodeString(), "not-an-object-id")
			Expect(err).To(MatchError(patients.ErrNotFound))
		})

		It("fails when the code does not exist", func() {
			code := trackingcodesTest.RandomCodeString()
			repo.EXPECT().
				FindByCode(gomock.Any(), code).
				Return(nil, trackingcodes.ErrNotFound)

			_, err := service.Redeem(context.Background(), code, patientId.Hex())
			Expect(err).To(MatchError(trackingcodes.ErrNotFound))
		})

		It("fails cleanly when the issuing doctor is gone", func() {
			code := trackingcodesTest.RandomActiveCode(*doctor.Id)
			repo.EXPECT().
				FindByCode(gomock.Any(), code.Code).
				Return(code, nil)
			doctorsService.EXPECT().
				Get(gomock.Any(), doctor.Id.Hex()).
				Return(nil, doctors.ErrNotFound)

			_, err := service.Redeem(context.Background(), code.Code, patientId.Hex())
			Expect(err).To(MatchError(doctors.ErrNotFound))
		})

		It("treats a repeat redemption by the same patient as success", func() {
			code := trackingcodesTest.RedeemedCode(*doctor.Id, patientId)
			repo.EXPECT().
				FindByCode(gomock.Any(), code.Code).
				Return(code, nil)
			doctorsService.EXPECT().
				Get(gomock.Any(), doctor.Id.Hex()).
				Return(doctor, nil)

			association, err := service.Redeem(context.Background(), code.Code, patientId.Hex())
			Expect(err).ToNot(HaveOccurred())
			Expect(association.DoctorId).To(Equal(*doctor.Id))
			Expect(association.DoctorName).To(Equal(doctor.FullName()))
			Expect(association.Code).To(Equal(code.Code))
		})

		It("rejects a code already redeemed by another patient", func() {
			otherPatient := primitive.NewObjectID()
			code := trackingcodesTest.RedeemedCode(*doctor.Id, otherPatient)
			repo.EXPECT().
				FindByCode(gomock.Any(), code.Code).
				Return(code, nil)
			doctorsService.EXPECT().
				Get(gomock.Any(), doctor.Id.Hex()).
				Return(doctor, nil)

			_, err := service.Redeem(context.Background(), code.Code, patientId.Hex())
			Expect(err).To(MatchError(trackingcodes.ErrAlreadyRedeemed))
		})
	})
})
