package messages_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx/fxtest"

	"github.com/afya-care/monitoring/messages"
	"github.com/afya-care/monitoring/store"
	storeTest "github.com/afya-care/monitoring/store/test"
	"github.com/afya-care/monitoring/test"
)

var _ = BeforeSuite(func() {
	storeTest.SetupDatabase()
})

var _ = AfterSuite(func() {
	storeTest.TeardownDatabase()
})

var _ = Describe("Repository", func() {
	var repo messages.Service
	var patientId, doctorId primitive.ObjectID

	BeforeEach(func() {
		lifecycle := fxtest.NewLifecycle(GinkgoT())

		var err error
		repo, err = messages.NewRepository(storeTest.GetTestDatabase(), lifecycle)
		Expect(err).ToNot(HaveOccurred())
		Expect(repo).ToNot(BeNil())

		lifecycle.RequireStart()
		patientId = primitive.NewObjectID()
		doctorId = primitive.NewObjectID()
	})

	newMessage := func(sender messages.Sender, sentAt time.Time) messages.Message {
		return messages.Message{
			PatientId: patientId,
			DoctorId:  doctorId,
			Sender:    sender,
			Body:      test.Faker.Lorem().Sentence(5),
			SentAt:    sentAt,
		}
	}

	Describe("Send", func() {
		It("rejects unknown senders", func() {
			message := newMessage(messages.Sender("nurse"), time.Now())
			_, err := repo.Send(context.Background(), message)
			Expect(err).To(MatchError(messages.ErrInvalidSender))
		})

		It("rejects empty bodies", func() {
			message := newMessage(messages.SenderPatient, time.Now())
			message.Body = ""
			_, err := repo.Send(context.Background(), message)
			Expect(err).To(MatchError(messages.ErrEmptyBody))
		})

		It("persists the message unread", func() {
			created, err := repo.Send(context.Background(), newMessage(messages.SenderDoctor, time.Now()))
			Expect(err).ToNot(HaveOccurred())
			Expect(created.Id).ToNot(BeNil())
			Expect(created.ReadAt).To(BeNil())
		})
	})

	Describe("List", func() {
		It("returns the thread newest first", func() {
			base := time.Now().Add(-time.Hour)
			for i := 0; i < 3; i++ {
				_, err := repo.Send(context.Background(), newMessage(messages.SenderPatient, base.Add(time.Duration(i)*time.Minute)))
				Expect(err).ToNot(HaveOccurred())
			}

			filter := &messages.Filter{PatientId: &patientId, DoctorId: &doctorId}
			list, err := repo.List(context.Background(), filter, store.Pagination{Limit: 10})
			Expect(err).ToNot(HaveOccurred())
			Expect(list).To(HaveLen(3))
			Expect(list[0].SentAt.After(list[1].SentAt)).To(BeTrue())
			Expect(list[1].SentAt.After(list[2].SentAt)).To(BeTrue())
		})
	})

	Describe("MarkRead", func() {
		It("stamps the read time once and stays idempotent", func() {
			created, err := repo.Send(context.Background(), newMessage(messages.SenderDoctor, time.Now()))
			Expect(err).ToNot(HaveOccurred())

			Expect(repo.MarkRead(context.Background(), created.Id.Hex())).To(Succeed())

			filter := &messages.Filter{PatientId: &patientId}
			list, err := repo.List(context.Background(), filter, store.Pagination{Limit: 10})
			Expect(err).ToNot(HaveOccurred())
			Expect(list[0].ReadAt).ToNot(BeNil())
			readAt := *list[0].ReadAt

			// Marking again must not move the timestamp
			Expect(repo.MarkRead(context.Background(), created.Id.Hex())).To(Succeed())
			list, err = repo.List(context.Background(), filter, store.Pagination{Limit: 10})
			Expect(err).ToNot(HaveOccurred())
			Expect(*list[0].ReadAt).To(BeTemporally("==", readAt))
		})

		It("succeeds for unknown messages", func() {
			Expect(repo.MarkRead(context.Background(), primitive.NewObjectID().Hex())).To(Succeed())
		})
	})
})
