package test

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afya-care/monitoring/pointer"
	"github.com/afya-care/monitoring/test"
	"github.com/afya-care/monitoring/trackingcodes"
)

const codeCharacters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func RandomCodeString() string {
	b := make([]byte, 5)
	for i := range b {
		b[i] = codeCharacters[test.Rand.Intn(len(codeCharacters))]
	}
	return "AFYA-" + string(b)
}

func RandomActiveCode(doctorId primitive.ObjectID) *trackingcodes.TrackingCode {
	id := primitive.NewObjectID()
	return &trackingcodes.TrackingCode{
		Id:        &id,
		Code:      RandomCodeString(),
		DoctorId:  doctorId,
		CreatedAt: time.Now(),
		SentTo:    pointer.FromAny(test.Faker.Internet().Email()),
		SentBy:    trackingcodes.ChannelEmail,
		IsActive:  true,
	}
}

func RedeemedCode(doctorId, patientId primitive.ObjectID) *trackingcodes.TrackingCode {
	code := RandomActiveCode(doctorId)
	code.IsActive = false
	code.UsedBy = &patientId
	code.UsedAt = pointer.FromAny(time.Now())
	return code
}
