package test

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afya-care/monitoring/patients"
	"github.com/afya-care/monitoring/pointer"
	"github.com/afya-care/monitoring/test"
)

var monitoringModes = []patients.MonitoringMode{
	patients.ModeClassique,
	patients.ModeLean,
	patients.ModeStrict,
	patients.ModeStrict8,
}

func RandomPatient() patients.Patient {
	return patients.Patient{
		FullName:       pointer.FromAny(test.Faker.Person().Name()),
		Email:          pointer.FromAny(test.Faker.Internet().Email()),
		PhoneNumber:    pointer.FromAny(test.Faker.Phone().Number()),
		BirthDate:      pointer.FromAny("1992-04-16"),
		MonitoringMode: monitoringModes[test.Rand.Intn(len(monitoringModes))],
		PostMealTiming: patients.PostMealTwoHours,
	}
}

func RandomAssociatedPatient() patients.Patient {
	patient := RandomPatient()
	doctorId := primitive.NewObjectID()
	patient.DoctorId = &doctorId
	patient.DoctorName = pointer.FromAny(test.Faker.Person().Name())
	patient.TrackingCode = pointer.FromAny("AFYA-" + test.Faker.RandomStringWithLength(5))
	patient.HasUnlockedFeatures = true
	return patient
}
