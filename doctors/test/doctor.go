package test

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afya-care/monitoring/doctors"
	"github.com/afya-care/monitoring/pointer"
	"github.com/afya-care/monitoring/test"
)

func RandomDoctor() doctors.Doctor {
	return doctors.Doctor{
		FirstName:  pointer.FromAny(test.Faker.Person().FirstName()),
		LastName:   pointer.FromAny(test.Faker.Person().LastName()),
		Email:      pointer.FromAny(test.Faker.Internet().Email()),
		Speciality: pointer.FromAny("Endocrinology"),
	}
}

func PersistedDoctor() *doctors.Doctor {
	doctor := RandomDoctor()
	id := primitive.NewObjectID()
	doctor.Id = &id
	return &doctor
}
