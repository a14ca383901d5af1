package test

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afya-care/monitoring/glycemia"
)

func ReadingWith(value float64, context glycemia.MealContext) *glycemia.Reading {
	patientId := primitive.NewObjectID()
	return &glycemia.Reading{
		PatientId:   &patientId,
		Value:       value,
		MealContext: context,
		Timestamp:   time.Now(),
		Status:      glycemia.Classify(value, context),
	}
}

func Readings(values []float64, context glycemia.MealContext) []*glycemia.Reading {
	readings := make([]*glycemia.Reading, 0, len(values))
	for _, value := range values {
		readings = append(readings, ReadingWith(value, context))
	}
	return readings
}
