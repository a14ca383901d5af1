package api

import (
	"time"

	"github.com/afya-care/monitoring/doctors"
	"github.com/afya-care/monitoring/glycemia"
	"github.com/afya-care/monitoring/messages"
	"github.com/afya-care/monitoring/patients"
	"github.com/afya-care/monitoring/pointer"
	"github.com/afya-care/monitoring/trackingcodes"
)

func NewPatientDto(patient *patients.Patient) PatientDto {
	dto := PatientDto{
		Id:                  patient.Id.Hex(),
		FullName:            pointer.ToString(patient.FullName),
		Email:               pointer.ToString(patient.Email),
		PhoneNumber:         patient.PhoneNumber,
		BirthDate:           patient.BirthDate,
		MonitoringMode:      string(patient.MonitoringMode),
		PostMealTiming:      string(patient.PostMealTiming),
		DoctorName:          patient.DoctorName,
		TrackingCode:        patient.TrackingCode,
		HasUnlockedFeatures: patient.HasUnlockedFeatures,
	}
	if patient.DoctorId != nil {
		dto.DoctorId = pointer.FromAny(patient.DoctorId.Hex())
	}
	if patient.AssociatedAt != nil {
		dto.AssociatedAt = pointer.FromAny(patient.AssociatedAt.Format(time.RFC3339))
	}
	return dto
}

func NewDoctorDto(doctor *doctors.Doctor) DoctorDto {
	return DoctorDto{
		Id:         doctor.Id.Hex(),
		FirstName:  pointer.ToString(doctor.FirstName),
		LastName:   pointer.ToString(doctor.LastName),
		FullName:   doctor.FullName(),
		Email:      pointer.ToString(doctor.Email),
		Speciality: doctor.Speciality,
	}
}

func NewReadingDto(reading *glycemia.Reading) ReadingDto {
	return ReadingDto{
		Id:          reading.Id.Hex(),
		PatientId:   reading.PatientId.Hex(),
		Value:       reading.Value,
		MealContext: string(reading.MealContext),
		MealSlot:    (*string)(reading.MealSlot),
		Timestamp:   reading.Timestamp,
		Status:      string(reading.Status),
	}
}

func NewTrackingCodeDto(code *trackingcodes.TrackingCode) TrackingCodeDto {
	dto := TrackingCodeDto{
		Id:        code.Id.Hex(),
		Code:      code.Code,
		DoctorId:  code.DoctorId.Hex(),
		CreatedAt: code.CreatedAt,
		SentTo:    code.SentTo,
		SentBy:    string(code.SentBy),
		IsActive:  code.IsActive,
		UsedAt:    code.UsedAt,
	}
	if code.UsedBy != nil {
		dto.UsedBy = pointer.FromAny(code.UsedBy.Hex())
	}
	return dto
}

func NewAssociationDto(association *trackingcodes.Association) AssociationDto {
	return AssociationDto{
		DoctorId:   association.DoctorId.Hex(),
		DoctorName: association.DoctorName,
		Code:       association.Code,
	}
}

func NewMessageDto(message *messages.Message) MessageDto {
	return MessageDto{
		Id:        message.Id.Hex(),
		PatientId: message.PatientId.Hex(),
		DoctorId:  message.DoctorId.Hex(),
		Sender:    string(message.Sender),
		Body:      message.Body,
		SentAt:    message.SentAt,
		ReadAt:    message.ReadAt,
	}
}
