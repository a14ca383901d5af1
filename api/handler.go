package api

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/afya-care/monitoring/doctors"
	"github.com/afya-care/monitoring/glycemia"
	"github.com/afya-care/monitoring/messages"
	"github.com/afya-care/monitoring/patients"
	"github.com/afya-care/monitoring/trackingcodes"
)

type Handler struct {
	glycemia      glycemia.Service
	trackingCodes trackingcodes.Service
	patients      patients.Service
	doctors       doctors.Service
	mfa           doctors.MFAService
	messages      messages.Service
}

type Params struct {
	fx.In

	Glycemia      glycemia.Service
	TrackingCodes trackingcodes.Service
	Patients      patients.Service
	Doctors       doctors.Service
	MFA           doctors.MFAService
	Messages      messages.Service
}

func NewHandler(p Params) *Handler {
	return &Handler{
		glycemia:      p.Glycemia,
		trackingCodes: p.TrackingCodes,
		patients:      p.Patients,
		doctors:       p.Doctors,
		mfa:           p.MFA,
		messages:      p.Messages,
	}
}

// RegisterHandlers wires the route table. Doctor-portal routes require a
// session token minted by the MFA flow; patient-portal routes do not.
func RegisterHandlers(e *echo.Echo, h *Handler, authMiddleware echo.MiddlewareFunc) {
	e.POST("/v1/auth/login", h.Login)
	e.POST("/v1/auth/verify", h.Verify)

	e.POST("/v1/doctors", h.CreateDoctor)

	e.POST("/v1/patients", h.CreatePatient)
	e.GET("/v1/patients/:patientId", h.GetPatient)
	e.POST("/v1/patients/:patientId/associate", h.AssociatePatient)
	e.POST("/v1/patients/:patientId/readings", h.CreateReading)
	e.GET("/v1/patients/:patientId/readings", h.ListReadings)
	e.GET("/v1/patients/:patientId/summary/daily", h.DailySummary)
	e.GET("/v1/patients/:patientId/summary/weekly", h.WeeklySummary)
	e.POST("/v1/patients/:patientId/messages", h.SendPatientMessage)
	e.GET("/v1/patients/:patientId/messages", h.ListPatientMessages)
	e.POST("/v1/patients/:patientId/messages/:messageId/read", h.MarkMessageRead)

	doctor := e.Group("/v1/doctors/:doctorId", authMiddleware)
	doctor.GET("", h.GetDoctor)
	doctor.GET("/patients", h.ListDoctorPatients)
	doctor.POST("/tracking-codes", h.CreateTrackingCode)
	doctor.GET("/tracking-codes", h.ListTrackingCodes)
	doctor.POST("/messages", h.SendDoctorMessage)
	doctor.GET("/messages", h.ListDoctorMessages)
	doctor.POST("/messages/:messageId/read", h.MarkDoctorMessageRead)
}
