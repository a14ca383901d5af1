package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/afya-care/monitoring/patients"
	"github.com/afya-care/monitoring/pointer"
	"github.com/afya-care/monitoring/trackingcodes"
)

type CreatePatientRequest struct {
	FullName       string  `json:"fullName"`
	Email          string  `json:"email"`
	PhoneNumber    *string `json:"phoneNumber,omitempty"`
	BirthDate      *string `json:"birthDate,omitempty"`
	MonitoringMode string  `json:"monitoringMode"`
	PostMealTiming string  `json:"postMealTiming"`

	// TrackingCode associates the patient with a doctor at registration time.
	// It is resolved through the same redemption flow as the standalone
	// associate action.
	TrackingCode *string `json:"trackingCode,omitempty"`
}

type AssociatePatientRequest struct {
	Code string `json:"code"`
}

type PatientDto struct {
	Id                  string  `json:"id"`
	FullName            string  `json:"fullName"`
	Email               string  `json:"email"`
	PhoneNumber         *string `json:"phoneNumber,omitempty"`
	BirthDate           *string `json:"birthDate,omitempty"`
	MonitoringMode      string  `json:"monitoringMode"`
	PostMealTiming      string  `json:"postMealTiming"`
	DoctorId            *string `json:"doctorId,omitempty"`
	DoctorName          *string `json:"doctorName,omitempty"`
	TrackingCode        *string `json:"trackingCode,omitempty"`
	AssociatedAt        *string `json:"associatedAt,omitempty"`
	HasUnlockedFeatures bool    `json:"hasUnlockedFeatures"`
}

// (POST /v1/patients)
func (h *Handler) CreatePatient(ctx echo.Context) error {
	req := CreatePatientRequest{}
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	// Resolve the code eagerly so an invalid or already-redeemed one fails
	// the registration before the patient record exists. An orphan record
	// would take the email address and block re-registration for good
	if req.TrackingCode != nil {
		code, err := h.trackingCodes.Get(ctx.Request().Context(), *req.TrackingCode)
		if err != nil {
			return err
		}
		if !code.IsActive {
			return trackingcodes.ErrAlreadyRedeemed
		}
	}

	patient := patients.Patient{
		FullName:       pointer.FromAny(req.FullName),
		Email:          pointer.FromAny(req.Email),
		PhoneNumber:    req.PhoneNumber,
		BirthDate:      req.BirthDate,
		MonitoringMode: patients.MonitoringMode(req.MonitoringMode),
		PostMealTiming: patients.PostMealTiming(req.PostMealTiming),
	}

	created, err := h.patients.Create(ctx.Request().Context(), patient)
	if err != nil {
		return err
	}

	if req.TrackingCode != nil {
		if _, err := h.trackingCodes.Redeem(ctx.Request().Context(), *req.TrackingCode, created.Id.Hex()); err != nil {
			return err
		}
		if created, err = h.patients.Get(ctx.Request().Context(), created.Id.Hex()); err != nil {
			return err
		}
	}

	return ctx.JSON(http.StatusCreated, NewPatientDto(created))
}

// (GET /v1/patients/{patientId})
func (h *Handler) GetPatient(ctx echo.Context) error {
	patient, err := h.patients.Get(ctx.Request().Context(), ctx.Param("patientId"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, NewPatientDto(patient))
}

// (POST /v1/patients/{patientId}/associate)
func (h *Handler) AssociatePatient(ctx echo.Context) error {
	req := AssociatePatientRequest{}
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	association, err := h.trackingCodes.Redeem(ctx.Request().Context(), req.Code, ctx.Param("patientId"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, NewAssociationDto(association))
}
