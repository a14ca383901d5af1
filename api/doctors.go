package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afya-care/monitoring/auth"
	"github.com/afya-care/monitoring/doctors"
	"github.com/afya-care/monitoring/errors"
	"github.com/afya-care/monitoring/patients"
	"github.com/afya-care/monitoring/pointer"
	"github.com/afya-care/monitoring/store"
)

type CreateDoctorRequest struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Speciality  *string `json:"speciality,omitempty"`
}

type DoctorDto struct {
	Id         string  `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	FullName   string  `json:"fullName"`
	Email      string  `json:"email"`
	Speciality *string `json:"speciality,omitempty"`
}

type LoginRequest struct {
	Email string `json:"email"`
}

type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type VerifyResponse struct {
	Token string `json:"token"`
}

// (POST /v1/doctors)
func (h *Handler) CreateDoctor(ctx echo.Context) error {
	req := CreateDoctorRequest{}
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	doctor := doctors.Doctor{
		FirstName:   pointer.FromAny(req.FirstName),
		LastName:    pointer.FromAny(req.LastName),
		Email:       pointer.FromAny(req.Email),
		PhoneNumber: req.PhoneNumber,
		Speciality:  req.Speciality,
	}

	created, err := h.doctors.Create(ctx.Request().Context(), doctor)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, NewDoctorDto(created))
}

// (POST /v1/auth/login)
func (h *Handler) Login(ctx echo.Context) error {
	req := LoginRequest{}
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if err := h.mfa.Login(ctx.Request().Context(), req.Email); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusAccepted)
}

// (POST /v1/auth/verify)
func (h *Handler) Verify(ctx echo.Context) error {
	req := VerifyRequest{}
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	token, err := h.mfa.Verify(ctx.Request().Context(), req.Email, req.Code)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, VerifyResponse{Token: token})
}

// (GET /v1/doctors/{doctorId})
func (h *Handler) GetDoctor(ctx echo.Context) error {
	doctorId, err := h.authorizedDoctorId(ctx)
	if err != nil {
		return err
	}

	doctor, err := h.doctors.Get(ctx.Request().Context(), doctorId)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, NewDoctorDto(doctor))
}

// (GET /v1/doctors/{doctorId}/patients)
func (h *Handler) ListDoctorPatients(ctx echo.Context) error {
	doctorId, err := h.authorizedDoctorId(ctx)
	if err != nil {
		return err
	}

	doctorObjectId, err := primitive.ObjectIDFromHex(doctorId)
	if err != nil {
		return errors.BadRequest
	}

	filter := &patients.Filter{
		DoctorId: &doctorObjectId,
	}
	page := store.DefaultPagination().WithLimit(100)
	list, err := h.patients.List(ctx.Request().Context(), filter, page)
	if err != nil {
		return err
	}

	dtos := make([]PatientDto, 0, len(list))
	for _, patient := range list {
		dtos = append(dtos, NewPatientDto(patient))
	}
	return ctx.JSON(http.StatusOK, dtos)
}

// authorizedDoctorId checks that the session token subject matches the
// doctor addressed by the route.
func (h *Handler) authorizedDoctorId(ctx echo.Context) (string, error) {
	doctorId := ctx.Param("doctorId")
	authData := auth.GetAuthData(ctx)
	if authData == nil || authData.DoctorId != doctorId {
		return "", errors.Unauthorized
	}
	return doctorId, nil
}
