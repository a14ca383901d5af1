package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afya-care/monitoring/errors"
	"github.com/afya-care/monitoring/messages"
	"github.com/afya-care/monitoring/store"
)

type SendMessageRequest struct {
	DoctorId  *string `json:"doctorId,omitempty"`
	PatientId *string `json:"patientId,omitempty"`
	Body      string  `json:"body"`
}

type MessageDto struct {
	Id        string     `json:"id"`
	PatientId string     `json:"patientId"`
	DoctorId  string     `json:"doctorId"`
	Sender    string     `json:"sender"`
	Body      string     `json:"body"`
	SentAt    time.Time  `json:"sentAt"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
}

// (POST /v1/patients/{patientId}/messages)
func (h *Handler) SendPatientMessage(ctx echo.Context) error {
	req := SendMessageRequest{}
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	patientId, err := primitive.ObjectIDFromHex(ctx.Param("patientId"))
	if err != nil {
		return errors.BadRequest
	}

	// A patient can only message the doctor they are associated with
	patient, err := h.patients.Get(ctx.Request().Context(), patientId.Hex())
	if err != nil {
		return err
	}
	if patient.DoctorId == nil {
		return errors.ConstraintViolation
	}

	message := messages.Message{
		PatientId: patientId,
		DoctorId:  *patient.DoctorId,
		Sender:    messages.SenderPatient,
		Body:      req.Body,
	}

	created, err := h.messages.Send(ctx.Request().Context(), message)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, NewMessageDto(created))
}

// (GET /v1/patients/{patientId}/messages)
func (h *Handler) ListPatientMessages(ctx echo.Context) error {
	patientId, err := primitive.ObjectIDFromHex(ctx.Param("patientId"))
	if err != nil {
		return errors.BadRequest
	}

	filter := &messages.Filter{
		PatientId: &patientId,
	}
	return h.listMessages(ctx, filter)
}

// (POST /v1/doctors/{doctorId}/messages)
func (h *Handler) SendDoctorMessage(ctx echo.Context) error {
	doctorId, err := h.authorizedDoctorId(ctx)
	if err != nil {
		return err
	}

	req := SendMessageRequest{}
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if req.PatientId == nil {
		return errors.BadRequest
	}

	doctorObjectId, err := primitive.ObjectIDFromHex(doctorId)
	if err != nil {
		return errors.BadRequest
	}
	patientObjectId, err := primitive.ObjectIDFromHex(*req.PatientId)
	if err != nil {
		return errors.BadRequest
	}

	message := messages.Message{
		PatientId: patientObjectId,
		DoctorId:  doctorObjectId,
		Sender:    messages.SenderDoctor,
		Body:      req.Body,
	}

	created, err := h.messages.Send(ctx.Request().Context(), message)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, NewMessageDto(created))
}

// (GET /v1/doctors/{doctorId}/messages)
func (h *Handler) ListDoctorMessages(ctx echo.Context) error {
	doctorId, err := h.authorizedDoctorId(ctx)
	if err != nil {
		return err
	}

	doctorObjectId, err := primitive.ObjectIDFromHex(doctorId)
	if err != nil {
		return errors.BadRequest
	}

	filter := &messages.Filter{
		DoctorId: &doctorObjectId,
	}
	if patientId := ctx.QueryParam("patientId"); patientId != "" {
		patientObjectId, err := primitive.ObjectIDFromHex(patientId)
		if err != nil {
			return errors.BadRequest
		}
		filter.PatientId = &patientObjectId
	}

	return h.listMessages(ctx, filter)
}

// (POST /v1/patients/{patientId}/messages/{messageId}/read)
func (h *Handler) MarkMessageRead(ctx echo.Context) error {
	if err := h.messages.MarkRead(ctx.Request().Context(), ctx.Param("messageId")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// (POST /v1/doctors/{doctorId}/messages/{messageId}/read)
func (h *Handler) MarkDoctorMessageRead(ctx echo.Context) error {
	if _, err := h.authorizedDoctorId(ctx); err != nil {
		return err
	}
	if err := h.messages.MarkRead(ctx.Request().Context(), ctx.Param("messageId")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (h *Handler) listMessages(ctx echo.Context, filter *messages.Filter) error {
	page := store.DefaultPagination().WithLimit(50)
	list, err := h.messages.List(ctx.Request().Context(), filter, page)
	if err != nil {
		return err
	}

	dtos := make([]MessageDto, 0, len(list))
	for _, message := range list {
		dtos = append(dtos, NewMessageDto(message))
	}
	return ctx.JSON(http.StatusOK, dtos)
}
