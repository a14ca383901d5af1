package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afya-care/monitoring/errors"
	"github.com/afya-care/monitoring/store"
	"github.com/afya-care/monitoring/trackingcodes"
)

type CreateTrackingCodeRequest struct {
	SentTo      string `json:"sentTo"`
	SentBy      string `json:"sentBy"`
	PatientName string `json:"patientName"`
}

type TrackingCodeDto struct {
	Id        string     `json:"id"`
	Code      string     `json:"code"`
	DoctorId  string     `json:"doctorId"`
	CreatedAt time.Time  `json:"createdAt"`
	SentTo    *string    `json:"sentTo,omitempty"`
	SentBy    string     `json:"sentBy,omitempty"`
	IsActive  bool       `json:"isActive"`
	UsedBy    *string    `json:"usedBy,omitempty"`
	UsedAt    *time.Time `json:"usedAt,omitempty"`
}

type AssociationDto struct {
	DoctorId   string `json:"doctorId"`
	DoctorName string `json:"doctorName"`
	Code       string `json:"code"`
}

// (POST /v1/doctors/{doctorId}/tracking-codes)
func (h *Handler) CreateTrackingCode(ctx echo.Context) error {
	doctorId, err := h.authorizedDoctorId(ctx)
	if err != nil {
		return err
	}

	req := CreateTrackingCodeRequest{}
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	doctorObjectId, err := primitive.ObjectIDFromHex(doctorId)
	if err != nil {
		return errors.BadRequest
	}

	channel := trackingcodes.Channel(req.SentBy)
	if channel != trackingcodes.ChannelEmail && channel != trackingcodes.ChannelSMS {
		return errors.BadRequest
	}

	created, err := h.trackingCodes.Create(ctx.Request().Context(), trackingcodes.NewCode{
		DoctorId:    doctorObjectId,
		SentTo:      req.SentTo,
		SentBy:      channel,
		PatientName: req.PatientName,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, NewTrackingCodeDto(created))
}

// (GET /v1/doctors/{doctorId}/tracking-codes)
func (h *Handler) ListTrackingCodes(ctx echo.Context) error {
	doctorId, err := h.authorizedDoctorId(ctx)
	if err != nil {
		return err
	}

	doctorObjectId, err := primitive.ObjectIDFromHex(doctorId)
	if err != nil {
		return errors.BadRequest
	}

	filter := &trackingcodes.Filter{
		DoctorId: &doctorObjectId,
	}
	page := store.DefaultPagination().WithLimit(100)
	codes, err := h.trackingCodes.List(ctx.Request().Context(), filter, page)
	if err != nil {
		return err
	}

	dtos := make([]TrackingCodeDto, 0, len(codes))
	for _, code := range codes {
		dtos = append(dtos, NewTrackingCodeDto(code))
	}
	return ctx.JSON(http.StatusOK, dtos)
}
