package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afya-care/monitoring/errors"
	"github.com/afya-care/monitoring/glycemia"
	"github.com/afya-care/monitoring/store"
)

type CreateReadingRequest struct {
	Value          float64    `json:"value"`
	MealContext    string     `json:"mealContext"`
	MealSlot       *string    `json:"mealSlot,omitempty"`
	Timestamp      *time.Time `json:"timestamp,omitempty"`
	IdempotencyKey *string    `json:"idempotencyKey,omitempty"`
}

type ReadingDto struct {
	Id          string    `json:"id"`
	PatientId   string    `json:"patientId"`
	Value       float64   `json:"value"`
	MealContext string    `json:"mealContext"`
	MealSlot    *string   `json:"mealSlot,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
}

type WeeklySummaryDto struct {
	WeekStart         time.Time `json:"weekStart"`
	TotalReadings     int       `json:"totalReadings"`
	DaysInTarget      int       `json:"daysInTarget"`
	Average           float64   `json:"average"`
	Compliance        float64   `json:"compliance"`
	DisplayCompliance float64   `json:"displayCompliance"`
}

// (POST /v1/patients/{patientId}/readings)
func (h *Handler) CreateReading(ctx echo.Context) error {
	req := CreateReadingRequest{}
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	patientId, err := primitive.ObjectIDFromHex(ctx.Param("patientId"))
	if err != nil {
		return errors.BadRequest
	}

	reading := glycemia.Reading{
		PatientId:      &patientId,
		Value:          req.Value,
		MealContext:    glycemia.MealContext(req.MealContext),
		MealSlot:       (*glycemia.MealSlot)(req.MealSlot),
		IdempotencyKey: req.IdempotencyKey,
	}
	if req.Timestamp != nil {
		reading.Timestamp = *req.Timestamp
	}

	created, err := h.glycemia.CreateReading(ctx.Request().Context(), reading)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, NewReadingDto(created))
}

// (GET /v1/patients/{patientId}/readings)
func (h *Handler) ListReadings(ctx echo.Context) error {
	patientId, err := primitive.ObjectIDFromHex(ctx.Param("patientId"))
	if err != nil {
		return errors.BadRequest
	}

	filter := &glycemia.Filter{
		PatientId: &patientId,
	}
	if from, err := queryTime(ctx, "from"); err != nil {
		return err
	} else if from != nil {
		filter.From = from
	}
	if to, err := queryTime(ctx, "to"); err != nil {
		return err
	} else if to != nil {
		filter.To = to
	}

	page := store.DefaultPagination().WithLimit(100)
	readings, err := h.glycemia.ListReadings(ctx.Request().Context(), filter, page)
	if err != nil {
		return err
	}

	dtos := make([]ReadingDto, 0, len(readings))
	for _, reading := range readings {
		dtos = append(dtos, NewReadingDto(reading))
	}
	return ctx.JSON(http.StatusOK, dtos)
}

// (GET /v1/patients/{patientId}/summary/daily?date=YYYY-MM-DD)
func (h *Handler) DailySummary(ctx echo.Context) error {
	day, err := queryDate(ctx, "date")
	if err != nil {
		return err
	}

	aggregate, err := h.glycemia.DailySummary(ctx.Request().Context(), ctx.Param("patientId"), day)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, aggregate)
}

// (GET /v1/patients/{patientId}/summary/weekly?start=YYYY-MM-DD)
func (h *Handler) WeeklySummary(ctx echo.Context) error {
	start, err := queryDate(ctx, "start")
	if err != nil {
		return err
	}

	summary, err := h.glycemia.WeeklySummary(ctx.Request().Context(), ctx.Param("patientId"), start)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, WeeklySummaryDto{
		WeekStart:         summary.WeekStart,
		TotalReadings:     summary.TotalReadings,
		DaysInTarget:      summary.DaysInTarget,
		Average:           summary.Average,
		Compliance:        summary.Compliance,
		DisplayCompliance: summary.DisplayCompliance(),
	})
}

func queryDate(ctx echo.Context, name string) (time.Time, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return time.Time{}, errors.BadRequest
	}

	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, errors.BadRequest
	}
	return day, nil
}

func queryTime(ctx echo.Context, name string) (*time.Time, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errors.BadRequest
	}
	return &t, nil
}
