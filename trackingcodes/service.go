package trackingcodes

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/afya-care/monitoring/doctors"
	"github.com/afya-care/monitoring/mailer"
	"github.com/afya-care/monitoring/patients"
	"github.com/afya-care/monitoring/store"
)

// maxGenerationAttempts bounds retries on generator collisions. With 36^5
// possible codes a retry is already rare; hitting the bound means the index
// is misconfigured rather than bad luck.
const maxGenerationAttempts = 5

type service struct {
	dbClient   *mongo.Client
	repository Repository
	generator  Generator
	doctors    doctors.Service
	patients   patients.Service
	mailer     mailer.Client
	logger     *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(dbClient *mongo.Client, repository Repository, generator Generator, doctorsService doctors.Service, patientsService patients.Service, mailerClient mailer.Client, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		dbClient:   dbClient,
		repository: repository,
		generator:  generator,
		doctors:    doctorsService,
		patients:   patientsService,
		mailer:     mailerClient,
		logger:     logger,
	}, nil
}

func (s *service) Create(ctx context.Context, create NewCode) (*TrackingCode, error) {
	if _, err := s.doctors.Get(ctx, create.DoctorId.Hex()); err != nil {
		return nil, err
	}

	var created *TrackingCode
	var err error
	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		code := TrackingCode{
			Code:      s.generator.Generate(),
			DoctorId:  create.DoctorId,
			CreatedAt: time.Now(),
			SentTo:    &create.SentTo,
			SentBy:    create.SentBy,
			IsActive:  true,
		}
		created, err = s.repository.Create(ctx, code)
		if err == nil {
			break
		}
		if !store.IsDuplicateKeyError(err) {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}

	s.dispatchNotification(ctx, created, create)
	return created, nil
}

// dispatchNotification delivers the plaintext code to the chosen contact.
// Delivery is best-effort: the code stays valid even when the email relay is
// down, so failures are logged and swallowed.
func (s *service) dispatchNotification(ctx context.Context, code *TrackingCode, create NewCode) {
	if create.SentBy != ChannelEmail || create.SentTo == "" {
		return
	}

	if err := s.mailer.SendTrackingCode(ctx, create.SentTo, code.Code, create.PatientName); err != nil {
		s.logger.Warnw("unable to deliver tracking code notification",
			"code", code.Code,
			"doctorId", code.DoctorId.Hex(),
			zap.Error(err),
		)
	}
}

func (s *service) Get(ctx context.Context, code string) (*TrackingCode, error) {
	normalized := Normalize(code)
	if !ValidateFormat(normalized) {
		return nil, ErrInvalidFormat
	}
	return s.repository.FindByCode(ctx, normalized)
}

func (s *service) List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*TrackingCode, error) {
	return s.repository.List(ctx, filter, pagination)
}

// Redeem resolves a code to its issuing doctor and associates the patient.
// Both the registration wizard and the standalone associate action funnel
// through here. Re-running a redemption for the same code and patient is a
// no-op success; any other patient gets ErrAlreadyRedeemed.
func (s *service) Redeem(ctx context.Context, code string, patientId string) (*Association, error) {
	normalized := Normalize(code)
	if !ValidateFormat(normalized) {
		return nil, ErrInvalidFormat
	}

	patientObjectId, err := primitive.ObjectIDFromHex(patientId)
	if err != nil {
		return nil, patients.ErrNotFound
	}

	trackingCode, err := s.repository.FindByCode(ctx, normalized)
	if err != nil {
		return nil, err
	}

	// Orphaned codes must fail cleanly, not crash the workflow
	doctor, err := s.doctors.Get(ctx, trackingCode.DoctorId.Hex())
	if err != nil {
		return nil, err
	}

	association := &Association{
		DoctorId:   *doctor.Id,
		DoctorName: doctor.FullName(),
		Code:       normalized,
	}

	if !trackingCode.IsActive {
		if trackingCode.UsedBy != nil && *trackingCode.UsedBy == patientObjectId {
			return association, nil
		}
		return nil, ErrAlreadyRedeemed
	}

	usedAt := time.Now()
	_, err = store.WithTransaction(ctx, s.dbClient, func(sessionCtx mongo.SessionContext) (interface{}, error) {
		if _, err := s.repository.Deactivate(sessionCtx, normalized, patientObjectId, usedAt); err != nil {
			return nil, err
		}

		update := patients.Association{
			DoctorId:     *doctor.Id,
			DoctorName:   doctor.FullName(),
			TrackingCode: normalized,
			AssociatedAt: usedAt,
		}
		return s.patients.Associate(sessionCtx, patientId, update)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("tracking code redeemed",
		"code", normalized,
		"doctorId", doctor.Id.Hex(),
		"patientId", patientId,
	)
	return association, nil
}
