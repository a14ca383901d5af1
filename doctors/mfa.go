package doctors

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/afya-care/monitoring/auth"
	"github.com/afya-care/monitoring/errors"
	"github.com/afya-care/monitoring/mailer"
)

var ErrMFACodeInvalid = fmt.Errorf("mfa code %w", errors.Unauthorized)
var ErrMFACodeExpired = fmt.Errorf("mfa code %w", errors.Gone)

const mfaCodeDigits = 6

type MFACode struct {
	Id        *primitive.ObjectID `bson:"_id,omitempty"`
	DoctorId  primitive.ObjectID  `bson:"doctorId"`
	Code      string              `bson:"code"`
	CreatedAt time.Time           `bson:"createdAt"`
	ExpiresAt time.Time           `bson:"expiresAt"`
	Consumed  bool                `bson:"consumed"`
}

// IsExpired compares stored timestamps against the server clock. The client
// countdown is advisory only and never trusted.
func (c *MFACode) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

type MFAConfig struct {
	CodeTTL time.Duration `envconfig:"AFYA_MFA_CODE_TTL" default:"5m"`
}

func NewMFAConfig() (*MFAConfig, error) {
	cfg := &MFAConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

//go:generate mockgen --build_flags=--mod=mod -source=./mfa.go -destination=./test/mock_mfa.go -package test MockMFAService

type MFAService interface {
	// Login issues a fresh MFA code for the doctor and delivers it by email.
	Login(ctx context.Context, email string) error
	// Verify checks the code server-side, consumes it and mints a session token.
	Verify(ctx context.Context, email string, code string) (string, error)
}

type MFARepository interface {
	Create(ctx context.Context, code MFACode) error
	FindLatest(ctx context.Context, doctorId primitive.ObjectID, code string) (*MFACode, error)
	Consume(ctx context.Context, id primitive.ObjectID) error
}

type mfaService struct {
	config     *MFAConfig
	doctors    Service
	repository MFARepository
	mailer     mailer.Client
	tokens     auth.TokenIssuer
	logger     *zap.SugaredLogger
}

var _ MFAService = &mfaService{}

func NewMFAService(config *MFAConfig, doctorsService Service, repository MFARepository, mailerClient mailer.Client, tokens auth.TokenIssuer, logger *zap.SugaredLogger) (MFAService, error) {
	return &mfaService{
		config:     config,
		doctors:    doctorsService,
		repository: repository,
		mailer:     mailerClient,
		tokens:     tokens,
		logger:     logger,
	}, nil
}

func (s *mfaService) Login(ctx context.Context, email string) error {
	doctor, err := s.doctors.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	now := time.Now()
	code := MFACode{
		DoctorId:  *doctor.Id,
		Code:      generateMFACode(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.config.CodeTTL),
	}
	if err := s.repository.Create(ctx, code); err != nil {
		return err
	}

	// The doctor cannot proceed without the code, so a delivery failure is
	// surfaced here instead of being swallowed
	if err := s.mailer.SendMFAEmail(ctx, *doctor.Email, code.Code); err != nil {
		s.logger.Errorw("unable to deliver mfa code", "doctorId", doctor.Id.Hex(), zap.Error(err))
		return fmt.Errorf("mfa delivery %w", errors.InternalServerError)
	}

	s.logger.Infow("issued mfa code", "doctorId", doctor.Id.Hex())
	return nil
}

func (s *mfaService) Verify(ctx context.Context, email string, code string) (string, error) {
	doctor, err := s.doctors.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	mfaCode, err := s.repository.FindLatest(ctx, *doctor.Id, code)
	if err != nil {
		return "", err
	}
	if mfaCode.IsExpired(time.Now()) {
		return "", ErrMFACodeExpired
	}
	if err := s.repository.Consume(ctx, *mfaCode.Id); err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(doctor.Id.Hex())
	if err != nil {
		return "", fmt.Errorf("error issuing session token: %w", err)
	}

	s.logger.Infow("doctor login verified", "doctorId", doctor.Id.Hex())
	return token, nil
}

func generateMFACode() string {
	max := 1
	for i := 0; i < mfaCodeDigits; i++ {
		max *= 10
	}
	return fmt.Sprintf("%0*d", mfaCodeDigits, rand.Intn(max))
}
