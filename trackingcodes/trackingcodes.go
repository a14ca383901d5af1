package trackingcodes

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/afya-care/monitoring/errors"
	"github.com/afya-care/monitoring/store"
)

var ErrNotFound = fmt.Errorf("tracking code %w", errors.NotFound)
var ErrInvalidFormat = fmt.Errorf("tracking code format %w", errors.BadRequest)

// ErrAlreadyRedeemed is returned when a code was redeemed by another patient.
// Handlers surface it with the same user-facing message as a missing code so
// redemption state does not leak.
var ErrAlreadyRedeemed = fmt.Errorf("tracking code %w", errors.Conflict)

var codeFormat = regexp.MustCompile(`^AFYA-[A-Z0-9]{5}$`)

// Channel is the delivery channel a doctor picked when sending a code.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

type TrackingCode struct {
	Id        *primitive.ObjectID `bson:"_id,omitempty"`
	Code      string              `bson:"code"`
	DoctorId  primitive.ObjectID  `bson:"doctorId"`
	CreatedAt time.Time           `bson:"createdAt"`
	SentTo    *string             `bson:"sentTo,omitempty"`
	SentBy    Channel             `bson:"sentBy,omitempty"`
	IsActive  bool                `bson:"isActive"`
	UsedBy    *primitive.ObjectID `bson:"usedBy,omitempty"`
	UsedAt    *time.Time          `bson:"usedAt,omitempty"`
}

// NewCode describes a code a doctor wants generated and delivered.
type NewCode struct {
	DoctorId    primitive.ObjectID
	SentTo      string
	SentBy      Channel
	PatientName string
}

// Association is the outcome of a successful redemption.
type Association struct {
	DoctorId   primitive.ObjectID `json:"doctorId"`
	DoctorName string             `json:"doctorName"`
	Code       string             `json:"code"`
}

type Filter struct {
	DoctorId *primitive.ObjectID
	IsActive *bool
}

// Normalize maps user input to the canonical uppercase form before any
// format check or store lookup.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateFormat reports whether a normalized code matches AFYA-XXXXX. It
// must run before any store lookup to short-circuit malformed input.
func ValidateFormat(code string) bool {
	return codeFormat.MatchString(code)
}

//go:generate mockgen --build_flags=--mod=mod -source=./trackingcodes.go -destination=./test/mock_trackingcodes.go -package test

type Service interface {
	Create(ctx context.Context, create NewCode) (*TrackingCode, error)
	Get(ctx context.Context, code string) (*TrackingCode, error)
	List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*TrackingCode, error)
	Redeem(ctx context.Context, code string, patientId string) (*Association, error)
}

type Repository interface {
	Create(ctx context.Context, code TrackingCode) (*TrackingCode, error)
	FindByCode(ctx context.Context, code string) (*TrackingCode, error)
	List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*TrackingCode, error)
	// Deactivate flips isActive to false iff it is still true, recording the
	// redeeming patient. A zero-match update reports ErrAlreadyRedeemed.
	Deactivate(ctx context.Context, code string, patientId primitive.ObjectID, usedAt time.Time) (*TrackingCode, error)
}
