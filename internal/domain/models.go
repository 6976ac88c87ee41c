package domain

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for model checks
var validate = validator.New()

// Participant represents a contest participant that users vote for
type Participant struct {
	ID          int64     `validate:"-"`
	FullName    string    `validate:"required,min=1,max=200"`
	Grade       string    `validate:"required,min=1,max=50"`
	Description string    `validate:"required,min=1"`
	ImageURL    string    `validate:"omitempty,url"`
	ImageKey    string    `validate:"-"`
	VideoURL    string    `validate:"omitempty,url"`
	VoteCount   int       `validate:"gte=0"`
	CreatedAt   time.Time `validate:"-"`
}

// Validate checks participant field constraints
func (p *Participant) Validate() error {
	return validate.Struct(p)
}

// Channel represents a Telegram channel users must join before voting.
// At most one channel is marked required; it acts as the voting gate.
type Channel struct {
	ID        int64     `validate:"-"`
	Handle    string    `validate:"required,min=2"`
	Name      string    `validate:"required,min=1,max=200"`
	Required  bool      `validate:"-"`
	CreatedAt time.Time `validate:"-"`
}

// Validate checks channel field constraints
func (c *Channel) Validate() error {
	return validate.Struct(c)
}

// Link returns a public t.me link for the channel
func (c *Channel) Link() string {
	return "https://t.me/" + strings.TrimPrefix(c.Handle, "@")
}

// Vote represents a single user's vote for a participant.
// A user holds at most one vote at a time.
type Vote struct {
	ID            int64
	UserID        int64
	ParticipantID int64
	CreatedAt     time.Time
}

// Logger defines the logging interface used by domain services
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}
