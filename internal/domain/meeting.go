package domain

import (
	"errors"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Defaults substituted for optional meeting fields left blank.
const (
	DefaultLocation  = "Conference Room"
	DefaultDuration  = "1 hour"
	DefaultOrganizer = "Management"
)

// validate is shared by every MeetingInput validation; validator.Validate is
// safe for concurrent use and caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// MeetingInput is the raw, mutable form of a meeting as supplied by a
// presentation collaborator (CLI flags, interactive prompt, JSON body).
type MeetingInput struct {
	Date      string   `json:"date"                validate:"required,max=100"`
	Time      string   `json:"time"                validate:"required,max=100"`
	Agenda    string   `json:"agenda"              validate:"required,max=4000"`
	Attendees []string `json:"attendees,omitempty" validate:"max=200,dive,max=200"`
	Location  string   `json:"location,omitempty"  validate:"max=200"`
	Duration  string   `json:"duration,omitempty"  validate:"max=100"`
	Organizer string   `json:"organizer,omitempty" validate:"max=200"`
}

// MeetingRequest is validated meeting metadata. Fields are unexported so a
// request cannot change once built; Attendees returns a copy.
type MeetingRequest struct {
	date      string
	time      string
	agenda    string
	attendees []string
	location  string
	duration  string
	organizer string
}

// NewMeetingRequest normalizes the input, applies defaults for the optional
// fields and validates the result. The returned error is a *ValidationError.
func NewMeetingRequest(in MeetingInput) (MeetingRequest, error) {
	normalized := MeetingInput{
		Date:      strings.TrimSpace(in.Date),
		Time:      strings.TrimSpace(in.Time),
		Agenda:    strings.TrimSpace(in.Agenda),
		Attendees: cleanAttendees(in.Attendees),
		Location:  orDefault(in.Location, DefaultLocation),
		Duration:  orDefault(in.Duration, DefaultDuration),
		Organizer: orDefault(in.Organizer, DefaultOrganizer),
	}

	if err := validate.Struct(normalized); err != nil {
		return MeetingRequest{}, toValidationError(err)
	}

	return MeetingRequest{
		date:      normalized.Date,
		time:      normalized.Time,
		agenda:    normalized.Agenda,
		attendees: normalized.Attendees,
		location:  normalized.Location,
		duration:  normalized.Duration,
		organizer: normalized.Organizer,
	}, nil
}

// ParseAttendees splits a comma separated attendee list, dropping blanks.
func ParseAttendees(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	return cleanAttendees(strings.Split(list, ","))
}

// Validate checks the invariants every pipeline stage relies on. It catches
// zero-value requests that bypassed NewMeetingRequest.
func (m MeetingRequest) Validate() error {
	var fields []FieldError
	if m.date == "" {
		fields = append(fields, FieldError{Field: "date", Reason: "is required"})
	}
	if m.time == "" {
		fields = append(fields, FieldError{Field: "time", Reason: "is required"})
	}
	if m.agenda == "" {
		fields = append(fields, FieldError{Field: "agenda", Reason: "is required"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Date returns the meeting date as entered.
func (m MeetingRequest) Date() string { return m.date }

// Time returns the meeting time as entered.
func (m MeetingRequest) Time() string { return m.time }

// Agenda returns the meeting agenda.
func (m MeetingRequest) Agenda() string { return m.agenda }

// Attendees returns a copy of the ordered attendee list.
func (m MeetingRequest) Attendees() []string { return slices.Clone(m.attendees) }

// Location returns the meeting location.
func (m MeetingRequest) Location() string { return m.location }

// Duration returns the meeting duration.
func (m MeetingRequest) Duration() string { return m.duration }

// Organizer returns the meeting organizer.
func (m MeetingRequest) Organizer() string { return m.organizer }

// Input converts the request back into its input form, e.g. for JSON output.
func (m MeetingRequest) Input() MeetingInput {
	return MeetingInput{
		Date:      m.date,
		Time:      m.time,
		Agenda:    m.agenda,
		Attendees: m.Attendees(),
		Location:  m.location,
		Duration:  m.duration,
		Organizer: m.organizer,
	}
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func cleanAttendees(in []string) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: []FieldError{{Field: "request", Reason: err.Error()}}}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		reason := "is invalid"
		switch fe.Tag() {
		case "required":
			reason = "is required"
		case "max":
			reason = "exceeds maximum length of " + fe.Param()
		}
		fields = append(fields, FieldError{Field: fe.Field(), Reason: reason})
	}
	return &ValidationError{Fields: fields}
}
