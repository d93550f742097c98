package domain

import (
	"errors"
	"html"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/makeoverbyreet/makeover-contact/internal/utils"
)

const (
	DefaultService = "No service specified"
	DefaultDate    = "No date specified"
	DefaultMessage = "No message provided"
)

var (
	ErrMissingRequired = errors.New("missing required booking fields")
	ErrInvalidField    = errors.New("invalid booking field")
)

var validate = newValidator()

// newValidator adds "singleline", which rejects CR and LF. Values tagged with
// it end up in email headers.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("singleline", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), "\r\n")
	})
	return v
}

// BookingRequest is a contact form submission. It lives for one request and
// is never stored.
type BookingRequest struct {
	FirstName string `json:"firstName" validate:"required,singleline"`
	LastName  string `json:"lastName" validate:"required,singleline"`
	Email     string `json:"email" validate:"required,singleline"`
	Phone     string `json:"phone" validate:"required,singleline"`
	Service   string `json:"service,omitempty" validate:"singleline"`
	Date      string `json:"date,omitempty" validate:"singleline"`
	Message   string `json:"message,omitempty"`
}

// Normalize returns a copy with surrounding whitespace removed from every field.
func (b BookingRequest) Normalize() BookingRequest {
	return BookingRequest{
		FirstName: utils.NormalizeString(b.FirstName),
		LastName:  utils.NormalizeString(b.LastName),
		Email:     utils.NormalizeString(b.Email),
		Phone:     utils.NormalizeString(b.Phone),
		Service:   utils.NormalizeString(b.Service),
		Date:      utils.NormalizeString(b.Date),
		Message:   utils.NormalizeString(b.Message),
	}
}

// Validate fails with ErrMissingRequired when a required field is blank.
// Whitespace-only values count as blank. Line breaks in any field other than
// the message fail with ErrInvalidField.
func (b BookingRequest) Validate() error {
	err := validate.Struct(b.Normalize())
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var missing, invalid []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return &InvalidFieldsError{Fields: invalid}
}

// MissingFieldsError lists the blank required fields.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return ErrMissingRequired.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Unwrap() error { return ErrMissingRequired }

// InvalidFieldsError lists fields holding characters they may not contain.
type InvalidFieldsError struct {
	Fields []string
}

func (e *InvalidFieldsError) Error() string {
	return ErrInvalidField.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *InvalidFieldsError) Unwrap() error { return ErrInvalidField }

func (b BookingRequest) FullName() string {
	return utils.NormalizeString(b.FirstName) + " " + utils.NormalizeString(b.LastName)
}

func (b BookingRequest) ServiceOrDefault() string {
	return utils.DefaultIfBlank(b.Service, DefaultService)
}

func (b BookingRequest) DateOrDefault() string {
	return utils.DefaultIfBlank(b.Date, DefaultDate)
}

func (b BookingRequest) MessageOrDefault() string {
	return utils.DefaultIfBlank(b.Message, DefaultMessage)
}

// MessageHTML escapes the message and turns newlines into <br> so it can be
// dropped into an HTML body as-is.
func (b BookingRequest) MessageHTML() string {
	return utils.NewlinesToBreaks(html.EscapeString(b.MessageOrDefault()))
}
