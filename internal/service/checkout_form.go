package service

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"ebook-checkout/internal/dto"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidForm = errors.New("invalid checkout form")

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// FormError carries the message shown to the buyer.
type FormError struct {
	Field   string
	Message string
}

func (e *FormError) Error() string {
	return e.Message
}

func (e *FormError) Unwrap() error {
	return ErrInvalidForm
}

type FormValidator struct {
	validate *validator.Validate
}

func NewFormValidator() *FormValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("buyer_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("in_mobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})

	return &FormValidator{validate: v}
}

// Validate trims the buyer fields in place and checks them. Missing fields
// are reported before malformed ones.
func (v *FormValidator) Validate(req *dto.CheckoutRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Phone = strings.TrimSpace(req.Phone)
	if strings.TrimSpace(req.Country) == "" {
		req.Country = "India"
	}

	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	chosen := fieldErrs[0]
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			chosen = fe
			break
		}
	}

	return &FormError{Field: chosen.Field(), Message: formMessage(chosen)}
}

func formMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Please fill in your " + humanize(fe.Field())
	case "buyer_email":
		return "Please enter a valid email address"
	case "in_mobile":
		return "Please enter a valid 10-digit Indian phone number"
	}
	return "Please check your " + humanize(fe.Field())
}

// firstName -> first name
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte(' ')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
