package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// NonFieldErrors keys errors that belong to the form as a whole.
const NonFieldErrors = "__all__"

// FormErrors maps a form field name to its first error message.
// A non-empty FormErrors returned from a service means "re-render the form".
type FormErrors map[string]string

func (e FormErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return strings.Join(parts, "; ")
}

func NonField(message string) FormErrors {
	return FormErrors{NonFieldErrors: message}
}

// AsFormErrors reports whether err carries form errors.
func AsFormErrors(err error) (FormErrors, bool) {
	var fe FormErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notnumeric", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.TrimLeft(s, "0123456789") != ""
	})
	_ = v.RegisterValidation("bcryptmax", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})
	return v
}

// Validate checks a form struct against its validate tags. It returns
// FormErrors keyed by the struct's form tag names, or nil.
func Validate(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fe := FormErrors{}
	for _, e := range verrs {
		if _, ok := fe[e.Field()]; ok {
			continue
		}
		fe[e.Field()] = message(e)
	}
	return fe
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", e.Param(), utf8.RuneCountInString(fmt.Sprint(e.Value())))
	case "min":
		if strings.Contains(e.Field(), "password") {
			return fmt.Sprintf("This password is too short. It must contain at least %s characters.", e.Param())
		}
		return fmt.Sprintf("Ensure this value has at least %s characters.", e.Param())
	case "email":
		return "Enter a valid email address."
	case "eqfield":
		return "The two password fields didn't match."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	case "notnumeric":
		return "This password is entirely numeric."
	case "bcryptmax":
		return fmt.Sprintf("This password is too long. It must contain at most %d bytes.", MaxPasswordBytes)
	default:
		return "Enter a valid value."
	}
}
