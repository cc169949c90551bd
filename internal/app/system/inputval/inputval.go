// Package inputval validates request input structs with struct tags.
//
// Fields carry `validate:"..."` rules and an optional `label:"..."` used in
// user-facing messages. Besides the validator's built-in rules, "email",
// "role" and "objectid" are registered here.
package inputval

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/studyhub/internal/domain/models"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Message string
}

// Result collects validation failures in struct field order.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool {
	return r != nil && len(r.Errors) > 0
}

// First returns the first message, or "".
func (r *Result) First() string {
	if !r.HasErrors() {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	if !r.HasErrors() {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if label := f.Tag.Get("label"); label != "" {
				return label
			}
			return f.Name
		})
		_ = v.RegisterValidation("email", func(fl validator.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		})
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return IsValidRole(fl.Field().String())
		})
		_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return IsValidObjectID(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// Validate checks s (a struct or pointer to struct) against its tags.
func Validate(s any) *Result {
	res := &Result{}
	err := instance().Struct(s)
	if err == nil {
		return res
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.Errors = append(res.Errors, FieldError{Message: "Invalid input."})
		return res
	}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return res
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", fe.Field(), fe.Param())
	case "email":
		return "A valid email address is required."
	default:
		return fmt.Sprintf("%s is invalid.", fe.Field())
	}
}

// IsValidEmail accepts a bare addr-spec (no display name). Single-label
// domains such as "localhost" are allowed.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.Count(s, "@") != 1 {
		return false
	}
	at := strings.IndexByte(s, '@')
	local, domain := s[:at], s[at+1:]
	if !dotted(local) || !dotted(domain) {
		return false
	}
	for _, c := range local {
		if !isAtext(c) && c != '.' {
			return false
		}
	}
	for _, label := range strings.Split(domain, ".") {
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
		for _, c := range label {
			if !isAlnum(c) && c != '-' {
				return false
			}
		}
	}
	return true
}

// dotted reports whether s is non-empty with no leading, trailing or
// doubled dots.
func dotted(s string) bool {
	return s != "" &&
		!strings.HasPrefix(s, ".") &&
		!strings.HasSuffix(s, ".") &&
		!strings.Contains(s, "..")
}

func isAlnum(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isAtext(c rune) bool {
	return isAlnum(c) || strings.ContainsRune("!#$%&'*+-/=?^_`{|}~", c)
}

// IsValidRole reports whether s names an account role.
func IsValidRole(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case models.RoleAdmin, models.RoleUser:
		return true
	}
	return false
}

// IsValidObjectID reports whether s is a 24-digit hex ObjectID.
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	return err == nil
}
