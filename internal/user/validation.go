package user

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/redmonkez12/user-auth-api/internal/password"
)

// Field-level messages returned to clients.
const (
	MsgInvalidUsername = "Please Enter a Valid Username"
	MsgInvalidEmail    = "Please enter a valid email"
	MsgInvalidPassword = "Please enter a valid password"
	MsgMissingHash     = "Password hash is required"
)

// MinPasswordLength is the shortest accepted plaintext password.
const MinPasswordLength = 6

// FieldError describes one rejected input field.
type FieldError struct {
	Value    any    `json:"value,omitempty"`
	Msg      string `json:"msg"`
	Param    string `json:"param"`
	Location string `json:"location"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Param+": "+f.Msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// HasField reports whether param is among the failed fields.
func (e *ValidationError) HasField(param string) bool {
	for _, f := range e.Fields {
		if f.Param == param {
			return true
		}
	}
	return false
}

type signupInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6,maxbytes"`
}

type recordInput struct {
	Username     string `json:"username" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	PasswordHash string `json:"password" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Length in bytes, not runes: that is what bcrypt limits.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= password.MaxBytes
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateSignup checks raw signup input: non-empty username, well-formed
// email, and a password of at least MinPasswordLength characters and at most
// password.MaxBytes bytes.
func ValidateSignup(username, email, plaintext string) error {
	return toValidationError(validate.Struct(signupInput{
		Username: username,
		Email:    email,
		Password: plaintext,
	}))
}

func validateRecord(username, email, passwordHash string) error {
	return toValidationError(validate.Struct(recordInput{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}))
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		f := FieldError{
			Msg:      fieldMessage(fe),
			Param:    fe.Field(),
			Location: "body",
		}
		// Never echo secrets back.
		if fe.Field() != "password" {
			f.Value = fe.Value()
		}
		out.Fields = append(out.Fields, f)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "username":
		return MsgInvalidUsername
	case "email":
		return MsgInvalidEmail
	case "password":
		if fe.StructField() == "PasswordHash" {
			return MsgMissingHash
		}
		return MsgInvalidPassword
	default:
		return fe.Error()
	}
}
