package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// maxPasswordBytes is bcrypt's input limit.
const maxPasswordBytes = 72

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Whitespace-only text fields are rejected rather than trimmed.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	// Report fields by their JSON name so messages match the request payload.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateStruct validates v against its `validate` struct tags and converts the
// first failure into a *ValidationError with a client-safe message.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return NewValidationError(fe.Field(), tagMessage(fe), ErrValidation)
	}

	// InvalidValidationError means a programming error (nil or non-struct input).
	return fmt.Errorf("validate %T: %w", v, err)
}

// ValidatePassword checks a plaintext password before it is hashed.
func ValidatePassword(password string) error {
	if password == "" {
		return NewValidationError("password", "is required", ErrValidation)
	}
	if len(password) > maxPasswordBytes {
		return NewValidationError("password", fmt.Sprintf("must be at most %d bytes long", maxPasswordBytes), ErrValidation)
	}
	return nil
}

// tagMessage maps a validation tag to a readable reason.
func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "uuid", "uuid4":
		return "must be a valid identifier"
	default:
		return "is invalid"
	}
}
