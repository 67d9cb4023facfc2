package validator

import (
	"errors"
	"fmt"
	"strings"

	"rezkit/pkg/logger"
	"rezkit/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type RecordValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewRecordValidator(log *logger.Logger) *RecordValidator {
	return &RecordValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// ValidateRecord checks an assembled booking record before it is
// persisted. Records are machine-built, so a failure here points at an
// assembly bug rather than bad user input.
func (v *RecordValidator) ValidateRecord(record *model.BookingRecord) error {
	if err := v.validate.Struct(record); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *RecordValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "email":
			message = "email must be a valid address"
		case "e164":
			message = "phone must be in international E.164 format"
		case "iso3166_1_alpha2":
			message = "country must be a 2-letter ISO 3166-1 code"
		case "uuid4":
			message = "reference must be a v4 UUID"
		case "iso4217":
			message = "currency must be a 3-letter ISO 4217 code"
		case "mongodb":
			message = "id must be a valid object id"
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
