package validator

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"rezkit/pkg/logger"
	"rezkit/pkg/model"
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

type ItemValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewItemValidator(log *logger.Logger) *ItemValidator {
	v := validator.New()

	if err := v.RegisterValidation("https_url", validateHTTPSURL); err != nil {
		log.Fatal("Failed to register 'https_url' validator",
			"error", err,
		)
	}

	log.Info("Item validator initialized successfully")

	return &ItemValidator{
		validate: v,
		logger:   log,
	}
}

// validateHTTPSURL accepts only absolute https URLs with a host.
// Availability feeds are fetched server-side, so plain http is never
// allowed in.
func validateHTTPSURL(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme == "https" && parsed.Host != ""
}

func (v *ItemValidator) Validate(item *model.Item) error {
	if err := v.validate.Struct(item); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if item.Config.HasCityTax && item.Config.CityTaxPerNight <= 0 {
		return ValidationErrors{
			ValidationError{
				Field:   "CityTaxPerNight",
				Message: "city_tax_per_night must be positive when has_city_tax is set",
			},
		}
	}

	if !item.Config.HasCityTax && item.Config.CityTaxPerNight > 0 {
		return ValidationErrors{
			ValidationError{
				Field:   "HasCityTax",
				Message: "city_tax_per_night is set but has_city_tax is false",
			},
		}
	}

	return nil
}

func (v *ItemValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "iso4217":
			message = fmt.Sprintf("%s must be a valid ISO 4217 currency code", err.Field())
		case "https_url":
			message = fmt.Sprintf("%s must be an https URL", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
