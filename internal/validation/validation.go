package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Custom tags usable in `validate` struct tags.
var customValidators = map[string]validator.Func{
	"package_manager": isPackageManager,
	"project_name":    isProjectName,
	"template_name":   isTemplateName,
}

// {0} is the field name (its `cli` tag when present), {1} the rejected value.
var customTranslations = map[string]string{
	"package_manager": "{0} must be one of npm, bun, deno, pnpm, yarn: {1}",
	"project_name":    "{0} must be a valid directory and package name: {1}",
	"template_name":   "{0} must be one of the available templates: {1}",
}

// ValidationError is one translated failure of a struct field.
type ValidationError struct {
	Field  string
	Detail string
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	details := make([]string, 0, len(ve))
	for _, err := range ve {
		details = append(details, err.Detail)
	}
	return strings.Join(details, "; ")
}

// InputError is returned by Struct. Its message joins the translated details
// and it unwraps to validator.ValidationErrors.
type InputError struct {
	Errors ValidationErrors
	cause  validator.ValidationErrors
}

func (e *InputError) Error() string {
	return e.Errors.Error()
}

func (e *InputError) Unwrap() error {
	return e.cause
}

// Validator pairs a validator instance with an English translator.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func NewValidator() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Errors name flags the way the user typed them.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if cliTag := fld.Tag.Get("cli"); cliTag != "" {
			return cliTag
		}
		return fld.Name
	})

	enLocale := en.New()
	trans, found := ut.New(enLocale, enLocale).GetTranslator("en")
	if !found {
		return nil, errors.New("translator not found")
	}

	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	v := &Validator{validate: validate, trans: trans}
	for tag, fn := range customValidators {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("failed to register %s validation: %w", tag, err)
		}
		if err := v.RegisterCustomTranslation(tag, customTranslations[tag]); err != nil {
			return nil, fmt.Errorf("failed to register custom translation for %s: %w", tag, err)
		}
	}

	return v, nil
}

// RegisterCustomTranslation sets the message of tag. It replaces any earlier message.
func (v *Validator) RegisterCustomTranslation(tag, msg string) error {
	return v.validate.RegisterTranslation(tag, v.trans,
		func(trans ut.Translator) error {
			return trans.Add(tag, msg, true)
		},
		func(trans ut.Translator, fe validator.FieldError) string {
			t, _ := trans.T(tag, fe.Field(), fmt.Sprintf("%v", fe.Value()))
			return t
		},
	)
}

// Struct validates s. Field failures come back as *InputError.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return &InputError{Errors: v.ParseValidationErrors(verrs), cause: verrs}
}

// ParseValidationErrors translates the field failures wrapped in err.
// Field is the struct namespace, e.g. "Inputs.Template".
func (v *Validator) ParseValidationErrors(err error) ValidationErrors {
	ves := ValidationErrors{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, verr := range verrs {
			ves = append(ves, ValidationError{
				Field:  verr.StructNamespace(),
				Detail: verr.Translate(v.trans),
			})
		}
	}

	return ves
}
