package validation

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"iq-admin/internal/domain"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/oklog/ulid/v2"
)

// TagInteger accepts strings that parse as a base-10 int ("0", "-1", "+2").
const TagInteger = "integer"

// Validator wraps go-playground/validator with English messages. Field names
// in messages come from the `label` tag, then the `json` tag.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	_ = v.RegisterValidation(TagInteger, func(fl validator.FieldLevel) bool {
		_, err := strconv.Atoi(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterTranslation(TagInteger, trans, func(t ut.Translator) error {
		return t.Add(TagInteger, "{0} must be a whole number", true)
	}, func(t ut.Translator, fe validator.FieldError) string {
		msg, _ := t.T(TagInteger, fe.Field())
		return msg
	})

	return &Validator{validate: v, trans: trans}
}

// Struct validates s and returns nil when it is valid.
func (v *Validator) Struct(s interface{}) domain.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		out := make(domain.ValidationErrors, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			out = append(out, domain.ValidationError{
				Field:   fe.Field(),
				Message: fe.Translate(v.trans),
			})
		}
		return out
	}

	// InvalidValidationError: s was not a struct.
	return domain.ValidationErrors{{Field: "", Message: err.Error()}}
}

// IsValidULID reports whether s is a well-formed ULID (import session ids).
func IsValidULID(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
