// Package bind decodes and validates JSON request bodies
//
// Validation uses one process wide go-playground validator with English messages keyed by
// the json tag name, so a failure reads "taskId must be at most 64" rather than the Go field.
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	perr "trainerbot/internal/platform/errors"
	"trainerbot/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ValidatorSvc is the validator with its translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc

	// task ids travel inside deep links, keep them to the characters a start parameter allows
	taskIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)
)

// Get returns the validator, building it on first use
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		_ = v.RegisterValidation("taskid", func(fl validator.FieldLevel) bool {
			return taskIDPattern.MatchString(fl.Field().String())
		})

		translate(v, trans, "min", "{0} must be at least {1}")
		translate(v, trans, "max", "{0} must be at most {1}")
		translate(v, trans, "taskid", "{0} must be a task id of letters, digits, '-' or '_'")

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// translate registers a short message for tag, {0} is the field and {1} the param
func translate(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// Struct validates v and returns the first failure as a Validation error naming its field
func Struct(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		logger.Named("bind").Error().Err(err).Msg("validator misuse")
		return perr.Internalf("validation error")
	}
	fe := verrs[0]
	return perr.WithField(perr.Validationf("%s", fe.Translate(Get().Translator)), fe.Field())
}

// JSONOptions tunes ParseJSON
type JSONOptions struct {
	// MaxBytes caps the body, 64KiB when zero
	MaxBytes int64
	// DisallowUnknown rejects fields T does not declare
	DisallowUnknown bool
}

// ParseJSON decodes the body into T and validates it
// Every failure is a *perr.Error, JSON problems as ErrorCodeJSON and rule failures as ErrorCodeValidation
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero, dst T

	o := JSONOptions{}
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = 64 << 10
	}
	if r.Body == nil {
		return zero, perr.JSONErrf("empty body")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, o.MaxBytes))
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			return zero, perr.JSONErrf("empty body")
		}
		return zero, perr.Wrap(err, perr.ErrorCodeJSON, "invalid JSON")
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Struct(dst); err != nil {
		return zero, err
	}
	return dst, nil
}
