package validation

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"jobpost/internal/domain/job"

	"github.com/go-playground/validator/v10"
)

var ErrValidation = errors.New("validation failed")

// FieldErrors maps a JSON field name to the rule it broke.
type FieldErrors map[string]string

type Error struct {
	Fields FieldErrors
}

func (e *Error) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, ", ")
}

func (e *Error) Unwrap() error {
	return ErrValidation
}

// isoDateRe accepts an ISO-8601 calendar date with an optional time part.
// Calendar validity (e.g. Feb 30) is checked when the date is parsed.
var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}(:\d{2}(\.\d+)?)?(Z|[+-]\d{2}:?\d{2})?)?$`)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	must(v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}))
	must(v.RegisterValidation("jobtype", func(fl validator.FieldLevel) bool {
		_, err := job.ParseType(fl.Field().String())
		return err == nil
	}))
	must(v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return isoDateRe.MatchString(fl.Field().String())
	}))

	return &Validator{v: v}
}

// Struct validates s against its `validate` tags. A rule violation comes back
// as *Error; anything else means s was not a validatable struct.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = fe.Tag()
	}
	return &Error{Fields: fields}
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
