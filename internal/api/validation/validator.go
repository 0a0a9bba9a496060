package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"

	"github.com/lessensdelharmonie/harmonie/internal/api/dto/v1/contact"
)

// emailRegex accepts the same addresses as the form widget: no leading dot,
// no consecutive dots, last local character not a dot, TLD of two letters or more.
var emailRegex = regexp.MustCompile(`(?i)^[a-z0-9_'+\-.]*[a-z0-9_+-]@([a-z0-9][a-z0-9\-]*\.)+[a-z]{2,}$`)

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) {
	v.RegisterValidation("email", validateEmail)
}

// validateEmail checks if the email is valid
func validateEmail(fl validator.FieldLevel) bool {
	email := fl.Field().String()
	if strings.HasPrefix(email, ".") || strings.Contains(email, "..") {
		return false
	}
	return emailRegex.MatchString(email)
}

// jsonFieldName reports validation errors under the JSON name of the field
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// formField is one entry of the submission schema derived from struct tags
type formField struct {
	index    int
	name     string
	required bool
	rules    []string
}

var submissionFields = describeFields(reflect.TypeOf(contact.SubmissionRequest{}))

func describeFields(t reflect.Type) []formField {
	fields := make([]formField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name := jsonFieldName(sf)
		if name == "" || sf.Type.Kind() != reflect.String {
			continue
		}
		tag := sf.Tag.Get("validate")
		f := formField{index: i, name: name, required: tag != ""}
		if tag != "" {
			f.rules = strings.Split(tag, ",")
		}
		fields = append(fields, f)
	}
	return fields
}

// Validator validates contact submissions
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the custom rules registered
func New() *Validator {
	validate := validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	RegisterValidators(validate)
	return &Validator{
		validate: validate,
	}
}

// ValidateSubmission parses a raw payload and checks every field of the
// submission schema. It returns the typed request when all rules pass, or the
// complete set of field violations otherwise. Only ErrMalformedPayload and
// internal validator failures are returned as errors.
func (v *Validator) ValidateSubmission(payload []byte, locale language.Tag) (*contact.SubmissionRequest, FieldErrors, error) {
	fields, err := decodeObject(payload)
	if err != nil {
		return nil, nil, err
	}

	msgs := catalogFor(locale)
	errs := FieldErrors{}
	req := &contact.SubmissionRequest{}
	rv := reflect.ValueOf(req).Elem()

	for _, f := range submissionFields {
		raw, present := fields[f.name]
		if !present || isNull(raw) {
			// phone: null is the same as leaving the field out
			if !f.required {
				continue
			}
			if !present {
				errs.Add(f.name, msgs.required)
			} else {
				errs.Add(f.name, msgs.typeMismatch("null"))
			}
			continue
		}

		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			errs.Add(f.name, msgs.typeMismatch(jsonKind(raw)))
			continue
		}
		rv.Field(f.index).SetString(s)
	}

	if err := v.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, nil, fmt.Errorf("validate submission: %w", err)
		}
		for _, fe := range verrs {
			// type errors already explain the field
			if errs.Has(fe.Field()) {
				continue
			}
			errs.Add(fe.Field(), msgs.rule(fe.Field(), fe.Tag()))
		}
	}

	if len(errs) > 0 {
		return nil, errs, nil
	}
	return req, nil, nil
}

// Schema describes the submission form in the given locale
func (v *Validator) Schema(locale language.Tag) contact.Schema {
	msgs := catalogFor(locale)
	schema := contact.Schema{
		Locale: locale.String(),
		Fields: make([]contact.FieldRule, 0, len(submissionFields)),
	}

	for _, f := range submissionFields {
		rule := contact.FieldRule{
			Field:    f.name,
			Required: f.required,
		}
		if f.required {
			rule.Messages = map[string]string{"required": msgs.required}
		}
		for _, r := range f.rules {
			tag, param, _ := strings.Cut(r, "=")
			switch tag {
			case "min":
				if n, err := strconv.Atoi(param); err == nil {
					rule.MinLength = n
				}
			default:
				rule.Format = tag
			}
			rule.Messages[tag] = msgs.rule(f.name, tag)
		}
		schema.Fields = append(schema.Fields, rule)
	}

	return schema
}

func decodeObject(payload []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: payload is null", ErrMalformedPayload)
	}
	return fields, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// jsonKind names the JSON type of a raw value
func jsonKind(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "undefined"
	}
	switch trimmed[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
