package partner

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/merute/welcome/internal/models"
	"github.com/nyaruka/phonenumbers"
)

// phonePattern accepts "+225", an optional space, then a ten digit national
// number starting with 0 and a non-zero digit.
var phonePattern = regexp.MustCompile(`^\+225\s?0[1-9]\d{8}$`)

// Field error copy.
const (
	MsgEmail     = "Email invalide"
	MsgPhone     = "Le numéro doit être au format +225 0XXXXXXXXX"
	MsgCNIRecto  = "Le recto de la CNI est requis"
	MsgCNIVerso  = "Le verso de la CNI est requis"
	MsgTooLarge  = "Le fichier ne doit pas dépasser 5MB"
	MsgNotImage  = "Format accepté : JPG, PNG"
	MsgUploadErr = "Le fichier n'a pas pu être lu"
)

var fieldMessages = map[string]string{
	models.FieldEmail:    MsgEmail,
	models.FieldPhone:    MsgPhone,
	models.FieldCNIRecto: MsgCNIRecto,
	models.FieldCNIVerso: MsgCNIVerso,
}

// Validator wraps the go-playground validator with the partner form rules.
type Validator struct {
	v *validator.Validate
}

// NewValidator registers the ci_phone rule and reports fields by their
// json names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("ci_phone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	}); err != nil {
		panic("partner: register ci_phone: " + err.Error())
	}
	return &Validator{v: v}
}

// Application validates the whole form and returns field -> message.
// An empty map means the application is valid.
func (val *Validator) Application(app models.PartnerApplication) map[string]string {
	out := make(map[string]string)
	err := val.v.Struct(app)
	if err == nil {
		return out
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Not a field-level failure; report it against every field.
		for f, msg := range fieldMessages {
			out[f] = msg
		}
		return out
	}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		if msg, ok := fieldMessages[fe.Field()]; ok {
			out[fe.Field()] = msg
		}
	}
	return out
}

// Only filters a validation result down to the given fields.
func Only(errs map[string]string, fields ...string) map[string]string {
	out := make(map[string]string)
	for _, f := range fields {
		if msg, ok := errs[f]; ok {
			out[f] = msg
		}
	}
	return out
}

// ValidPhone reports whether s matches the +225 0XXXXXXXXX format.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// NormalizePhone formats a valid number as E.164; anything the metadata
// rejects is returned with whitespace removed.
func NormalizePhone(s string) string {
	compact := strings.Join(strings.Fields(s), "")
	num, err := phonenumbers.Parse(compact, "CI")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return compact
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
