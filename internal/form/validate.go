package form

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"onlinemaid-backend/internal/schema"
)

// FieldErrors maps a JSON field name to the reason it was rejected.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := lo.Keys(fe)
	sort.Strings(keys)
	parts := lo.Map(keys, func(k string, _ int) string { return k + ": " + fe[k] })
	return strings.Join(parts, "; ")
}

var choiceSets = lo.SliceToMap([]schema.ChoiceSet{
	schema.EnquiryNationality,
	schema.EnquiryResponsibility,
	schema.EnquiryMaidType,
	schema.MaidAge,
	schema.PropertyType,
}, func(cs schema.ChoiceSet) (string, schema.ChoiceSet) { return cs.Name, cs })

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("choice", validateChoice); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("nolinks", validateNoLinks); err != nil {
		panic(err)
	}
	return v
}

var linkRe = regexp.MustCompile(`https?://\S+`)

// validateNoLinks rejects free text carrying web links.
func validateNoLinks(fl validator.FieldLevel) bool {
	return !linkRe.MatchString(fl.Field().String())
}

// validateChoice checks the field against the choice set named by the tag
// parameter. Unknown set names never validate.
func validateChoice(fl validator.FieldLevel) bool {
	cs, ok := choiceSets[fl.Param()]
	if !ok {
		return false
	}
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return cs.Contains(field.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cs.ContainsInt(int(field.Int()))
	default:
		return false
	}
}

func validateStruct(s any) FieldErrors {
	details := FieldErrors{}
	err := validate.Struct(s)
	if err == nil {
		return details
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		details["__all__"] = err.Error()
		return details
	}
	for _, fe := range validationErrs {
		if _, seen := details[fe.Field()]; seen {
			continue
		}
		details[fe.Field()] = message(fe)
	}
	return details
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "choice":
		return fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", fe.Value())
	case "nolinks":
		return "Links are not allowed here."
	default:
		return fe.Error()
	}
}
