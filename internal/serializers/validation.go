package serializers

import (
	"fmt"
	"math/big"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate = newValidator()

	slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names so errors line up with the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register slug validation: %v", err))
	}
	return v
}

// maxDecimalInputLength bounds the text of a decimal before it is parsed.
const maxDecimalInputLength = 1000

// DecimalRules describes a fixed-precision decimal column.
type DecimalRules struct {
	MaxDigits     int
	DecimalPlaces int
	Min           decimal.Decimal
}

// MoneyRules matches the decimal(10,2) money columns.
var MoneyRules = DecimalRules{MaxDigits: 10, DecimalPlaces: 2, Min: decimal.Zero}

// Check returns the first problem with d, or "" when d fits. Digits are
// counted from the coefficient and exponent, so huge exponents are never
// expanded.
func (r DecimalRules) Check(d decimal.Decimal) string {
	total, places, whole := digits(d)
	switch {
	case total > int64(r.MaxDigits):
		return fmt.Sprintf("Ensure that there are no more than %d digits in total.", r.MaxDigits)
	case places > int64(r.DecimalPlaces):
		return fmt.Sprintf("Ensure that there are no more than %d decimal places.", r.DecimalPlaces)
	case whole > int64(r.MaxDigits-r.DecimalPlaces):
		return fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", r.MaxDigits-r.DecimalPlaces)
	}

	// Precision is checked first so the comparison only sees bounded values.
	if d.LessThan(r.Min) {
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", r.Min.String())
	}
	return ""
}

// digits splits d into its total, fractional and whole digit counts the way
// fixed-precision database columns count them. Trailing zeros the client
// sent are part of the coefficient and are counted.
func digits(d decimal.Decimal) (total, places, whole int64) {
	coef := int64(len(new(big.Int).Abs(d.Coefficient()).String()))
	exp := int64(d.Exponent())
	switch {
	case exp >= 0:
		total = coef + exp
		return total, 0, total
	case coef > -exp:
		return coef, -exp, coef + exp
	default:
		return -exp, -exp, 0
	}
}

// ValidateStruct runs the struct's validate tags and converts failures into
// FieldErrors keyed by JSON field name.
func ValidateStruct(s interface{}) FieldErrors {
	errs := FieldErrors{}
	err := validate.Struct(s)
	if err == nil {
		return errs
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.Add("non_field_errors", err.Error())
		return errs
	}
	for _, e := range validationErrors {
		field := e.Field()
		// Slice elements come back as tags[0]; report them on the list field.
		if i := strings.IndexByte(field, '['); i > 0 {
			field = field[:i]
		}
		errs.Add(field, message(e))
	}
	return errs
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", e.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", e.Param())
	case "slug":
		return `Enter a valid "slug" consisting of letters, numbers, underscores or hyphens.`
	default:
		return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
}
