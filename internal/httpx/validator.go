package httpx

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var dateStrPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func init() {
	validate = validator.New()

	// Report fields by their json name so validation details line up with
	// what the client actually sent.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("datestr", validateDateStr)
}

// validateDateStr checks the YYYY-MM-DD shape. Calendar validity is not
// enforced; the stored value is an opaque date string.
func validateDateStr(fl validator.FieldLevel) bool {
	return dateStrPattern.MatchString(fl.Field().String())
}

// ValidateStruct runs the validate tags on s and flattens failures into
// per-field details suitable for a 400 response.
func ValidateStruct(s any) []ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var details []ErrorDetail
	for _, fieldErr := range err.(validator.ValidationErrors) {
		field := fieldErr.Field()
		param := fieldErr.Param()

		var message string
		switch fieldErr.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "datestr":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", field, param)
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, param)
		case "gte":
			message = fmt.Sprintf("%s must be at least %s", field, param)
		case "lte":
			message = fmt.Sprintf("%s must be at most %s", field, param)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		details = append(details, ErrorDetail{
			Field:   field,
			Message: message,
		})
	}

	return details
}
