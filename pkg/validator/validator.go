package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// report errors under the JSON field name, not the Go field name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidators()
}

func registerCustomValidators() {
	// notionid: 32 hex chars, dashes optional
	validate.RegisterValidation("notionid", func(fl validator.FieldLevel) bool {
		id := strings.ReplaceAll(fl.Field().String(), "-", "")
		if len(id) != 32 {
			return false
		}
		for _, char := range id {
			if !((char >= '0' && char <= '9') || (char >= 'a' && char <= 'f') || (char >= 'A' && char <= 'F')) {
				return false
			}
		}
		return true
	})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func GetValidator() *validator.Validate {
	return validate
}
