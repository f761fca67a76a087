package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func InitValidators() {
	validate = validator.New()

	// checkout_session: processor-issued checkout session id ("cs_...").
	validate.RegisterValidation("checkout_session", func(fl validator.FieldLevel) bool {
		return strings.HasPrefix(fl.Field().String(), "cs_")
	})
}

// Export validate to use in handlers
func Validator() *validator.Validate {
	return validate
}
