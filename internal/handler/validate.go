package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate checks request DTOs against their struct tags before anything
// reaches the service layer. A single shared instance is the library's
// recommended usage: it caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs validate.Struct and converts the first failure into a
// caller-friendly message naming the offending field and rule.
func validateInput(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := strings.ToLower(fe.Field())
		if fe.Tag() == "required" {
			return fmt.Errorf("%s is required", field)
		}
		return fmt.Errorf("%s failed on the %q rule", field, fe.Tag())
	}
	return err
}
