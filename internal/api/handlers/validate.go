package handlers

import (
	"checkpoint-route-service/internal/domain"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// single instance, it caches struct info
var requestValidate *validator.Validate

func init() {
	requestValidate = validator.New(validator.WithRequiredStructEnabled())

	err := requestValidate.RegisterValidation("pathLabel", func(fl validator.FieldLevel) bool {
		return domain.PathLabel(fl.Field().String()).Valid()
	})
	if err != nil {
		panic(fmt.Sprintf("register pathLabel validation: %v", err))
	}
}

// validationMessage turns validator errors into one client-facing line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
