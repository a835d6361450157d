package validator

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/invotaxi/region-service/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// в сообщениях используем json-имена полей, как их видит клиент API
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate - валидация структуры; первая нарушенная проверка возвращается как AppError
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.ErrInvalidRequest.Wrap(err)
	}

	return toAppError(verrs[0])
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}

func toAppError(fe validator.FieldError) *errors.AppError {
	details := map[string]interface{}{
		"field": fe.Namespace(),
		"rule":  fe.Tag(),
	}

	switch fe.Tag() {
	case "latitude", "longitude":
		return errors.ErrInvalidRange.
			WithMessage(fmt.Sprintf("%s is out of range", fe.Field())).
			WithDetails(details)
	case "min":
		if fe.Kind() == reflect.Slice {
			if strings.HasSuffix(fe.Field(), "polygon_coordinates") {
				return errors.ErrInsufficientVertices.WithDetails(details)
			}
			return errors.ErrInvalidValue.
				WithMessage(fmt.Sprintf("%s must contain at least %s items", fe.Field(), fe.Param())).
				WithDetails(details)
		}
	case "required":
		return errors.ErrInvalidValue.
			WithMessage(fmt.Sprintf("%s is required", fe.Field())).
			WithDetails(details)
	}

	return errors.ErrInvalidValue.
		WithMessage(fmt.Sprintf("%s failed %q check", fe.Field(), fe.Tag())).
		WithDetails(details)
}
