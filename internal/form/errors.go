package form

import (
	"net/http"

	"github.com/invotaxi/region-service/internal/pkg/errors"
)

// Поля формы, которые указываются в details.field ошибок валидации
const (
	FieldTitle   = "title"
	FieldCity    = "city"
	FieldLat     = "lat"
	FieldLon     = "lon"
	FieldRadius  = "radius"
	FieldPolygon = "polygon"
)

var (
	ErrSubmitInFlight = errors.New(
		"SUBMIT_IN_FLIGHT",
		"Previous submit has not finished yet",
		http.StatusConflict,
	)

	ErrFormClosed = errors.New(
		"FORM_CLOSED",
		"Form is closed",
		http.StatusConflict,
	)
)

func fieldError(base *errors.AppError, field, message string) *errors.AppError {
	return base.WithMessage(message).WithDetails(map[string]interface{}{"field": field})
}

// FieldOf возвращает поле, к которому относится ошибка валидации
func FieldOf(err error) string {
	appErr, ok := errors.As(err)
	if !ok || appErr.Details == nil {
		return ""
	}
	field, _ := appErr.Details["field"].(string)
	return field
}

// toSubmitError приводит ошибку внешнего API к виду, который показывается пользователю.
// Ответы API с кодом 4xx остаются как есть, всё остальное считается сетевой ошибкой.
func toSubmitError(err error) *errors.AppError {
	if appErr, ok := errors.As(err); ok && appErr.StatusCode >= 400 && appErr.StatusCode < 500 {
		return appErr
	}
	return errors.ErrNetwork.Wrap(err)
}
