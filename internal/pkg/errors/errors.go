package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError - ошибка приложения с кодом для клиента и HTTP статусом для транспорта
type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is сравнивает ошибки по коду, чтобы копии с деталями совпадали с sentinel-ошибками
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithDetails возвращает копию ошибки с деталями; sentinel не модифицируется
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithMessage возвращает копию ошибки с уточнённым сообщением
func (e *AppError) WithMessage(message string) *AppError {
	cp := *e
	cp.Message = message
	return &cp
}

// WithStatus возвращает копию ошибки с другим HTTP статусом
func (e *AppError) WithStatus(statusCode int) *AppError {
	cp := *e
	cp.StatusCode = statusCode
	return &cp
}

// Wrap оборачивает произвольную ошибку в копию AppError, сохраняя причину в деталях
func (e *AppError) Wrap(err error) *AppError {
	if err == nil {
		return e
	}
	return e.WithDetails(map[string]interface{}{"cause": err.Error()})
}

// As извлекает AppError из цепочки ошибок
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf возвращает код AppError или пустую строку
func CodeOf(err error) string {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return ""
}

// Is - обёртка над стандартным errors.Is, чтобы не импортировать оба пакета
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
