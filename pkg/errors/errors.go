package errors

import (
	"fmt"
	"net/http"
)

var (
	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")

	// Оборудование
	ErrAssetNumberTaken     = fmt.Errorf("инвентарный номер уже занят")
	ErrAssetNumberMalformed = fmt.Errorf("неверный формат инвентарного номера")

	// Закупки
	ErrRejectReasonRequired = fmt.Errorf("причина отклонения обязательна")
)

// HttpError — ошибка с HTTP-кодом и сообщением для клиента.
// Err хранит исходную причину (уходит только в лог), Context — поля для лога,
// Details — то, что допустимо показать клиенту в теле ответа.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{
		Code:    code,
		Message: message,
		Err:     err,
		Context: context,
	}
}

func NewNotFoundError(message string) *HttpError {
	return &HttpError{Code: http.StatusNotFound, Message: message}
}

func NewBadRequestError(message string) *HttpError {
	return &HttpError{Code: http.StatusBadRequest, Message: message}
}
