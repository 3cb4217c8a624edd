package utils

import (
	"net/http"

	apperrors "asset-system/pkg/errors"
)

// ErrorList сопоставляет сентинельные ошибки сервисов HTTP-кодам.
var ErrorList = map[error]int{
	apperrors.ErrNotFound:              http.StatusNotFound,
	apperrors.ErrBadRequest:            http.StatusBadRequest,
	apperrors.ErrAssetNumberTaken:      http.StatusBadRequest,
	apperrors.ErrAssetNumberMalformed:  http.StatusBadRequest,
	apperrors.ErrRejectReasonRequired:  http.StatusBadRequest,
}
