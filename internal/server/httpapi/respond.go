package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wbdash/wbdash/internal/common"
	"github.com/wbdash/wbdash/internal/logging"
	"github.com/wbdash/wbdash/internal/server/repositories/users"
	"github.com/wbdash/wbdash/internal/server/services"
)

const (
	msgNicknameTaken  = "Никнейм уже занят"
	msgEmailTaken     = "Email уже используется"
	msgBadCredentials = "Неверный никнейм или пароль"
	msgNotActivated   = "Аккаунт не активирован"
	msgAuthRequired   = "Требуется авторизация"
	msgForbidden      = "Недостаточно прав"
	msgNotFound       = "Не найдено"
	msgAlreadyShared  = "Доступ уже предоставлен"
	msgInternal       = "Внутренняя ошибка сервера"
	msgBadJSON        = "Некорректное тело запроса"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// statusFor maps service errors onto a status and a user-facing detail.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, users.ErrNicknameTaken):
		return http.StatusBadRequest, msgNicknameTaken
	case errors.Is(err, users.ErrEmailTaken):
		return http.StatusBadRequest, msgEmailTaken
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusBadRequest, msgAlreadyShared
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrNotActivated):
		return http.StatusForbidden, msgNotActivated
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, msgForbidden
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, msgAuthRequired
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, msgNotFound
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func writeError(ctx context.Context, log logging.Logger, w http.ResponseWriter, err error) {
	code, detail := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Error(ctx, "request failed", "error", err, "request_id", RequestID(ctx))
	}
	writeDetail(w, code, detail)
}

// decodeJSON reads at most 1 MiB of request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v)
}
