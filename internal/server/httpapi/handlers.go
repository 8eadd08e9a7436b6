package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wbdash/wbdash/internal/common"
	"github.com/wbdash/wbdash/internal/daterange"
	"github.com/wbdash/wbdash/internal/logging"
	"github.com/wbdash/wbdash/internal/server/models"
	"github.com/wbdash/wbdash/internal/server/services"
)

type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, nickname, password string) (*services.LoginResult, error)
	Profile(ctx context.Context, userID int64) (*models.Profile, error)
}

type WbLkService interface {
	Create(ctx context.Context, ownerID int64, in services.AccountInput) (*models.LinkedAccount, error)
	List(ctx context.Context, userID int64) ([]models.LinkedAccount, error)
	Share(ctx context.Context, ownerID, lkID, targetID int64) error
	Users(ctx context.Context, ownerID, lkID int64) ([]models.Grantee, error)
	Unshare(ctx context.Context, ownerID, lkID, targetID int64) error
}

type AnalyticsService interface {
	OrdersChart(ctx context.Context, userID int64, lkIDs []int64, r daterange.Range) (*models.OrdersChart, error)
	Products(ctx context.Context, userID int64, lkIDs []int64, r daterange.Range) ([]models.Product, error)
	Stocks(ctx context.Context, userID int64, lkIDs []int64) (int64, error)
}

type Handler struct {
	users     UserService
	lks       WbLkService
	analytics AnalyticsService
	log       logging.Logger
	now       func() time.Time
}

func NewHandler(us UserService, ls WbLkService, as AnalyticsService, log logging.Logger) *Handler {
	return &Handler{users: us, lks: ls, analytics: as, log: log, now: time.Now}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	writeError(r.Context(), h.log, w, err)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// --- auth ---

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeDetail(w, http.StatusBadRequest, msgBadJSON)
		return
	}
	u, err := h.users.Register(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.log.Info(r.Context(), "user registered", "user_id", u.ID)
	writeJSON(w, http.StatusOK, u)
}

type loginRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type loginResponse struct {
	User        *models.User `json:"user"`
	Message     string       `json:"message"`
	AccessToken string       `json:"access_token"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeDetail(w, http.StatusBadRequest, msgBadJSON)
		return
	}
	res, err := h.users.Login(r.Context(), in.Nickname, in.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeDetail(w, http.StatusUnauthorized, msgBadCredentials)
			return
		}
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{User: res.User, Message: "Успешный вход", AccessToken: res.AccessToken})
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	p, err := h.users.Profile(r.Context(), UserID(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// --- linked accounts ---

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	list, err := h.lks.List(r.Context(), UserID(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var in services.AccountInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeDetail(w, http.StatusBadRequest, msgBadJSON)
		return
	}
	lk, err := h.lks.Create(r.Context(), UserID(r.Context()), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lk)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", common.ErrValidation, name)
	}
	return id, nil
}

type shareRequest struct {
	UserID int64 `json:"user_id"`
}

func (h *Handler) shareAccount(w http.ResponseWriter, r *http.Request) {
	lkID, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var in shareRequest
	if err := decodeJSON(w, r, &in); err != nil || in.UserID <= 0 {
		writeDetail(w, http.StatusBadRequest, msgBadJSON)
		return
	}
	if err := h.lks.Share(r.Context(), UserID(r.Context()), lkID, in.UserID); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Доступ предоставлен"})
}

func (h *Handler) accountUsers(w http.ResponseWriter, r *http.Request) {
	lkID, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	list, err := h.lks.Users(r.Context(), UserID(r.Context()), lkID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]models.Grantee{"users": list})
}

func (h *Handler) unshareAccount(w http.ResponseWriter, r *http.Request) {
	lkID, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	target, err := pathID(r, "userId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.lks.Unshare(r.Context(), UserID(r.Context()), lkID, target); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Доступ отозван"})
}
