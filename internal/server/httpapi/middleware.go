package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/wbdash/wbdash/internal/common"
	"github.com/wbdash/wbdash/internal/logging"
	"github.com/wbdash/wbdash/internal/server/auth"
)

type ctxKey string

const (
	requestIDKey ctxKey = "requestID"
	userIDKey    ctxKey = "userID"
)

// RequestID returns the id assigned by requestIDMiddleware, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// UserID returns the authenticated caller, or 0.
func UserID(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}

// requestIDMiddleware keeps a caller-supplied X-Request-ID or generates one
// and echoes it on the response.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(common.RequestIDHeaderName)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		w.Header().Set(common.RequestIDHeaderName, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func loggingMiddleware(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", RequestID(r.Context()),
			)
		})
	}
}

// Authenticator resolves the caller from a bearer token, or from X-User-ID
// when allowed. A present but invalid token is rejected even if the header
// would have been accepted.
type Authenticator struct {
	secret            []byte
	allowUserIDHeader bool
}

func NewAuthenticator(secret string, allowUserIDHeader bool) *Authenticator {
	return &Authenticator{secret: []byte(secret), allowUserIDHeader: allowUserIDHeader}
}

func (a *Authenticator) userID(r *http.Request) (int64, error) {
	if h := r.Header.Get(common.AuthorizationHeaderName); h != "" {
		tok, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || tok == "" {
			return 0, common.ErrInvalidToken
		}
		return auth.GetUserIDFromToken(tok, a.secret)
	}
	if a.allowUserIDHeader {
		if h := r.Header.Get(common.UserIDHeaderName); h != "" {
			id, err := strconv.ParseInt(h, 10, 64)
			if err != nil || id <= 0 {
				return 0, common.ErrorUnauthorized
			}
			return id, nil
		}
	}
	return 0, common.ErrorUnauthorized
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := a.userID(r)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, msgAuthRequired)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, id)))
	})
}
