package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cradoe/profilegate/internal/context"
	"github.com/cradoe/profilegate/internal/credentials"
	"github.com/cradoe/profilegate/internal/errHandler"
	"github.com/cradoe/profilegate/internal/response"
	"github.com/google/uuid"
	"github.com/tomasen/realip"
)

const requestIDHeader = "X-Request-ID"

type Middleware struct {
	errHandler *errHandler.ErrorRepository
	logger     *slog.Logger
	store      credentials.Store
}

func New(errHandler *errHandler.ErrorRepository, logger *slog.Logger, store credentials.Store) *Middleware {
	return &Middleware{
		errHandler: errHandler,
		logger:     logger,
		store:      store,
	}
}

func (mid *Middleware) RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err != nil {
				mid.errHandler.ServerError(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// RequestID keeps an incoming X-Request-ID or assigns a new one. The id is
// forwarded to the backend and written to the activity log.
func (mid *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)
		next.ServeHTTP(w, context.ContextSetRequestID(r, requestID))
	})
}

func (mid *Middleware) LogAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		mw := response.NewMetricsResponseWriter(w)
		next.ServeHTTP(mw, r)

		var (
			ip     = realip.FromRequest(r)
			method = r.Method
			url    = r.URL.String()
			proto  = r.Proto
		)

		userAttrs := slog.Group("user", "ip", ip)
		requestAttrs := slog.Group("request", "method", method, "url", url, "proto", proto, "id", context.RequestID(r.Context()))
		responseAttrs := slog.Group("response", "status", mw.StatusCode, "size", mw.BytesCount, "duration", time.Since(start))

		mid.logger.Info("access", userAttrs, requestAttrs, responseAttrs)
	})
}

// Authenticate attaches the caller's backend credentials. A Bearer header wins;
// otherwise the session cookie is resolved through the credential store.
func (mid *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")
		w.Header().Add("Vary", "Cookie")

		authorizationHeader := r.Header.Get("Authorization")

		if authorizationHeader != "" {
			headerParts := strings.Split(authorizationHeader, " ")
			if len(headerParts) != 2 || headerParts[0] != "Bearer" {
				mid.errHandler.InvalidAuthenticationToken(w, r)
				return
			}

			creds, err := credentials.FromToken(headerParts[1], "", time.Now())
			if err != nil {
				mid.errHandler.InvalidAuthenticationToken(w, r)
				return
			}

			next.ServeHTTP(w, context.ContextSetCredentials(r, creds))
			return
		}

		if sessionID := credentials.SessionIDFromRequest(r); sessionID != "" {
			creds, found, err := mid.store.Get(r.Context(), sessionID)
			if err != nil {
				mid.errHandler.ServerError(w, r, err)
				return
			}

			if found {
				r = context.ContextSetCredentials(r, creds)
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (mid *Middleware) RequireAuthenticatedUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		creds := context.ContextGetCredentials(r)

		if creds == nil {
			mid.errHandler.AuthenticationRequired(w, r)
			return
		}

		if creds.Expired(time.Now()) {
			mid.errHandler.InvalidAuthenticationToken(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
