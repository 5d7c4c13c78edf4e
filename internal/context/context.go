package context

import (
	"context"
	"net/http"

	"github.com/cradoe/profilegate/internal/credentials"
)

type contextKey string

const (
	credentialsContextKey = contextKey("credentials")
	requestIDContextKey   = contextKey("requestID")
)

func ContextSetCredentials(r *http.Request, creds *credentials.Credentials) *http.Request {
	ctx := context.WithValue(r.Context(), credentialsContextKey, creds)
	return r.WithContext(ctx)
}

func ContextGetCredentials(r *http.Request) *credentials.Credentials {
	creds, ok := r.Context().Value(credentialsContextKey).(*credentials.Credentials)
	if !ok {
		return nil
	}

	return creds
}

func ContextSetRequestID(r *http.Request, requestID string) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDContextKey, requestID)
	return r.WithContext(ctx)
}

// RequestID reads the id stored by ContextSetRequestID from any derived context.
func RequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDContextKey).(string)
	return requestID
}
