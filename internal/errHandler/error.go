package errHandler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/cradoe/profilegate/internal/backend"
	appcontext "github.com/cradoe/profilegate/internal/context"
	"github.com/cradoe/profilegate/internal/helper"
	"github.com/cradoe/profilegate/internal/response"
	"github.com/cradoe/profilegate/internal/smtp"
)

type ErrorRepository struct {
	notificationEmail string
	logger            *slog.Logger
	help              *helper.HelperRepository
	mailer            smtp.MailerInterface
}

func New(notificationEmail string, mailer smtp.MailerInterface, logger *slog.Logger, help *helper.HelperRepository) *ErrorRepository {
	return &ErrorRepository{
		notificationEmail: notificationEmail,
		logger:            logger,
		help:              help,
		mailer:            mailer,
	}
}

func (e *ErrorRepository) ReportServerError(r *http.Request, err error) {
	var (
		message   = err.Error()
		method    = r.Method
		url       = r.URL.String()
		requestID = appcontext.RequestID(r.Context())
		trace     = string(debug.Stack())
	)

	requestAttrs := slog.Group("request", "method", method, "url", url, "id", requestID)
	e.logger.Error(message, requestAttrs, "trace", trace)

	if e.notificationEmail != "" && e.mailer != nil {
		data := e.help.NewEmailData()
		data["Message"] = message
		data["RequestMethod"] = method
		data["RequestURL"] = url
		data["RequestID"] = requestID
		data["Trace"] = trace

		e.help.BackgroundTask(func() error {
			return e.mailer.Send(context.Background(), e.notificationEmail, data, "error-notification.tmpl")
		})
	}
}

type Error struct {
	w       http.ResponseWriter
	r       *http.Request
	errors  any
	status  int
	message string
	headers http.Header
}

func (e *ErrorRepository) ErrorMessage(d *Error) {
	if d.message != "" {
		d.message = strings.ToUpper(d.message[:1]) + d.message[1:]
	}

	err := response.JSONErrorResponse(d.w, d.errors, d.message, d.status, d.headers)
	if err != nil {
		e.ReportServerError(d.r, err)
		d.w.WriteHeader(http.StatusInternalServerError)
	}
}

func (e *ErrorRepository) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	e.ReportServerError(r, err)

	message := "The server encountered a problem and could not process your request"
	e.ErrorMessage(&Error{
		w:       w,
		r:       r,
		status:  http.StatusInternalServerError,
		message: message,
	})
}

func (e *ErrorRepository) NotFound(w http.ResponseWriter, r *http.Request) {
	message := "The requested resource could not be found"
	e.ErrorMessage(&Error{
		w:       w,
		r:       r,
		status:  http.StatusNotFound,
		message: message,
	})
}

func (e *ErrorRepository) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("The %s method is not supported for this resource", r.Method)
	e.ErrorMessage(&Error{
		w:       w,
		r:       r,
		status:  http.StatusMethodNotAllowed,
		message: message,
	})
}

func (e *ErrorRepository) BadRequest(w http.ResponseWriter, r *http.Request, err error) {
	e.ErrorMessage(&Error{
		w:       w,
		r:       r,
		status:  http.StatusBadRequest,
		message: err.Error(),
	})
}

func (e *ErrorRepository) FailedValidation(w http.ResponseWriter, r *http.Request, v any) {
	message := "Validation failed"

	e.ErrorMessage(&Error{
		w:       w,
		r:       r,
		status:  http.StatusUnprocessableEntity,
		message: message,
		errors:  v,
	})
}

func (e *ErrorRepository) Conflict(w http.ResponseWriter, r *http.Request, message string) {
	e.ErrorMessage(&Error{
		w:       w,
		r:       r,
		status:  http.StatusConflict,
		message: message,
	})
}

// Locked is returned when a field or document slot can no longer be changed.
func (e *ErrorRepository) Locked(w http.ResponseWriter, r *http.Request, message string, v any) {
	e.ErrorMessage(&Error{
		w:       w,
		r:       r,
		status:  http.StatusLocked,
		message: message,
		errors:  v,
	})
}

func (e *ErrorRepository) ServiceUnavailable(w http.ResponseWriter, r *http.Request, message string) {
	e.ErrorMessage(&Error{
		w:       w,
		r:       r,
		status:  http.StatusServiceUnavailable,
		message: message,
	})
}

func (e *ErrorRepository) InvalidAuthenticationToken(w http.ResponseWriter, r *http.Request) {
	headers := make(http.Header)
	headers.Set("WWW-Authenticate", "Bearer")

	e.ErrorMessage(&Error{
		w:       w,
		r:       r,
		status:  http.StatusUnauthorized,
		message: "Invalid authentication token",
		headers: headers,
	})
}

func (e *ErrorRepository) AuthenticationRequired(w http.ResponseWriter, r *http.Request) {
	message := "You must be authenticated to access this resource"
	e.ErrorMessage(&Error{
		w:       w,
		r:       r,
		status:  http.StatusUnauthorized,
		message: message,
	})
}

// Backend answers with the remapped backend error. Rejections pass the backend's
// status and message through; transport and shape failures become 502 or 504.
func (e *ErrorRepository) Backend(w http.ResponseWriter, r *http.Request, err error) {
	var backendErr *backend.Error
	if !errors.As(err, &backendErr) {
		e.ServerError(w, r, err)
		return
	}

	status := backendErr.StatusCode
	switch backendErr.Kind {
	case backend.KindShape:
		e.ReportServerError(r, err)
	case backend.KindNetwork:
		e.logger.Warn("backend unreachable", "url", r.URL.String(), "error", backendErr.Err)
		if backendErr.Timeout() {
			status = http.StatusGatewayTimeout
		}
	}
	if status < 400 {
		status = http.StatusBadGateway
	}

	e.ErrorMessage(&Error{
		w:       w,
		r:       r,
		status:  status,
		message: backendErr.Message,
	})
}
