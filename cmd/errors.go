package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/drewanderson201/be-nc-news/internal/core"
	"github.com/drewanderson201/be-nc-news/internal/validator"
	"github.com/lib/pq"
	"github.com/mdobak/go-xerrors"
)

// Postgres error codes the translator classifies, named after their
// condition classes.
const (
	invalidTextRepresentation = pq.ErrorCode("22P02")
	notNullViolation          = pq.ErrorCode("23502")
	foreignKeyViolation       = pq.ErrorCode("23503")
	uniqueViolation           = pq.ErrorCode("23505")
)

// handleError translates a failure into the response body. Explicit
// status-plus-message rejections pass through verbatim; raw database
// errors are classified by code; anything else is a 500.
func (app *application) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var requestErr *core.RequestError
	if errors.As(err, &requestErr) {
		app.errorResponse(w, r, requestErr.Status, requestErr.Msg, err)
		return
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case invalidTextRepresentation, notNullViolation:
			app.errorResponse(w, r, http.StatusBadRequest, "Bad request", err)
		case foreignKeyViolation:
			app.errorResponse(w, r, http.StatusNotFound, "Resource not found", err)
		case uniqueViolation:
			app.errorResponse(w, r, http.StatusConflict, "Resource already exists", err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.serverErrorResponse(w, r, err)
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, "Bad request", err)
}

func (app *application) failedValidationResponse(w http.ResponseWriter, r *http.Request, v *validator.Validator) {
	for key, message := range v.Errors {
		app.logger.Debug("request validation failed", slog.String(key, message))
	}
	app.badRequestResponse(w, r, nil)
}

func (app *application) invalidEndpointResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "Not Found - Invalid Endpoint", nil)
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusInternalServerError, "Unknown Error", err)
}

func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	attrs := []slog.Attr{
		slog.String("request_url", r.URL.String()),
		slog.String("request_method", r.Method),
		slog.Int("status", status),
		slog.String("msg", msg),
	}
	if err != nil {
		attrs = append(attrs, slog.String("stack", xerrors.Sprint(err)))
	}
	app.logger.LogAttrs(r.Context(), slog.LevelError, "error handling request", attrs...)

	if err := app.writeJSON(w, status, envelope{"msg": msg}, nil); err != nil {
		app.logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
	}
}
