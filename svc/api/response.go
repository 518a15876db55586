package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/travelsuite/tenancy/pkg/logger"
	"github.com/travelsuite/tenancy/pkg/requestid"
	"github.com/travelsuite/tenancy/pkg/validator"
)

// Envelope is the body of every API response.
type Envelope struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail describes a failed request. Details lists validation messages
// per field.
type ErrorDetail struct {
	Code      string              `json:"code"`
	Message   string              `json:"message"`
	Details   map[string][]string `json:"details,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respond(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Data: data})
}

// errorRenderer writes err as a JSON error. Internal failures are logged with
// the request context and answered with a generic message.
type errorRenderer struct {
	log *slog.Logger
}

func (e errorRenderer) render(w http.ResponseWriter, r *http.Request, err error) {
	he := classify(err)
	detail := &ErrorDetail{
		Code:      he.Key,
		Message:   http.StatusText(he.Code),
		RequestID: requestid.FromContext(r.Context()),
	}

	switch {
	case he.Code >= http.StatusInternalServerError:
		e.log.ErrorContext(r.Context(), "request failed",
			logger.Component("api"),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Error(err),
		)
	case he == ErrValidation:
		detail.Message = "validation failed"
		if ve := validator.ExtractValidationErrors(err); len(ve) > 0 {
			detail.Details = make(map[string][]string, len(ve))
			for _, v := range ve {
				detail.Details[v.Field] = append(detail.Details[v.Field], v.Message)
			}
		}
	}

	writeJSON(w, he.Code, Envelope{Error: detail})
}
