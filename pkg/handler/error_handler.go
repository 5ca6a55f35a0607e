package handler

import (
	"log/slog"
	"net/http"

	"github.com/cornerstone-church/site/pkg/logger"
)

// Classifier lets a caller map domain errors to HTTP errors before the
// generic classification runs. Returning nil leaves err unchanged.
type Classifier func(err error) error

// NewErrorHandler returns an ErrorHandler that logs the failure (warn for
// 4xx, error for 5xx) and renders it as a JSON error document.
func NewErrorHandler(log *slog.Logger, classify Classifier) ErrorHandler {
	if log == nil {
		log = logger.Discard()
	}

	return func(ctx Context, err error) {
		if classify != nil {
			if mapped := classify(err); mapped != nil {
				err = mapped
			}
		}

		status, detail := ErrorToDetail(err)

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}

		r := ctx.Request()
		log.LogAttrs(ctx, level, "request error",
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		resp := jsonResponse{status: status, body: JSONResponse{Error: detail}}
		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.LogAttrs(ctx, slog.LevelError, "failed to render error response",
				logger.Error(renderErr),
				logger.Component("error_handler"),
			)
		}
	}
}
