package web

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/cornerstone-church/site/pkg/handler"
	"github.com/cornerstone-church/site/pkg/logger"
)

// accessLog logs one line per request. Request id and client ip come from
// the logger's context extractors.
func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.LogAttrs(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status_code", status),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}

// recoverer turns a panic into a 500 JSON error and logs the stack.
func recoverer(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.ErrorContext(r.Context(), "panic recovered",
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)
				_ = handler.JSONError(handler.ErrInternalServerError).Render(w, r)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// AdminCredentials guard the admin routes. PasswordHash is a bcrypt hash.
type AdminCredentials struct {
	User         string `env:"ADMIN_USER"`
	PasswordHash string `env:"ADMIN_PASSWORD_HASH"`
}

// Configured reports whether both the user and the password hash are set.
func (c AdminCredentials) Configured() bool {
	return c.User != "" && c.PasswordHash != ""
}

// basicAuth checks HTTP basic credentials against creds.
func basicAuth(creds AdminCredentials, log *slog.Logger) func(http.Handler) http.Handler {
	hash := []byte(creds.PasswordHash)
	user := []byte(creds.User)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, p, ok := r.BasicAuth()
			userOK := subtle.ConstantTimeCompare([]byte(u), user) == 1
			if ok && userOK && bcrypt.CompareHashAndPassword(hash, []byte(p)) == nil {
				next.ServeHTTP(w, r)
				return
			}

			log.WarnContext(r.Context(), "admin authentication failed",
				slog.String("path", r.URL.Path),
			)
			w.Header().Set("WWW-Authenticate", `Basic realm="admin", charset="UTF-8"`)
			_ = handler.JSONError(handler.ErrUnauthorized).Render(w, r)
		})
	}
}
