package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cornerstone-church/site/internal/content"
	"github.com/cornerstone-church/site/pkg/binder"
	"github.com/cornerstone-church/site/pkg/clientip"
	"github.com/cornerstone-church/site/pkg/handler"
	"github.com/cornerstone-church/site/pkg/httpserver"
	"github.com/cornerstone-church/site/pkg/logger"
	"github.com/cornerstone-church/site/pkg/ratelimiter"
	"github.com/cornerstone-church/site/pkg/requestid"
)

// Deps are the collaborators of the router. Content and ContentAdmin may be
// nil to leave those routes unmounted; Admin without credentials leaves the
// admin surface unmounted.
type Deps struct {
	Submissions  SubmissionService
	Content      ContentReader
	ContentAdmin content.Repository
	Admin        AdminCredentials
	FormLimiter  *ratelimiter.Bucket
	ClientIP     clientip.Resolver
	Checks       []httpserver.Check
	ReadyTimeout time.Duration
	Logger       *slog.Logger
}

func formTypeParam(r *http.Request) string {
	return chi.URLParam(r, "formType")
}

// wrap binds with binders and routes errors through the shared error handler.
func wrap[R any](eh handler.ErrorHandler, h handler.HandlerFunc[R], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[R](binders...),
		handler.WithErrorHandler[R](eh),
	)
}

// NewRouter assembles the site API.
func NewRouter(d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("web"))

	readyTimeout := d.ReadyTimeout
	if readyTimeout <= 0 {
		readyTimeout = 5 * time.Second
	}

	eh := handler.NewErrorHandler(log, classify)
	path := binder.Path(chi.URLParam)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		d.ClientIP.Middleware,
		accessLog(log),
		recoverer(log),
		middleware.CleanPath,
	)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = handler.JSONError(handler.ErrNotFound).Render(w, r)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = handler.JSONError(handler.NewHTTPError(http.StatusMethodNotAllowed, "method_not_allowed")).Render(w, r)
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", httpserver.LivenessHandler())
		r.Get("/ready", httpserver.ReadinessHandler(log, readyTimeout, d.Checks...))
	})

	r.Route("/api", func(r chi.Router) {
		if d.Submissions != nil {
			forms := formsHandler{svc: d.Submissions}
			r.Route("/forms/{formType}", func(r chi.Router) {
				r.Use(forms.requireForm)
				if d.FormLimiter != nil {
					r.Use(ratelimiter.Middleware(d.FormLimiter, clientKey,
						ratelimiter.WithDeniedHandler(func(w http.ResponseWriter, r *http.Request, _ ratelimiter.Result) {
							_ = handler.JSONError(errRateLimited).Render(w, r)
						}),
					))
				}
				r.Post("/", wrap(eh, forms.submit, binder.Body(), path))
			})
		}

		if d.Content != nil {
			pub := contentHandler{svc: d.Content}
			r.Get("/events", wrap(eh, pub.events))
			r.Get("/classes", wrap(eh, pub.classes))
			r.Get("/ministries", wrap(eh, pub.ministries))
		}
	})

	if d.Admin.Configured() {
		admin := adminHandler{submissions: d.Submissions, repo: d.ContentAdmin}
		r.Route("/admin", func(r chi.Router) {
			r.Use(basicAuth(d.Admin, log))

			if d.Submissions != nil {
				r.Get("/submissions/{formType}", wrap(eh, admin.listSubmissions, path))
			}

			if d.ContentAdmin == nil {
				return
			}
			jsonBody := binder.JSON()

			r.Route("/events", func(r chi.Router) {
				r.Get("/", wrap(eh, admin.listEvents))
				r.Post("/", wrap(eh, admin.createEvent, jsonBody))
				r.Put("/{id}", wrap(eh, admin.updateEvent, jsonBody, path))
				r.Delete("/{id}", wrap(eh, admin.deleteEvent, path))
			})
			r.Route("/classes", func(r chi.Router) {
				r.Get("/", wrap(eh, admin.listClasses))
				r.Post("/", wrap(eh, admin.createClass, jsonBody))
				r.Put("/{id}", wrap(eh, admin.updateClass, jsonBody, path))
				r.Delete("/{id}", wrap(eh, admin.deleteClass, path))
			})
			r.Route("/ministries", func(r chi.Router) {
				r.Get("/", wrap(eh, admin.listMinistries))
				r.Post("/", wrap(eh, admin.createMinistry, jsonBody))
				r.Put("/{id}", wrap(eh, admin.updateMinistry, jsonBody, path))
				r.Delete("/{id}", wrap(eh, admin.deleteMinistry, path))

				r.Route("/{id}/features", func(r chi.Router) {
					r.Get("/", wrap(eh, admin.listFeatures, path))
					r.Post("/", wrap(eh, admin.createFeature, jsonBody, path))
					r.Put("/{featureID}", wrap(eh, admin.updateFeature, jsonBody, path))
					r.Delete("/{featureID}", wrap(eh, admin.deleteFeature, path))
				})
			})
		})
	}

	return r
}

// clientKey rate limits by the resolved client address.
func clientKey(r *http.Request) string {
	return clientip.FromContext(r.Context())
}
