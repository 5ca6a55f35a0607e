package web

import (
	"context"
	"net/http"

	"github.com/cornerstone-church/site/internal/content"
	"github.com/cornerstone-church/site/pkg/handler"
)

// ContentReader is the part of content.Service the public routes need.
type ContentReader interface {
	ListEvents(ctx context.Context) content.Result[content.Event]
	ListClasses(ctx context.Context) content.Result[content.Class]
	ListMinistries(ctx context.Context) content.Result[content.Ministry]
}

type contentHandler struct {
	svc ContentReader
}

// listing renders a Result. A failed fetch answers 503 with meta.status
// "failed" and an empty list so pages can show a retry notice.
func listing[T any](res content.Result[T]) handler.Response {
	meta := map[string]any{"status": res.Status, "count": len(res.Items)}
	if res.Failed() {
		return handler.JSON(res.Items,
			handler.WithJSONStatus(http.StatusServiceUnavailable),
			handler.WithJSONMeta(meta),
		)
	}
	return handler.JSON(res.Items, handler.WithJSONMeta(meta))
}

func (h contentHandler) events(ctx handler.Context, _ struct{}) handler.Response {
	return listing(h.svc.ListEvents(ctx))
}

func (h contentHandler) classes(ctx handler.Context, _ struct{}) handler.Response {
	return listing(h.svc.ListClasses(ctx))
}

func (h contentHandler) ministries(ctx handler.Context, _ struct{}) handler.Response {
	return listing(h.svc.ListMinistries(ctx))
}
