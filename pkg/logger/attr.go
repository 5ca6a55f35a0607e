package logger

import (
	"log/slog"
	"time"
)

// Error records err under the key "error". A nil error yields an empty Attr,
// which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// ClientIP records the caller address under "client_ip".
func ClientIP(ip string) slog.Attr {
	if ip == "" {
		return slog.Attr{}
	}
	return slog.String("client_ip", ip)
}

// Component records the emitting component under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// FormType records a submission form type under "form_type".
func FormType(formType string) slog.Attr {
	return slog.String("form_type", formType)
}

// Category records a submission store category under "category".
func Category(category string) slog.Attr {
	return slog.String("category", category)
}

// SubmissionID records a stored submission id under "submission_id".
func SubmissionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("submission_id", id)
}

// Collection records a content collection name (events, classes, ministries).
func Collection(name string) slog.Attr {
	return slog.String("collection", name)
}

// Payload records a submission payload as a group so it can be recovered from
// logs when a delivered message could not be stored.
func Payload(fields map[string]any) slog.Attr {
	attrs := make([]slog.Attr, 0, len(fields))
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	return slog.Attr{Key: "payload", Value: slog.GroupValue(attrs...)}
}

// Duration records elapsed time in milliseconds under "duration_ms".
func Duration(d time.Duration) slog.Attr {
	return slog.Int64("duration_ms", d.Milliseconds())
}
