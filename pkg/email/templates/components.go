package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Row is a single label/value line of a FieldTable.
type Row struct {
	Label string
	Value string
}

// Layout wraps body in a minimal email document with a heading.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html><head><meta charset="utf-8"><title>`+
			templ.EscapeString(title)+`</title></head>`+
			`<body style="font-family:Arial,Helvetica,sans-serif;color:#1f2933;">`+
			`<h2 style="margin:0 0 16px;">`+templ.EscapeString(title)+`</h2>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// FieldTable renders rows as a two-column table. Multi-line values keep
// their line breaks.
func FieldTable(rows []Row) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString(`<table cellpadding="6" style="border-collapse:collapse;">`)
		for _, r := range rows {
			sb.WriteString(`<tr><th align="left" valign="top" style="padding-right:16px;">`)
			sb.WriteString(templ.EscapeString(r.Label))
			sb.WriteString(`</th><td>`)
			sb.WriteString(strings.ReplaceAll(templ.EscapeString(r.Value), "\n", "<br>"))
			sb.WriteString(`</td></tr>`)
		}
		sb.WriteString(`</table>`)
		_, err := io.WriteString(w, sb.String())
		return err
	})
}
