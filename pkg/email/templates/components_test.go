package templates_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cornerstone-church/site/pkg/email/templates"
)

func TestFieldTableInLayout(t *testing.T) {
	t.Parallel()

	html, err := templates.Render(context.Background(), templates.Layout("Contact Form: <prayer>",
		templates.FieldTable([]templates.Row{
			{Label: "Name", Value: "Jane Doe"},
			{Label: "Message", Value: "line one\nline <two>"},
		}),
	))
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Contact Form: &lt;prayer&gt;</title>")
	assert.Contains(t, html, "Jane Doe")
	assert.Contains(t, html, "line one<br>line &lt;two&gt;")
	assert.NotContains(t, html, "<two>")
	assert.True(t, len(html) > 0 && html[len(html)-7:] == "</html>")
}
