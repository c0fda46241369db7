package views

import (
	"bytes"
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/library/handler"
)

func TestTemplatesEmbedFragments(t *testing.T) {
	t.Parallel()

	for _, p := range []string{"templates/book/_fields.html", "templates/patron/_fields.html"} {
		_, err := fs.Stat(templates, p)
		assert.NoError(t, err, p)
	}
}

func TestEveryViewRenders(t *testing.T) {
	t.Parallel()

	r := MustNew()
	require.NotEmpty(t, r.views)

	for name := range r.views {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			entry, data := "layout", any(map[string]any{
				"heading":    "Heading",
				"route":      "/route",
				"dataValues": handler.Data{"id": "1"},
			})
			if name == toastView {
				entry, data = "toast", handler.ErrorToastParams{Message: "m", Type: "error"}
			}

			c, err := r.component(name, entry, data)
			require.NoError(t, err)
			var buf bytes.Buffer
			require.NoError(t, c.Render(context.Background(), &buf))
			assert.NotEmpty(t, buf.String())
		})
	}
}
