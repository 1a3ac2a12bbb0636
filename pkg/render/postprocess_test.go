package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storybud/emailkit/pkg/emailctx"
	"github.com/storybud/emailkit/pkg/render"
)

func TestPostProcess_StripsLeftoverPlaceholders(t *testing.T) {
	t.Parallel()

	e := render.New()
	got := e.PostProcess("<p>Hi {{user_name}} and {{another|filter}}</p>", emailctx.Variables{})
	assert.Equal(t, "<p>Hi  and </p>", got)
}

func TestPostProcess_TrackingPixelBeforeBodyClose(t *testing.T) {
	t.Parallel()

	e := render.New()
	vars := emailctx.Variables{"tracking_pixel_url": "https://t.storybud.com/o/abc"}

	got := e.PostProcess("<body><p>hi</p></body>", vars)
	assert.Contains(t, got, `<img src="https://t.storybud.com/o/abc"`)
	assert.Less(t, strings.Index(got, "<img"), strings.Index(got, "</body>"))
}

func TestPostProcess_TrackingPixelAppendedWithoutBody(t *testing.T) {
	t.Parallel()

	e := render.New()
	vars := emailctx.Variables{"tracking_pixel_url": "https://t.storybud.com/o/abc"}

	got := e.PostProcess("<p>hi</p>", vars)
	assert.True(t, strings.HasSuffix(got, `style="display:block;width:1px;height:1px;" />`))
}

func TestPostProcess_PreheaderAfterBodyOpen(t *testing.T) {
	t.Parallel()

	e := render.New()
	vars := emailctx.Variables{"preview_text": "Your weekly reading report is here"}

	got := e.PostProcess(`<body class="email"><p>hi</p></body>`, vars)
	assert.Contains(t, got, "Your weekly reading report is here")
	assert.Less(t, strings.Index(got, `<body class="email">`), strings.Index(got, "display:none"))
	assert.Less(t, strings.Index(got, "display:none"), strings.Index(got, "<p>hi</p>"))
}

func TestPostProcess_PreheaderSkippedWhenTemplateHasOne(t *testing.T) {
	t.Parallel()

	e := render.New()
	vars := emailctx.Variables{"preview_text": "duplicate"}

	html := `<body><div class="preheader">existing</div></body>`
	got := e.PostProcess(html, vars)
	assert.Equal(t, html, got)
}

func TestPostProcess_NoOpWithoutSignals(t *testing.T) {
	t.Parallel()

	e := render.New()
	html := "<body><p>plain</p></body>"
	assert.Equal(t, html, e.PostProcess(html, emailctx.Variables{}))
}
