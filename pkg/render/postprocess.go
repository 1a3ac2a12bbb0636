package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/storybud/emailkit/pkg/emailctx"
)

var bodyOpenRe = regexp.MustCompile(`<body[^>]*>`)

// PostProcess finalizes rendered HTML for delivery: strips placeholders that
// survived substitution, appends the open-tracking pixel when
// tracking_pixel_url is set, and injects hidden preheader text when
// preview_text is set and the template carries no preheader of its own.
func (e *Engine) PostProcess(html string, vars emailctx.Variables) string {
	html = e.cleanupRe.ReplaceAllString(html, "")

	if pixel := vars.String("tracking_pixel_url"); pixel != "" {
		html = addTrackingPixel(html, pixel)
	}

	if preview := vars.String("preview_text"); preview != "" && !strings.Contains(html, "preheader") {
		html = addPreviewText(html, preview)
	}

	return html
}

func addTrackingPixel(html, pixelURL string) string {
	pixel := fmt.Sprintf(
		`<img src=%q width="1" height="1" alt="" style="display:block;width:1px;height:1px;" />`,
		pixelURL)

	if strings.Contains(html, "</body>") {
		return strings.Replace(html, "</body>", pixel+"</body>", 1)
	}
	return html + pixel
}

func addPreviewText(html, previewText string) string {
	preheader := `<div style="display:none;font-size:1px;line-height:1px;max-height:0px;max-width:0px;opacity:0;overflow:hidden;mso-hide:all;font-family:sans-serif;">` +
		previewText + `</div>`

	if loc := bodyOpenRe.FindStringIndex(html); loc != nil {
		return html[:loc[1]] + preheader + html[loc[1]:]
	}
	return preheader + html
}
