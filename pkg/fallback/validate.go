package fallback

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/storybud/emailkit/pkg/emailctx"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// linkFields are the URL-carrying variables checked during validation.
var linkFields = []string{"story_link", "create_story_link", "browse_stories_link"}

// ValidationResult reports the outcome of email data validation. Warnings
// never fail validation; Valid is true iff there are zero errors. By
// contract neither errors nor warnings block rendering: callers wanting hard
// enforcement must check the result themselves.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// ValidateEmailData checks a resolved variable mapping. A missing required
// field is a warning (rendering proceeds on fallbacks); a malformed email
// address or URL is an error.
func (r *Resolver) ValidateEmailData(vars emailctx.Variables, requiredFields []string) ValidationResult {
	var errs, warnings []string

	for _, field := range requiredFields {
		if IsInvalid(vars[field]) {
			warnings = append(warnings, fmt.Sprintf(
				"Missing required field: %s (using fallback: %v)", field, r.Fallback(field, "")))
		}
	}

	if email := vars.String("user_email"); email != "" && !emailRegex.MatchString(email) {
		errs = append(errs, fmt.Sprintf("Invalid email format: %s", email))
	}

	for _, field := range linkFields {
		if link := vars.String(field); link != "" && link != "#" && !isValidURL(link) {
			errs = append(errs, fmt.Sprintf("Invalid URL format for %s: %s", field, link))
		}
	}

	return ValidationResult{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

// isValidURL requires an absolute URL: a parseable value carrying a scheme.
func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != ""
}
