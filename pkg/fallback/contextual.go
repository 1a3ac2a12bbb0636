package fallback

import (
	"fmt"
	"strings"

	"github.com/storybud/emailkit/pkg/emailctx"
)

// ContextualFallbacks derives values that cannot live in a static table
// because they depend on other data or on the current time. The returned
// mapping only contains the derived keys; callers merge it without
// overwriting values that already exist.
func (r *Resolver) ContextualFallbacks(vars emailctx.Variables) emailctx.Variables {
	contextual := emailctx.Variables{}

	if !vars.Has("greeting") {
		contextual["greeting"] = r.greeting()
	}

	if name := vars.String("child_name"); name != "" {
		contextual["child_name_possessive"] = Possessive(name)
	}

	if vars.Has("child_age") {
		contextual["child_age_ordinal"] = Ordinal(ParseLeadingInt(vars["child_age"]))
	}

	if vars.Has("reading_level_progress") {
		progress := ParseLeadingInt(vars["reading_level_progress"])
		switch {
		case progress < 25:
			contextual["level_description"] = "just getting started"
		case progress < 50:
			contextual["level_description"] = "making great progress"
		case progress < 75:
			contextual["level_description"] = "becoming an expert"
		default:
			contextual["level_description"] = "almost at the next level"
		}
	}

	return contextual
}

func (r *Resolver) greeting() string {
	hour := r.now().Hour()
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// Possessive forms the English possessive of a name: append "'s", or a bare
// apostrophe when the name already ends in "s".
func Possessive(name string) string {
	if strings.HasSuffix(name, "s") {
		return name + "'"
	}
	return name + "'s"
}

// Ordinal renders a number with its English ordinal suffix ("1st", "2nd",
// "3rd", "11th", "22nd"). Zero has no ordinal form and passes through bare.
func Ordinal(n int) string {
	if n == 0 {
		return "0"
	}

	suffix := "th"
	if v := n % 100; v < 11 || v > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
