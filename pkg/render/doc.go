// Package render is the placeholder substitution engine for email HTML.
//
// Templates are plain HTML files carrying {{variable}} placeholders.
// An expression is a dotted value path followed by an optional filter chain:
//
//	{{child_name|possessive}} first {{monthly_summary.Stories|lowercase}}
//	{{story_title|default:"Your Adventure"|truncate:40}}
//
// Lookup over the variable map is null-safe: a missing segment resolves to
// nil and renders as the empty string. Rendering never fails on bad data;
// the only hard error the engine produces is a missing template file.
//
// PostProcess strips any placeholder that survived substitution, appends an
// open-tracking pixel and injects hidden preheader text, so rendered output
// is safe to hand to a delivery provider as-is.
package render
