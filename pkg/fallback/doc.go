// Package fallback resolves default values for missing or invalid template
// variables and applies display formatting rules.
//
// The Resolver owns the authoritative table mapping every canonical variable
// name to its default, plus per-template override sets (a trial welcome and
// a churn recovery email want different defaults for the same key). Lookup
// order is template override, then global default, then empty string; lookup
// never fails.
//
// Beyond the static table the Resolver derives contextual values (time-of-day
// greeting, possessives, age ordinals), formats values by key naming
// convention (dates, USD currency, durations, grouped counts, conjunction
// lists), and validates resolved data. Validation reports rather than
// enforces: missing required fields are warnings, malformed emails and URLs
// are errors, and neither blocks a send.
package fallback
