// Package emailctx defines the email context aggregate and its projection
// into flat template variables.
//
// A Context collects everything known about a recipient at send time: user
// and child profiles, subscription state, reading activity, current and last
// story, achievements, engagement metrics, recommendations, and family data,
// plus per-email metadata (template type, campaign, send date), the
// navigation link set, and special-occasion flags.
//
// Every sub-aggregate field has a documented default; New normalizes partial
// input so a Context never contains an undefined leaf. CurrentStory and
// LastStory are the only optional aggregates and Flatten navigates them
// null-safely.
//
// Flatten is the single, total projection from a Context to Variables: the
// same context always produces the same mapping, and every declared key is
// present even when its value is nil. Fallback resolution happens later in
// the pipeline and is not this package's concern.
package emailctx
