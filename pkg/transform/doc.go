// Package transform prepares a flattened email context for rendering.
//
// The Transformer runs a strictly ordered pipeline for a template type:
// flatten the context, apply fallback resolution, merge contextual derived
// values, run the template family's enrichment rules, format every value by
// naming convention, and attach generation metadata including a data quality
// score.
//
// Template families live in an ordered registry. A template type is matched
// to the first registry entry whose name it contains, so "trial_welcome_v2"
// picks up the trial_welcome configuration. The registry ships with built-in
// defaults and can be replaced wholesale or loaded from a YAML file.
//
// Enrichment rules are referenced by name so registry files can recombine
// them. Rules only add derived keys; they never remove caller data.
package transform
