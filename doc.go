// Package emailkit assembles, transforms and renders personalized email HTML
// for StoryBud, a children's storytelling app.
//
// The Service is the single entry point. For one recipient it gathers data
// from the configured fetcher sources into an emailctx.Context, runs the
// template transformation pipeline (fallbacks, contextual values, template
// family enrichment, display formatting) and substitutes the result into an
// HTML template:
//
//	svc := emailkit.New(cfg, fetcher.NewStaticSet())
//	res, err := svc.Render(ctx, "trial_welcome", userID, emailkit.Options{})
//
// Rendering is resilient by design: any missing or failed secondary data
// source degrades to documented fallback values, and the only hard failures
// are an unknown template file and an unavailable primary user record.
// BatchRender isolates per-recipient failures so one bad record never blocks
// a campaign.
//
// The pipeline stages live in their own packages (emailctx, fallback,
// transform, render, fetcher) and are usable on their own; emailkit wires
// them together.
package emailkit
