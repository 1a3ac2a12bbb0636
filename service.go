package emailkit

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/storybud/emailkit/pkg/async"
	"github.com/storybud/emailkit/pkg/emailctx"
	"github.com/storybud/emailkit/pkg/fallback"
	"github.com/storybud/emailkit/pkg/fetcher"
	"github.com/storybud/emailkit/pkg/logger"
	"github.com/storybud/emailkit/pkg/render"
	"github.com/storybud/emailkit/pkg/transform"
)

// Options tunes one render call.
type Options struct {
	// ChildID selects the child the email is about. Empty means the user's
	// primary child.
	ChildID string

	// StoryID attaches a specific story as the email's current story.
	StoryID string

	// CampaignName tags the generated context for campaign reporting.
	CampaignName string

	// ExcludeRecommendations skips the recommendation fetch for templates
	// that never show suggestions.
	ExcludeRecommendations bool

	// ExcludeAchievements skips the achievement fetch.
	ExcludeAchievements bool
}

// RenderMetadata describes one completed render.
type RenderMetadata struct {
	TemplateName string
	UserID       string
	RenderedAt   time.Time
	DataQuality  transform.DataQuality
}

// RenderResult is the delivery-ready output for one recipient.
type RenderResult struct {
	HTML     string
	Data     emailctx.Variables
	Metadata RenderMetadata
}

// PreviewResult is a rendered template without post-processing, for visual
// inspection during template development.
type PreviewResult struct {
	HTML string
	Data emailctx.Variables
}

// BatchItem is the outcome for a single recipient of a batch render.
type BatchItem struct {
	UserID  string
	Success bool
	Result  *RenderResult
	Err     error
}

// Service wires the fetcher boundary, transformation pipeline and render
// engine into one email generation entry point.
type Service struct {
	cfg         Config
	sources     fetcher.Set
	resolver    *fallback.Resolver
	transformer *transform.Transformer
	engine      *render.Engine
	log         *slog.Logger
	now         fallback.Clock
}

// Option configures a Service.
type Option func(*serviceOptions)

type serviceOptions struct {
	log      *slog.Logger
	now      fallback.Clock
	rnd      *rand.Rand
	registry []transform.TemplateConfig
}

// WithLogger sets the logger used across the pipeline.
func WithLogger(log *slog.Logger) Option {
	return func(o *serviceOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// WithClock overrides the time source for send dates, occasion checks and
// metadata timestamps.
func WithClock(clock fallback.Clock) Option {
	return func(o *serviceOptions) {
		if clock != nil {
			o.now = clock
		}
	}
}

// WithRand overrides the randomness source used by enrichment rules.
func WithRand(rnd *rand.Rand) Option {
	return func(o *serviceOptions) {
		if rnd != nil {
			o.rnd = rnd
		}
	}
}

// WithRegistry replaces the built-in template registry.
func WithRegistry(registry []transform.TemplateConfig) Option {
	return func(o *serviceOptions) {
		if registry != nil {
			o.registry = registry
		}
	}
}

// New creates a Service. Nil members of sources default to the deterministic
// static fetcher so previews and tests work without upstream systems.
func New(cfg Config, sources fetcher.Set, opts ...Option) *Service {
	o := serviceOptions{
		log: logger.Discard(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	static := fetcher.NewStatic()
	if sources.Users == nil {
		sources.Users = static
	}
	if sources.Subscriptions == nil {
		sources.Subscriptions = static
	}
	if sources.Activity == nil {
		sources.Activity = static
	}
	if sources.Engagement == nil {
		sources.Engagement = static
	}
	if sources.Stories == nil {
		sources.Stories = static
	}

	resolver := fallback.New(fallback.WithClock(o.now))

	trOpts := []transform.Option{
		transform.WithClock(o.now),
		transform.WithLogger(o.log),
	}
	if o.rnd != nil {
		trOpts = append(trOpts, transform.WithRand(o.rnd))
	}
	if o.registry != nil {
		trOpts = append(trOpts, transform.WithRegistry(o.registry))
	}

	return &Service{
		cfg:         cfg,
		sources:     sources,
		resolver:    resolver,
		transformer: transform.New(resolver, trOpts...),
		engine: render.New(
			render.WithTemplatesDir(cfg.TemplatesDir),
			render.WithCache(cfg.CacheTemplates),
			render.WithLogger(o.log),
		),
		log: o.log,
		now: o.now,
	}
}

// PrepareContext gathers everything known about one recipient. The user
// record is the identity anchor and its failure aborts the call; every other
// source is fetched concurrently and degrades to zero values, which the
// downstream fallback pass turns into presentable defaults.
func (s *Service) PrepareContext(ctx context.Context, templateType, userID string, opts Options) (*emailctx.Context, error) {
	user, err := s.sources.Users.UserProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUserDataUnavailable, userID, err)
	}

	childID := opts.ChildID
	if childID == "" {
		childID = user.PrimaryChildID
	}

	childF := async.Async(ctx, childID, func(ctx context.Context, id string) (emailctx.ChildProfile, error) {
		return s.sources.Users.ChildProfile(ctx, id, userID)
	})
	subF := async.Async(ctx, user.StripeCustomerID, func(ctx context.Context, id string) (emailctx.Subscription, error) {
		return s.sources.Subscriptions.Subscription(ctx, id)
	})
	activityF := async.Async(ctx, childID, func(ctx context.Context, id string) (emailctx.ReadingActivity, error) {
		return s.sources.Activity.ReadingActivity(ctx, userID, id)
	})
	engagementF := async.Async(ctx, userID, func(ctx context.Context, id string) (emailctx.EngagementMetrics, error) {
		return s.sources.Engagement.EngagementMetrics(ctx, id)
	})
	familyF := async.Async(ctx, userID, func(ctx context.Context, id string) (emailctx.FamilyData, error) {
		return s.sources.Users.FamilyData(ctx, id)
	})

	var recsF *async.Future[emailctx.Recommendations]
	if !opts.ExcludeRecommendations {
		recsF = async.Async(ctx, childID, func(ctx context.Context, id string) (emailctx.Recommendations, error) {
			return s.sources.Stories.Recommendations(ctx, id, 3)
		})
	}

	var achieveF *async.Future[emailctx.AchievementData]
	if !opts.ExcludeAchievements {
		achieveF = async.Async(ctx, childID, func(ctx context.Context, id string) (emailctx.AchievementData, error) {
			return s.sources.Activity.Achievements(ctx, userID, id)
		})
	}

	var storyF, lastStoryF *async.Future[*emailctx.StoryMetadata]
	if opts.StoryID != "" {
		storyF = async.Async(ctx, opts.StoryID, s.sources.Stories.StoryDetails)
	}
	if needsLastStory(templateType) {
		lastStoryF = async.Async(ctx, childID, s.sources.Stories.LastStory)
	}

	ec := emailctx.Context{
		User:         user,
		Child:        awaitOr(s.log, "child profile", childF),
		Subscription: awaitOr(s.log, "subscription", subF),
		Activity:     awaitOr(s.log, "reading activity", activityF),
		Engagement:   awaitOr(s.log, "engagement metrics", engagementF),
		Family:       awaitOr(s.log, "family data", familyF),
		EmailType:    templateType,
		CampaignName: opts.CampaignName,
		SendDate:     s.now(),
		Links:        s.generateLinks(userID, childID, templateType),
	}
	if recsF != nil {
		ec.Recommendations = awaitOr(s.log, "recommendations", recsF)
	}
	if achieveF != nil {
		ec.Achievements = awaitOr(s.log, "achievements", achieveF)
	}
	if storyF != nil {
		ec.CurrentStory = awaitOr(s.log, "story details", storyF)
	}
	if lastStoryF != nil {
		ec.LastStory = awaitOr(s.log, "last story", lastStoryF)
	}
	ec.Occasions = checkOccasions(ec.Child, s.now())

	return emailctx.New(ec), nil
}

// Render produces delivery-ready HTML for one recipient.
func (s *Service) Render(ctx context.Context, templateName, userID string, opts Options) (*RenderResult, error) {
	ec, err := s.PrepareContext(ctx, templateName, userID, opts)
	if err != nil {
		return nil, err
	}

	vars := s.transformer.Transform(ec, templateName)
	if !vars.Has("tracking_pixel_url") {
		vars["tracking_pixel_url"] = s.trackingPixelURL()
	}

	html, err := s.engine.Render(templateName, vars)
	if err != nil {
		return nil, err
	}

	meta, _ := vars[transform.MetadataKey].(transform.Metadata)
	s.log.Info("rendered email",
		logger.Template(templateName),
		logger.UserID(userID),
		slog.String("data_quality", meta.DataQuality.Quality))

	return &RenderResult{
		HTML: html,
		Data: vars,
		Metadata: RenderMetadata{
			TemplateName: templateName,
			UserID:       userID,
			RenderedAt:   s.now(),
			DataQuality:  meta.DataQuality,
		},
	}, nil
}

// BatchRender renders one template for many recipients concurrently.
// Failures stay per-item: a bad record yields a failed BatchItem and never
// affects its neighbors.
func (s *Service) BatchRender(ctx context.Context, templateName string, userIDs []string, opts Options) ([]BatchItem, error) {
	if len(userIDs) == 0 {
		return nil, ErrNoUserIDs
	}

	futures := make([]*async.Future[*RenderResult], len(userIDs))
	for i, userID := range userIDs {
		futures[i] = async.Async(ctx, userID, func(ctx context.Context, id string) (*RenderResult, error) {
			return s.Render(ctx, templateName, id, opts)
		})
	}

	items := make([]BatchItem, len(userIDs))
	for i, settled := range async.Settle(futures...) {
		items[i] = BatchItem{
			UserID:  userIDs[i],
			Success: settled.Err == nil,
			Result:  settled.Value,
			Err:     settled.Err,
		}
	}
	return items, nil
}

// Preview renders a template with sample data and no post-processing.
// An empty sample falls back to built-in preview data for the template.
func (s *Service) Preview(templateName string, sample emailctx.Variables) (*PreviewResult, error) {
	tpl, err := s.engine.Load(templateName)
	if err != nil {
		return nil, err
	}

	data := sample
	if len(data) == 0 {
		data = SampleVariables(templateName)
	}

	return &PreviewResult{
		HTML: s.engine.RenderString(tpl, data),
		Data: data,
	}, nil
}

// Templates lists the templates available for rendering.
func (s *Service) Templates() ([]string, error) {
	return s.engine.List()
}

// needsLastStory reports whether the template family talks about the
// recipient's previous story.
func needsLastStory(templateType string) bool {
	for _, family := range []string{"story_completion", "retention", "churn_recovery"} {
		if strings.Contains(templateType, family) {
			return true
		}
	}
	return false
}

// awaitOr resolves a future, logging and zeroing failures so secondary data
// loss degrades instead of aborting the render.
func awaitOr[U any](log *slog.Logger, what string, f *async.Future[U]) U {
	value, err := f.Await()
	if err != nil {
		log.Warn("fetch failed, using defaults", slog.String("source", what), logger.Error(err))
		var zero U
		return zero
	}
	return value
}
