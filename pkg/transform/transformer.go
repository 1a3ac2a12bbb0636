package transform

import (
	"log/slog"
	"math/rand"
	"reflect"
	"sync"
	"time"

	"github.com/storybud/emailkit/pkg/emailctx"
	"github.com/storybud/emailkit/pkg/fallback"
	"github.com/storybud/emailkit/pkg/logger"
)

// DataQuality scores how much of the final variable set came from real data
// versus fallback defaults. Score starts at 100 and loses 2 points per key
// whose value equals its global fallback, floored at 0.
type DataQuality struct {
	Score         int
	FallbackCount int
	Quality       string // "high" (>80), "medium" (>60) or "low"
}

// Metadata describes one transformation run. It travels with the variables
// under the "_metadata" key; underscore-prefixed keys are excluded from
// quality scoring and fallback resolution.
type Metadata struct {
	TemplateType string
	GeneratedAt  time.Time
	DataQuality  DataQuality
}

// MetadataKey is the variable key Transform stores its Metadata under.
const MetadataKey = "_metadata"

// Transformer prepares context data for a specific template family.
type Transformer struct {
	resolver *fallback.Resolver
	registry []TemplateConfig
	log      *slog.Logger
	now      fallback.Clock

	mu  sync.Mutex
	rnd *rand.Rand
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithClock overrides the time source used for metadata timestamps and
// offer expiry dates.
func WithClock(clock fallback.Clock) Option {
	return func(t *Transformer) {
		if clock != nil {
			t.now = clock
		}
	}
}

// WithRand overrides the randomness source used by rules that pick from
// message pools. Seed it for reproducible output.
func WithRand(rnd *rand.Rand) Option {
	return func(t *Transformer) {
		if rnd != nil {
			t.rnd = rnd
		}
	}
}

// WithLogger sets the logger used for validation findings.
func WithLogger(log *slog.Logger) Option {
	return func(t *Transformer) {
		if log != nil {
			t.log = log
		}
	}
}

// WithRegistry replaces the built-in template registry.
func WithRegistry(registry []TemplateConfig) Option {
	return func(t *Transformer) {
		if registry != nil {
			t.registry = registry
		}
	}
}

// New creates a Transformer backed by the given fallback resolver.
// Panics if resolver is nil.
func New(resolver *fallback.Resolver, opts ...Option) *Transformer {
	if resolver == nil {
		panic("transform: resolver is required")
	}

	t := &Transformer{
		resolver: resolver,
		registry: DefaultRegistry(),
		log:      logger.Discard(),
		now:      time.Now,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transform produces the final variable set for templateType. The pipeline
// order is fixed: flatten, fallback resolution, contextual derivation,
// template rule enrichment, display formatting, metadata. Validation findings
// are logged but never abort the run; a degraded email beats no email.
func (t *Transformer) Transform(ctx *emailctx.Context, templateType string) emailctx.Variables {
	vars := ctx.Flatten()
	vars = t.resolver.Apply(vars, templateType)

	for k, v := range t.resolver.ContextualFallbacks(vars) {
		if !vars.Has(k) {
			vars[k] = v
		}
	}

	if cfg := findConfig(t.registry, templateType); cfg != nil {
		result := t.resolver.ValidateEmailData(vars, cfg.Required)
		for _, msg := range result.Errors {
			t.log.Error("template validation error",
				slog.String("template_type", templateType), slog.String("detail", msg))
		}
		for _, msg := range result.Warnings {
			t.log.Warn("template validation warning",
				slog.String("template_type", templateType), slog.String("detail", msg))
		}

		for _, name := range cfg.Rules {
			fn, ok := ruleFuncs[name]
			if !ok {
				t.log.Warn("skipping unknown enrichment rule",
					slog.String("template_type", templateType), slog.String("rule", name))
				continue
			}
			fn(t, vars, ctx)
		}
	}

	for k, v := range vars {
		vars[k] = t.resolver.FormatValue(k, v)
	}

	vars[MetadataKey] = Metadata{
		TemplateType: templateType,
		GeneratedAt:  t.now(),
		DataQuality:  t.assessDataQuality(vars),
	}

	return vars
}

// Config returns the registry entry matched by templateType, or nil.
func (t *Transformer) Config(templateType string) *TemplateConfig {
	return findConfig(t.registry, templateType)
}

// assessDataQuality counts keys still carrying their global fallback value.
// Comparison is strict on type and value so a real zero is never mistaken
// for the string default it would have fallen back to.
func (t *Transformer) assessDataQuality(vars emailctx.Variables) DataQuality {
	score := 100
	count := 0

	for k, v := range vars {
		if len(k) > 0 && k[0] == '_' {
			continue
		}
		if reflect.DeepEqual(v, t.resolver.Fallback(k, "")) {
			count++
			score -= 2
		}
	}

	quality := "low"
	switch {
	case score > 80:
		quality = "high"
	case score > 60:
		quality = "medium"
	}

	floored := score
	if floored < 0 {
		floored = 0
	}

	return DataQuality{Score: floored, FallbackCount: count, Quality: quality}
}

func (t *Transformer) intn(n int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rnd.Intn(n)
}

func (t *Transformer) perm(n int) []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rnd.Perm(n)
}
