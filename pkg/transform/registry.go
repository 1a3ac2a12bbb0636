package transform

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TemplateConfig describes one template family: the fields it requires and
// the enrichment rules it runs, in order.
type TemplateConfig struct {
	Name     string   `yaml:"name"`
	Required []string `yaml:"required"`
	Rules    []string `yaml:"rules"`
}

// DefaultRegistry returns the built-in template families. Order matters:
// lookup walks the slice and the first entry whose name is contained in the
// requested template type wins, so more specific names must come first.
func DefaultRegistry() []TemplateConfig {
	return []TemplateConfig{
		{
			Name:     "onboarding_welcome",
			Required: []string{"user_name", "user_email"},
			Rules:    []string{"welcome_message", "getting_started_steps"},
		},
		{
			Name:     "onboarding_firststorycreated",
			Required: []string{"user_name", "story_title", "story_link"},
			Rules:    []string{"story_details", "next_steps"},
		},
		{
			Name:     "trial_welcome",
			Required: []string{"user_name", "trial_days_remaining"},
			Rules:    []string{"trial_info", "trial_benefits"},
		},
		{
			Name:     "storytime_email",
			Required: []string{"child_name", "reading_streak"},
			Rules:    []string{"daily_challenge", "motivational_message"},
		},
		{
			Name:     "retention_weekly",
			Required: []string{"user_name", "weekly_reading_progress"},
			Rules:    []string{"weekly_stats", "progress_chart"},
		},
		{
			Name:     "retention_monthly",
			Required: []string{"user_name", "stories_completed"},
			Rules:    []string{"monthly_report", "achievements"},
		},
		{
			Name:     "birthday_story",
			Required: []string{"child_name", "child_age"},
			Rules:    []string{"birthday_message", "birthday_gift"},
		},
		{
			Name:     "churn_recovery",
			Required: []string{"user_name", "days_since_last_story"},
			Rules:    []string{"reengagement_message", "special_offer"},
		},
		{
			Name:     "story_completion",
			Required: []string{"last_story_title", "child_name"},
			Rules:    []string{"story_review", "discussion_questions", "next_story_recommendations"},
		},
	}
}

// LoadRegistry reads an ordered registry from a YAML file. Every referenced
// rule name must have an implementation.
func LoadRegistry(path string) ([]TemplateConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadRegistry, err)
	}

	var configs []TemplateConfig
	if err := yaml.Unmarshal(raw, &configs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadRegistry, err)
	}

	for _, cfg := range configs {
		for _, rule := range cfg.Rules {
			if _, ok := ruleFuncs[rule]; !ok {
				return nil, fmt.Errorf("%w: %q in template %q", ErrUnknownRule, rule, cfg.Name)
			}
		}
	}

	return configs, nil
}

func findConfig(registry []TemplateConfig, templateType string) *TemplateConfig {
	for i := range registry {
		if strings.Contains(templateType, registry[i].Name) {
			return &registry[i]
		}
	}
	return nil
}
