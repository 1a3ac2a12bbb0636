package emailkit

import "github.com/storybud/emailkit/pkg/emailctx"

// Config carries the environment-driven settings of the email service.
// Populate it with pkg/config:
//
//	var cfg emailkit.Config
//	if err := config.Load(&cfg); err != nil { ... }
type Config struct {
	// AppBaseURL is the web application root every generated link points at.
	AppBaseURL string `env:"APP_BASE_URL" envDefault:"https://storybud.com"`

	// TrackingBaseURL hosts open-tracking pixels. Defaults to AppBaseURL
	// when empty.
	TrackingBaseURL string `env:"EMAIL_TRACKING_BASE_URL"`

	// LogoURL is the brand image used in email headers.
	LogoURL string `env:"LOGO_URL" envDefault:"https://i.imgur.com/UHKz2jA.png"`

	// UnsubscribeSecret signs unsubscribe tokens so list removal links
	// cannot be forged for other users.
	UnsubscribeSecret string `env:"UNSUBSCRIBE_SECRET" envDefault:"dev-only-secret"`

	// TemplatesDir holds the HTML template files.
	TemplatesDir string `env:"EMAIL_TEMPLATES_DIR" envDefault:"templates"`

	// CacheTemplates toggles the template file cache. Disable in development.
	CacheTemplates bool `env:"EMAIL_TEMPLATE_CACHE" envDefault:"true"`
}

func (c Config) trackingBaseURL() string {
	if c.TrackingBaseURL != "" {
		return c.TrackingBaseURL
	}
	return c.AppBaseURL
}

func (c Config) logoURL() string {
	if c.LogoURL != "" {
		return c.LogoURL
	}
	return emailctx.DefaultLogoURL
}
