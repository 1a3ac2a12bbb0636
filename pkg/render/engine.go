package render

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/storybud/emailkit/pkg/cache"
	"github.com/storybud/emailkit/pkg/emailctx"
	"github.com/storybud/emailkit/pkg/logger"
)

const templateCacheSize = 64

// Engine loads template files and substitutes placeholder expressions.
type Engine struct {
	dir          string
	open         string
	close        string
	cacheEnabled bool
	cache        *cache.LRU[string, string]
	log          *slog.Logger

	varRe     *regexp.Regexp
	cleanupRe *regexp.Regexp
}

// Option configures an Engine.
type Option func(*Engine)

// WithTemplatesDir sets the directory relative template names resolve
// against. Defaults to "templates".
func WithTemplatesDir(dir string) Option {
	return func(e *Engine) {
		if dir != "" {
			e.dir = dir
		}
	}
}

// WithDelimiters overrides the placeholder delimiters. Defaults to "{{"
// and "}}".
func WithDelimiters(open, close string) Option {
	return func(e *Engine) {
		if open != "" && close != "" {
			e.open = open
			e.close = close
		}
	}
}

// WithCache toggles the template file cache. Enabled by default; disable it
// in development so template edits show up without a restart.
func WithCache(enabled bool) Option {
	return func(e *Engine) {
		e.cacheEnabled = enabled
	}
}

// WithLogger sets the logger for load and render diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		dir:          "templates",
		open:         "{{",
		close:        "}}",
		cacheEnabled: true,
		cache:        cache.NewLRU[string, string](templateCacheSize),
		log:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}

	// The expression body may contain anything except the closing delimiter
	// characters, mirroring how lenient the placeholder grammar is.
	open, close := regexp.QuoteMeta(e.open), regexp.QuoteMeta(e.close)
	e.varRe = regexp.MustCompile(open + "([^" + close + "]+)" + close)
	e.cleanupRe = regexp.MustCompile(open + "[^" + close + "]+" + close)

	return e
}

// Load reads a template by name. Names without an extension get ".html"
// appended; absolute paths are honored as-is, everything else resolves
// against the templates directory.
func (e *Engine) Load(name string) (string, error) {
	path := e.resolvePath(name)

	if e.cacheEnabled {
		if tpl, ok := e.cache.Get(path); ok {
			return tpl, nil
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		e.log.Error("failed to load template", slog.String("template", name), logger.Error(err))
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	tpl := string(raw)
	if e.cacheEnabled {
		e.cache.Put(path, tpl)
	}
	return tpl, nil
}

// RenderString substitutes every placeholder expression in tpl. Unresolvable
// values render as the empty string; rendering itself never fails.
func (e *Engine) RenderString(tpl string, vars emailctx.Variables) string {
	return e.varRe.ReplaceAllStringFunc(tpl, func(match string) string {
		expr := strings.TrimSpace(match[len(e.open) : len(match)-len(e.close)])
		return stringify(e.evaluate(expr, vars))
	})
}

// Render loads a template, substitutes variables and post-processes the
// result.
func (e *Engine) Render(name string, vars emailctx.Variables) (string, error) {
	tpl, err := e.Load(name)
	if err != nil {
		return "", err
	}
	return e.PostProcess(e.RenderString(tpl, vars), vars), nil
}

// List returns the template names available in the templates directory.
func (e *Engine) List() ([]string, error) {
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".html"))
	}
	return names, nil
}

// ClearCache drops all cached template files.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

func (e *Engine) resolvePath(name string) string {
	if filepath.Ext(name) == "" {
		name += ".html"
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(e.dir, name)
}

// evaluate resolves one placeholder expression: a dotted value path followed
// by zero or more filters separated by pipes.
func (e *Engine) evaluate(expr string, vars emailctx.Variables) any {
	parts := strings.Split(expr, "|")
	value := lookup(vars, strings.TrimSpace(parts[0]))

	for _, f := range parts[1:] {
		value = applyFilter(value, strings.TrimSpace(f))
	}
	return value
}
