package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	emailkit "github.com/storybud/emailkit"
	"github.com/storybud/emailkit/pkg/config"
	"github.com/storybud/emailkit/pkg/emailctx"
	"github.com/storybud/emailkit/pkg/fetcher"
	"github.com/storybud/emailkit/pkg/httpserver"
	"github.com/storybud/emailkit/pkg/logger"
	"github.com/storybud/emailkit/pkg/redis"
)

// appConfig gathers every environment setting the preview server reads.
type appConfig struct {
	Server httpserver.Config
	Email  emailkit.Config
	Redis  redis.Config

	Production   bool `env:"PRODUCTION_LOGS" envDefault:"false"`
	CacheEnabled bool `env:"EMAIL_CACHE_ENABLED" envDefault:"false"`
}

func main() {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		logger.New(logger.WithDevelopment("email-preview")).Error("failed to load config", logger.Error(err))
		os.Exit(1)
	}

	log := logger.New(logger.WithDevelopment("email-preview"))
	if cfg.Production {
		log = logger.New(logger.WithProduction("email-preview"))
	}

	// Template caching off so edits show up on refresh.
	cfg.Email.CacheTemplates = false

	ctx := context.Background()
	sources := fetcher.NewStaticSet()

	var probes []httpserver.Probe
	if cfg.CacheEnabled {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Error("failed to connect to redis", logger.Error(err))
			os.Exit(1)
		}
		defer client.Close()

		kv := fetcher.NewRedisKV(client)
		sources.Users = fetcher.NewCachedUserSource(sources.Users, kv, log)
		sources.Subscriptions = fetcher.NewCachedSubscriptionSource(sources.Subscriptions, kv, log)
		sources.Activity = fetcher.NewCachedActivitySource(sources.Activity, kv, log)
		probes = append(probes, redis.Healthcheck(client))
	}

	svc := emailkit.New(cfg.Email, sources, emailkit.WithLogger(log))

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", httpserver.HealthHandler(log, probes...))
	r.Get("/", listTemplates(svc))
	r.Get("/templates/{name}", previewTemplate(svc))

	srv := httpserver.New(cfg.Server, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

// listTemplates responds with the available template names as JSON.
func listTemplates(svc *emailkit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := svc.Templates()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"templates": names})
	}
}

// previewTemplate renders one template. With a userId query parameter the
// full pipeline runs against the static data set; without it the template
// renders with built-in sample variables.
func previewTemplate(svc *emailkit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		var html string
		if userID := r.URL.Query().Get("userId"); userID != "" {
			res, err := svc.Render(r.Context(), name, userID, emailkit.Options{
				ChildID: r.URL.Query().Get("childId"),
				StoryID: r.URL.Query().Get("storyId"),
			})
			if err != nil {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			html = res.HTML
		} else {
			res, err := svc.Preview(name, emailctx.Variables{})
			if err != nil {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			html = res.HTML
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
	}
}
