package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/storybud/emailkit/pkg/logger"
)

// Probe reports whether one dependency is reachable.
type Probe func(context.Context) error

// HealthHandler serves liveness and readiness checks. Without probes it
// answers 200 "ALIVE". With probes it runs each one and answers
// 200 "READY", or 500 "NOT_READY" on the first failure.
func HealthHandler(log *slog.Logger, probes ...Probe) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if len(probes) == 0 {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ALIVE"))
			return
		}

		for _, probe := range probes {
			if err := probe(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness probe failed", logger.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	}
}
