package api

import (
	"encoding/json"
	"net/http"

	_ "github.com/blaisecz/sleep-monitor/docs"
	"github.com/blaisecz/sleep-monitor/internal/api/handler"
	"github.com/blaisecz/sleep-monitor/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	reportHandler   *handler.ReportHandler
	responseHandler *handler.ResponseHandler
	insightsHandler *handler.InsightsHandler
}

func NewRouter(reportHandler *handler.ReportHandler, responseHandler *handler.ResponseHandler, insightsHandler *handler.InsightsHandler) *Router {
	return &Router{
		reportHandler:   reportHandler,
		responseHandler: responseHandler,
		insightsHandler: insightsHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Tracing)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// Dashboard-compatible report routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/status", rt.reportHandler.Status)
		r.Get("/subjects", rt.reportHandler.Subjects)
		r.Get("/subject/{subjectId}", rt.reportHandler.Subject)
		r.Get("/latest", rt.reportHandler.Latest)
		r.Post("/refresh", rt.reportHandler.Refresh)
	})

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Route("/subjects/{subjectId}", func(r chi.Router) {
			r.Get("/records", rt.reportHandler.Records)

			r.Route("/sessions/{sessionKey}/response", func(r chi.Router) {
				r.Get("/", rt.responseHandler.Get)
				r.Put("/", rt.responseHandler.Upsert)
			})
		})

		r.Get("/insights", rt.insightsHandler.Generate)
	})

	return r
}
