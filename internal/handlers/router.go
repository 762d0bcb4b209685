package handlers

import (
	"net/http"

	"insurancefinder/internal/linkcheck"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires every page and API route. Middleware that wraps the whole
// server (recovery, request IDs, gzip, rate limiting) is applied by the caller.
func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.NotFound(NotFoundHandler)
	r.MethodNotAllowed(MethodNotAllowedHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/plan-pdf", PlanPDFHandler)
		r.Get("/score", ScoreAPIHandler)
		r.Get("/states", StatesAPIHandler)
		r.Get("/states/{code}", StateAPIHandler)
		r.Get("/companies", CompaniesAPIHandler)
		r.Get("/encode-plan", EncodePlanHandler)
		r.Get("/decode-plan", DecodePlanHandler)
		r.Get("/health", HealthHandler)
		r.Get("/stats", StatsHandler)
		r.Get("/admin/links", linkcheck.AdminLinksHandler)
	})

	// Pages
	r.Get("/", CompareHandler)
	r.Get("/compare", CompareHandler)
	r.Get("/states", StatesIndexHandler)
	r.Get("/states/{code}", StatePageHandler)
	r.Get("/cheap-car-insurance", CheapIndexHandler)
	r.Get("/cheap-car-insurance/{code}", CheapStateHandler)
	r.Get("/best-car-insurance", BestHandler)
	r.Get("/{page:[a-z0-9-]+-car-insurance}", StateLandingHandler)
	r.Get("/blog", BlogListHandler)
	r.Get("/blog/{slug}", BlogPostHandler)
	r.Get("/out/{id}", OutHandler)

	// SEO
	r.Get("/sitemap.xml", SitemapHandler)
	r.Get("/robots.txt", RobotsTxtHandler)

	return r
}
