package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"surveyapi/internal/config"
	"surveyapi/internal/http/middleware"
	"surveyapi/internal/service"
)

// Services groups the use cases the HTTP layer exposes.
type Services struct {
	Surveys   service.SurveyService
	Responses service.ResponseService
	Segments  service.SegmentService
	Uploads   service.UploadService
}

// RouteOptions carries the cross-cutting pieces of the route tree.
type RouteOptions struct {
	Auth config.AuthConfig
	// RateLimiter throttles the client API. Nil disables throttling.
	RateLimiter *middleware.RateLimiter
	// Metrics is served on /metrics. Nil disables the endpoint.
	Metrics prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
//
// The client API is public and called from embedded surveys on any origin, so it gets CORS
// and rate limiting. The management API requires a bearer token.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services, opts RouteOptions) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	if opts.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Metrics, promhttp.HandlerOpts{})))
	}

	client := app.Group("/api/v2/client/:environmentId", cors.New())
	if opts.RateLimiter != nil {
		client.Use(opts.RateLimiter.Handler())
	}
	client.Post("/responses", CreateResponse(svcs.Responses))
	client.Post("/storage", UploadFile(svcs.Uploads))
	client.Get("/storage/:surveyId/:fileName", DownloadFile(svcs.Uploads))

	mgmt := app.Group("/api/v1/management", middleware.JWTAuth(opts.Auth))
	mgmt.Get("/environments/:environmentId/surveys", ListSurveys(svcs.Surveys))
	mgmt.Get("/environments/:environmentId/surveys/count", CountSurveys(svcs.Surveys))
	mgmt.Get("/environments/:environmentId/segments", ListSegments(svcs.Segments))
	mgmt.Get("/surveys/:surveyId", GetSurvey(svcs.Surveys))
	mgmt.Delete("/surveys/:surveyId", DeleteSurvey(svcs.Surveys))
	mgmt.Post("/surveys/:surveyId/copy", CopySurvey(svcs.Surveys))
	mgmt.Get("/surveys/:surveyId/single-use-links", GenerateSingleUseLinks(svcs.Surveys))
	mgmt.Put("/surveys/:surveyId/segment", LoadSegment(svcs.Segments))
}
