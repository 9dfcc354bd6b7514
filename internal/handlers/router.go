package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"geodata-service/internal/metrics"
	"geodata-service/internal/services"
)

// Services bundles what the routes need.
type Services struct {
	Auth       *services.AuthService
	Layers     *services.LayerService
	Facilities *services.FacilityService
	Metrics    *metrics.Metrics
	Gatherer   prometheus.Gatherer
}

// Register mounts every route on app.
func Register(app *fiber.App, s Services) {
	app.Use(RequestLogger(s.Metrics))

	if s.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	api.Get("/swagger/*", swagger.HandlerDefault)

	requireAuth := RequireAuth(s.Auth)

	ah := NewAuthHandler(s.Auth)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", ah.Login)
	authGroup.Post("/refresh", ah.Refresh)
	authGroup.Post("/logout", requireAuth, ah.Logout)
	authGroup.Get("/me", requireAuth, ah.Me)

	lh := NewLayerHandler(s.Layers)
	layers := api.Group("/shapefiles", requireAuth, RequireStaff())
	layers.Get("/", lh.ListLayers)
	layers.Post("/", lh.CreateLayer)
	layers.Get("/active", lh.ActiveLayers)
	layers.Post("/upload-complete", lh.UploadComplete)
	layers.Post("/upload-archive", lh.UploadArchive)
	layers.Get("/:id", lh.GetLayer)
	layers.Patch("/:id", lh.PatchLayer)
	layers.Put("/:id", lh.PutLayer)
	layers.Delete("/:id", lh.DeleteLayer)
	layers.Get("/:id/metadata", lh.GetMetadata)
	layers.Post("/:id/toggle-active", lh.ToggleActive)
	layers.Get("/:id/geojson", lh.GetGeoJSON)
	layers.Get("/:id/download/:component", lh.DownloadComponent)

	fh := NewFacilityHandler(s.Facilities)
	facilities := api.Group("/facilities")
	facilities.Get("/", fh.ListFacilities)
	facilities.Get("/nearby", fh.Nearby)
	facilities.Get("/geojson", fh.GeoJSON)
	facilities.Get("/districts", fh.Districts)
	facilities.Get("/amenities", fh.Amenities)
	facilities.Get("/stats", fh.Stats)
	facilities.Get("/:id", fh.GetFacility)
	facilities.Get("/:id/directions", fh.Directions)
}
