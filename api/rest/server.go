// Package rest provides the REST API server for the yield data
// visualization backend.
package rest

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"github.com/princekumar828/visualization/internal/generator"
	"github.com/princekumar828/visualization/pkg/metrics"
)

// OpRequestComplete is recorded by the timing middleware for every
// request; OpBoxPlotEndpoint wraps the whole box-plot pipeline call.
const (
	OpRequestComplete  = "request_complete"
	OpBoxPlotEndpoint  = "boxplot_endpoint"
	OpCSVDownload      = "csv_download"
	KeyEndpointTotalMs = "endpoint_total_ms"
)

// Server represents the REST API server. The metrics store is injected
// at construction and shared by the timing middleware and the pipeline.
type Server struct {
	app    *fiber.App
	store  *metrics.Store
	config *Config
}

// Config holds the configuration for the REST API server.
type Config struct {
	// Address is the address to listen on (e.g., ":8080").
	Address string

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration

	// EnableCORS enables Cross-Origin Resource Sharing.
	EnableCORS bool

	// Defaults are the generation parameters used when a request omits
	// the corresponding query parameter.
	Defaults generator.Params
}

// DefaultConfig returns a default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Address:      ":8080",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		EnableCORS:   true,
		Defaults:     generator.DefaultParams(),
	}
}

// NewServer creates a new REST API server around an injected metrics
// store.
func NewServer(store *metrics.Store, config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		ErrorHandler: customErrorHandler,
		AppName:      "Yield Visualization API",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
	})

	server := &Server{
		app:    app,
		store:  store,
		config: config,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the server.
func (s *Server) setupMiddleware() {
	s.app.Use(fiberrecover.New(fiberrecover.Config{
		EnableStackTrace: true,
	}))

	s.app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	if s.config.EnableCORS {
		s.app.Use(cors.New(cors.Config{
			AllowOrigins: "*",
			AllowMethods: "GET,DELETE,OPTIONS",
			AllowHeaders: "Origin,Content-Type,Accept",
			ExposeHeaders: "X-Server-Timing,X-Data-Generation-Ms,X-Transformation-Ms," +
				"X-Data-Points,X-Generation-Ms",
			MaxAge: 86400,
		}))
	}

	s.app.Use(s.timingMiddleware())
}

// timingMiddleware records wall time for every request into the metrics
// store and attaches an X-Server-Timing header to the response.
func (s *Server) timingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := uuid.NewString()
		c.Locals("request_id", requestID)

		err := c.Next()

		totalMs := float64(time.Since(start)) / float64(time.Millisecond)
		c.Set("X-Server-Timing", fmt.Sprintf("total;dur=%.2f", totalMs))

		s.store.Append(metrics.Sample{
			Operation:  OpRequestComplete,
			DurationMs: totalMs,
			Tags: map[string]string{
				"request_id": requestID,
				"method":     c.Method(),
				"path":       c.Path(),
			},
		})
		return err
	}
}

// setupRoutes configures the API routes.
func (s *Server) setupRoutes() {
	s.app.Get("/", s.apiInfo)
	s.app.Get("/api/health", s.healthCheck)

	charts := s.app.Group("/api/charts")
	charts.Get("/boxplot", s.getBoxPlot)
	charts.Get("/csv", s.getCSV)
	charts.Get("/test-config", s.getTestConfig)
	charts.Get("/metrics", s.getMetrics)
	charts.Delete("/metrics", s.resetMetrics)
}

// Start starts the REST API server.
func (s *Server) Start() error {
	return s.app.Listen(s.config.Address)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// ShutdownWithTimeout gracefully shuts down the server with a timeout.
func (s *Server) ShutdownWithTimeout(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

// App returns the underlying Fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// customErrorHandler handles errors returned by handlers.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   fmt.Sprintf("error_%d", code),
		Message: message,
	})
}
