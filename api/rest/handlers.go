package rest

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/princekumar828/visualization/internal/generator"
	"github.com/princekumar828/visualization/pkg/logger"
	"github.com/princekumar828/visualization/pkg/metrics"
)

// apiInfo handles GET /
func (s *Server) apiInfo(c *fiber.Ctx) error {
	return c.JSON(APIInfoResponse{
		Name:    "Yield Visualization API",
		Version: "1.0.0",
		Endpoints: map[string]string{
			"boxplot": "/api/charts/boxplot",
			"csv":     "/api/charts/csv",
			"metrics": "/api/charts/metrics",
			"health":  "/api/health",
		},
	})
}

// healthCheck handles GET /api/health
func (s *Server) healthCheck(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "healthy",
		Service: "yield-visualization-backend",
	})
}

// parseParams reads generation parameters from the query string,
// falling back to the configured defaults for omitted values.
// Non-numeric values are rejected rather than silently defaulted.
func (s *Server) parseParams(c *fiber.Ctx) (generator.Params, error) {
	defaults := s.config.Defaults
	params := generator.Params{}

	var err error
	if params.Year, err = queryInt(c, "year", defaults.Year); err != nil {
		return generator.Params{}, err
	}
	if params.WeeksPerYear, err = queryInt(c, "weeks", defaults.WeeksPerYear); err != nil {
		return generator.Params{}, err
	}
	if params.LotsPerWeek, err = queryInt(c, "lots_per_week", defaults.LotsPerWeek); err != nil {
		return generator.Params{}, err
	}
	if params.WafersPerLot, err = queryInt(c, "wafers_per_lot", defaults.WafersPerLot); err != nil {
		return generator.Params{}, err
	}
	return params, nil
}

// queryInt parses one integer query parameter, returning the default
// when the parameter is absent.
func queryInt(c *fiber.Ctx, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid parameter %s: must be an integer, got %q", name, raw)
	}
	return n, nil
}

// invalidParameter renders a 400 for out-of-domain query parameters.
func invalidParameter(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_parameter",
		Message: err.Error(),
	})
}

// getBoxPlot handles GET /api/charts/boxplot
//
// Returns the hierarchical box-plot structure together with the server
// timing map. Per-stage timings are also exposed as response headers.
func (s *Server) getBoxPlot(c *fiber.Ctx) error {
	params, err := s.parseParams(c)
	if err != nil {
		return invalidParameter(c, err)
	}

	g, err := generator.New(params, s.store)
	if err != nil {
		return invalidParameter(c, err)
	}

	endpoint := s.store.StartTimer(OpBoxPlotEndpoint)
	data, timing, err := g.GenerateBoxPlot()
	if err != nil {
		endpoint.Stop()
		if generator.IsInvalidParameter(err) {
			return invalidParameter(c, err)
		}
		logger.Error("box plot generation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "generation_failed",
			Message: err.Error(),
		})
	}
	timing[KeyEndpointTotalMs] = endpoint.Stop()

	c.Set("X-Data-Generation-Ms", fmt.Sprintf("%.2f",
		timing[generator.OpArrayGeneration+"_ms"]+
			timing[generator.OpYieldGeneration+"_ms"]+
			timing[generator.OpRecordAssembly+"_ms"]))
	c.Set("X-Transformation-Ms", fmt.Sprintf("%.2f", timing[generator.OpBoxPlotTransform+"_ms"]))

	return c.JSON(BoxPlotResponse{
		Data:   data,
		Timing: ServerTiming{Server: timing},
	})
}

// getCSV handles GET /api/charts/csv
//
// Returns the flat dataset as a CSV attachment.
func (s *Server) getCSV(c *fiber.Ctx) error {
	params, err := s.parseParams(c)
	if err != nil {
		return invalidParameter(c, err)
	}

	g, err := generator.New(params, s.store)
	if err != nil {
		return invalidParameter(c, err)
	}

	text, timing, err := g.GenerateCSV()
	if err != nil {
		if generator.IsInvalidParameter(err) {
			return invalidParameter(c, err)
		}
		logger.Error("csv generation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "generation_failed",
			Message: err.Error(),
		})
	}

	s.store.Append(metrics.Sample{
		Operation:  OpCSVDownload,
		DurationMs: timing[generator.OpCSVSerialization+"_ms"],
		Fields: map[string]float64{
			generator.KeyTotalDataPoints: timing[generator.KeyTotalDataPoints],
			generator.KeyCSVSizeBytes:    timing[generator.KeyCSVSizeBytes],
		},
	})

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=yield_data_%d.csv", params.Year))
	c.Set("X-Data-Points", fmt.Sprintf("%.0f", timing[generator.KeyTotalDataPoints]))
	c.Set("X-Generation-Ms", fmt.Sprintf("%.2f",
		timing[generator.OpArrayGeneration+"_ms"]+
			timing[generator.OpYieldGeneration+"_ms"]+
			timing[generator.OpRecordAssembly+"_ms"]))

	return c.SendString(text)
}

// getTestConfig handles GET /api/charts/test-config
func (s *Server) getTestConfig(c *fiber.Ctx) error {
	defaults := s.config.Defaults
	return c.JSON(TestConfigResponse{
		Parameters: map[string]ParameterSpec{
			"year": {
				Type:        "integer",
				Default:     defaults.Year,
				Description: "Production year",
			},
			"weeks": {
				Type:        "integer",
				Min:         1,
				Max:         52,
				Default:     defaults.WeeksPerYear,
				Description: "Number of weeks to generate",
			},
			"lots_per_week": {
				Type:        "integer",
				Min:         1,
				Max:         100,
				Default:     defaults.LotsPerWeek,
				Description: "Number of lots per week",
			},
			"wafers_per_lot": {
				Type:        "integer",
				Min:         1,
				Max:         25,
				Default:     defaults.WafersPerLot,
				Description: "Wafers per lot",
			},
		},
		Presets: map[string]map[string]int{
			"small":  {"weeks": 4, "lots_per_week": 5, "wafers_per_lot": 10},
			"medium": {"weeks": 12, "lots_per_week": 10, "wafers_per_lot": 20},
			"large":  {"weeks": 52, "lots_per_week": 20, "wafers_per_lot": 25},
			"stress": {"weeks": 52, "lots_per_week": 100, "wafers_per_lot": 25},
		},
		DataPointsFormula: "weeks x lots_per_week x wafers_per_lot",
	})
}

// getMetrics handles GET /api/charts/metrics
//
// Returns the accumulated timing history, optionally filtered to one
// operation via ?operation=.
func (s *Server) getMetrics(c *fiber.Ctx) error {
	note := "Metrics are stored in memory and reset on server restart"

	if operation := c.Query("operation"); operation != "" {
		return c.JSON(MetricsResponse{
			Metrics: map[string][]metrics.Sample{
				operation: s.store.Get(operation),
			},
			Note: note,
		})
	}

	return c.JSON(MetricsResponse{
		Metrics: s.store.All(),
		Summary: s.store.Summarize(),
		Note:    note,
	})
}

// resetMetrics handles DELETE /api/charts/metrics
func (s *Server) resetMetrics(c *fiber.Ctx) error {
	s.store.Reset()
	return c.JSON(SuccessResponse{
		Success: true,
		Message: "Metrics cleared",
	})
}
