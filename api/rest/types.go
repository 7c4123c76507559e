package rest

import (
	"github.com/princekumar828/visualization/internal/generator"
	"github.com/princekumar828/visualization/pkg/metrics"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SuccessResponse represents a generic success response.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// APIInfoResponse represents the root endpoint response.
type APIInfoResponse struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// ServerTiming nests the per-stage timing map under "server" so the
// envelope can grow client-side timing later.
type ServerTiming struct {
	Server map[string]float64 `json:"server"`
}

// BoxPlotResponse wraps the hierarchical data with its timing envelope.
type BoxPlotResponse struct {
	Data   *generator.BoxPlotData `json:"data"`
	Timing ServerTiming           `json:"timing"`
}

// MetricsResponse carries the accumulated timing history and the
// per-operation summaries.
type MetricsResponse struct {
	Metrics map[string][]metrics.Sample `json:"metrics"`
	Summary map[string]*metrics.Summary `json:"summary,omitempty"`
	Note    string                      `json:"note"`
}

// ParameterSpec describes one query parameter of the chart endpoints.
type ParameterSpec struct {
	Type        string `json:"type"`
	Min         int    `json:"min,omitempty"`
	Max         int    `json:"max,omitempty"`
	Default     int    `json:"default"`
	Description string `json:"description"`
}

// TestConfigResponse lists the available test configurations.
type TestConfigResponse struct {
	Parameters        map[string]ParameterSpec  `json:"parameters"`
	Presets           map[string]map[string]int `json:"presets"`
	DataPointsFormula string                    `json:"data_points_formula"`
}
