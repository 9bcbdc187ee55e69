package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-interactive-raytracer/pkg/material"
	"github.com/df07/go-interactive-raytracer/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	Primitive    string                 `json:"primitive,omitempty"` // e.g. "scene#3" or "puppet#0"
	MaterialType string                 `json:"materialType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Textured     bool                   `json:"textured"`
	Bumped       bool                   `json:"bumped"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// inspectTimeout bounds how long a request waits for the render goroutine
const inspectTimeout = 5 * time.Second

// handleInspect reports what the camera sees through a pixel. The lookup
// runs on the render goroutine between frames.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	config := s.renderer.Config()
	x, err := parseIntParam(r.URL.Query(), "x", 0, config.Width-1)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	y, err := parseIntParam(r.URL.Query(), "y", 0, config.Height-1)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := make(chan InspectResponse, 1)
	task := func(rend *renderer.Renderer) {
		pick, ok := rend.Pick(x, y)
		if !ok {
			result <- InspectResponse{}
			return
		}
		materialType, properties := extractMaterialInfo(pick.Surface.Material)
		result <- InspectResponse{
			Hit:          true,
			Primitive:    pick.Ref.String(),
			MaterialType: materialType,
			Point:        vecToArray(pick.Point),
			Normal:       vecToArray(pick.Normal),
			Distance:     pick.Distance,
			Textured:     pick.Surface.Texture != nil,
			Bumped:       pick.Surface.Bump != nil,
			Properties:   properties,
		}
	}

	select {
	case s.tasks <- task:
	default:
		writeJSONError(w, http.StatusServiceUnavailable, "too many pending requests")
		return
	}

	select {
	case response := <-result:
		writeJSON(w, http.StatusOK, response)
	case <-r.Context().Done():
	case <-time.After(inspectTimeout):
		writeJSONError(w, http.StatusServiceUnavailable, "renderer is not running")
	}
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = vecToArray(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecToArray(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Glossy:
		properties["albedo"] = vecToArray(m.Albedo)
		properties["exponent"] = m.Exponent
		return "glossy", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		return "dielectric", properties

	case *material.Emissive:
		properties["emission"] = vecToArray(m.Color)
		return "emissive", properties

	case *material.Glowing:
		baseType, baseProperties := extractMaterialInfo(m.Base)
		properties["emission"] = vecToArray(m.Color)
		properties["base"] = map[string]interface{}{"type": baseType, "properties": baseProperties}
		return "glowing", properties

	case *material.Mix:
		type1, properties1 := extractMaterialInfo(m.Material1)
		type2, properties2 := extractMaterialInfo(m.Material2)
		properties["ratio"] = m.Ratio
		properties["material1"] = map[string]interface{}{"type": type1, "properties": properties1}
		properties["material2"] = map[string]interface{}{"type": type2, "properties": properties2}
		return "mix", properties

	case *material.Layered:
		outerType, outerProperties := extractMaterialInfo(m.Outer)
		innerType, innerProperties := extractMaterialInfo(m.Inner)
		properties["outer"] = map[string]interface{}{"type": outerType, "properties": outerProperties}
		properties["inner"] = map[string]interface{}{"type": innerType, "properties": innerProperties}
		return "layered", properties

	default:
		return fmt.Sprintf("%T", mat), properties
	}
}

// parseIntParam parses a required integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, min, max int) (int, error) {
	value := values.Get(key)
	if value == "" {
		return 0, fmt.Errorf("missing %s", key)
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, value)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
	}
	return parsed, nil
}
