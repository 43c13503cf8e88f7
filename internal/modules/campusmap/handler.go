// Package campusmap exposes the map location and walking-route endpoints
// backed by the campus gazetteer.
package campusmap

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smartassist/campus-assistant-go/internal/campus"
	"github.com/smartassist/campus-assistant-go/internal/logger"
	"github.com/smartassist/campus-assistant-go/internal/metrics"
)

// ModuleName identifies this module in logs.
const ModuleName = "campusmap"

// defaultMapDescription is returned when no building matches the message.
const defaultMapDescription = "Here's the TAMUCC campus map showing all major buildings."

// routeNotFoundMessage guides the user toward a parseable phrasing.
const routeNotFoundMessage = "I couldn't identify both the origin and destination buildings. " +
	"Please specify like 'directions from Library to UC' or 'how to get from NRC to Wellness Center'."

// Handler serves the map and routing endpoints.
type Handler struct {
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewHandler wires the campus map handler. log and m may be nil.
func NewHandler(log *logger.Logger, m *metrics.Metrics) *Handler {
	if log == nil {
		log = logger.New("info")
	}
	return &Handler{
		log:     log.WithModule(ModuleName),
		metrics: m,
	}
}

// RegisterRoutes mounts the map endpoints on r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/analyze_map_request", h.handleMapRequest)
	r.POST("/api/analyze_routing_request", h.handleRoutingRequest)
	r.GET("/api/buildings", h.handleListBuildings)
}

type mapRequest struct {
	Message string `json:"message"`
}

func (h *Handler) handleMapRequest(c *gin.Context) {
	var req mapRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	building := campus.Locate(req.Message)
	h.metrics.RecordMapLookup(building != nil)

	if building == nil {
		c.JSON(http.StatusOK, gin.H{
			"location":    nil,
			"description": defaultMapDescription,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"location": building,
		"description": fmt.Sprintf("📍 Here's the location of the **%s**. %s.",
			building.Name, building.Description),
	})
}

func (h *Handler) handleRoutingRequest(c *gin.Context) {
	var req mapRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	origin, destination, found := campus.ResolveRoute(req.Message)
	h.metrics.RecordRouteLookup(found)

	if !found {
		c.JSON(http.StatusOK, gin.H{
			"origin":      nil,
			"destination": nil,
			"found":       false,
			"message":     routeNotFoundMessage,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"origin":      origin,
		"destination": destination,
		"found":       true,
	})
}

func (h *Handler) handleListBuildings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"buildings": campus.Buildings()})
}
