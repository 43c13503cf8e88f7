// Package ticket exposes the support-ticket field extraction endpoint.
package ticket

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/smartassist/campus-assistant-go/internal/errors"
	"github.com/smartassist/campus-assistant-go/internal/logger"
	"github.com/smartassist/campus-assistant-go/internal/ticket"
)

// ModuleName identifies this module in logs.
const ModuleName = "ticket"

// Handler serves the ticket analysis endpoint.
type Handler struct {
	analyzer *ticket.Analyzer
	log      *logger.Logger
}

// NewHandler wires the ticket handler. log may be nil.
func NewHandler(analyzer *ticket.Analyzer, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.New("info")
	}
	return &Handler{
		analyzer: analyzer,
		log:      log.WithModule(ModuleName),
	}
}

// RegisterRoutes mounts the ticket endpoint on r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/analyze_ticket", h.handleAnalyze)
}

type analyzeRequest struct {
	Message string `json:"message"`
}

// handleAnalyze extracts ticket fields from the message. Extraction never
// fails: malformed model output and provider errors both degrade to the
// defaults draft, so the only client error is a missing message.
func (h *Handler) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrEmptyMessage.Error()})
		return
	}

	draft := h.analyzer.Analyze(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, draft)
}
