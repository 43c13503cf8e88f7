// Package chat implements the question answering endpoints, both the
// synchronous variant and the server-sent-events stream.
package chat

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smartassist/campus-assistant-go/internal/ctxutil"
	apperrors "github.com/smartassist/campus-assistant-go/internal/errors"
	"github.com/smartassist/campus-assistant-go/internal/followup"
	"github.com/smartassist/campus-assistant-go/internal/logger"
	"github.com/smartassist/campus-assistant-go/internal/metrics"
	"github.com/smartassist/campus-assistant-go/internal/rag"
)

// ModuleName identifies this module in logs.
const ModuleName = "chat"

// Handler serves the chat endpoints.
type Handler struct {
	provider      rag.AnswerProvider
	followups     *followup.Generator
	followupCount int
	debug         bool
	log           *logger.Logger
	metrics       *metrics.Metrics
}

// NewHandler wires the chat handler. log and m may be nil.
func NewHandler(provider rag.AnswerProvider, gen *followup.Generator, followupCount int, debug bool, log *logger.Logger, m *metrics.Metrics) *Handler {
	if log == nil {
		log = logger.New("info")
	}
	return &Handler{
		provider:      provider,
		followups:     gen,
		followupCount: followupCount,
		debug:         debug,
		log:           log.WithModule(ModuleName),
		metrics:       m,
	}
}

// RegisterRoutes mounts the chat endpoints on r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/chat_question", h.handleQuestion)
	r.POST("/chat_question_stream", h.handleQuestionStream)
}

type questionRequest struct {
	Question string `json:"question" form:"question"`
}

// extractQuestion reads the question from a JSON body or form field. When a
// question is present its fingerprint is attached to the request context so
// downstream log lines can be correlated without logging the question text.
func extractQuestion(c *gin.Context) string {
	var question string
	if strings.Contains(c.ContentType(), "application/json") {
		var req questionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return ""
		}
		question = strings.TrimSpace(req.Question)
	} else {
		question = strings.TrimSpace(c.PostForm("question"))
	}

	if question != "" {
		ctx := ctxutil.WithQuestionHash(c.Request.Context(), questionHash(question))
		c.Request = c.Request.WithContext(ctx)
	}
	return question
}

// questionHash returns a short stable fingerprint of the question.
func questionHash(question string) string {
	sum := sha256.Sum256([]byte(question))
	return hex.EncodeToString(sum[:4])
}

// followupPayload is the shared tail of the sync response and the SSE
// followups event.
type followupPayload struct {
	SuggestLiveChat bool
	Followups       []followup.Chip
	Generator       string
}

func (h *Handler) buildFollowups(c *gin.Context, question, answer string) followupPayload {
	chips, escalate, source := h.followups.Build(c.Request.Context(), question, answer, h.followupCount)
	if escalate {
		chips = []followup.Chip{followup.EscalationChip()}
	}

	payload := followupPayload{
		SuggestLiveChat: escalate,
		Followups:       chips,
	}
	if h.debug {
		payload.Generator = source
	}
	return payload
}

func (h *Handler) handleQuestion(c *gin.Context) {
	start := time.Now()

	question := extractQuestion(c)
	if question == "" {
		h.metrics.RecordChat("sync", "bad_request", time.Since(start).Seconds())
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrEmptyQuestion.Error()})
		return
	}

	answer, err := h.provider.GetAnswer(c.Request.Context(), question)
	if err != nil {
		h.log.WithError(err).Errorf("answer request failed")
		h.metrics.RecordChat("sync", "error", time.Since(start).Seconds())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to answer the question"})
		return
	}

	payload := h.buildFollowups(c, question, answer.Text)
	h.metrics.RecordChat("sync", "ok", time.Since(start).Seconds())

	body := gin.H{
		"answer":              answer.Text,
		"suggest_live_chat":   payload.SuggestLiveChat,
		"suggested_followups": payload.Followups,
	}
	if payload.Generator != "" {
		body["followup_generator"] = payload.Generator
	}
	c.JSON(http.StatusOK, body)
}

type streamEvent struct {
	Type            string          `json:"type"`
	Content         string          `json:"content,omitempty"`
	SuggestLiveChat *bool           `json:"suggest_live_chat,omitempty"`
	Followups       []followup.Chip `json:"suggested_followups,omitempty"`
	Generator       string          `json:"followup_generator,omitempty"`
}

func (h *Handler) handleQuestionStream(c *gin.Context) {
	start := time.Now()

	question := extractQuestion(c)
	if question == "" {
		h.metrics.RecordChat("stream", "bad_request", time.Since(start).Seconds())
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrEmptyQuestion.Error()})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	status := "ok"
	answer, err := h.provider.StreamAnswer(c.Request.Context(), question, func(chunk string) error {
		h.writeEvent(c, streamEvent{Type: "chunk", Content: chunk})
		return nil
	})
	if err != nil {
		// Emit followups and done anyway so the client always sees a
		// complete frame sequence, built from whatever text arrived.
		h.log.WithError(err).Errorf("answer stream failed")
		status = "error"
	}

	payload := h.buildFollowups(c, question, answer)
	suggest := payload.SuggestLiveChat
	h.writeEvent(c, streamEvent{
		Type:            "followups",
		SuggestLiveChat: &suggest,
		Followups:       payload.Followups,
		Generator:       payload.Generator,
	})
	h.writeEvent(c, streamEvent{Type: "done"})

	h.metrics.RecordChat("stream", status, time.Since(start).Seconds())
}

// writeEvent emits one SSE frame and flushes it so chunks reach the client
// as they arrive rather than at the end of the handler.
func (h *Handler) writeEvent(c *gin.Context, event streamEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.WithError(err).Errorf("encode stream event")
		return
	}
	fmt.Fprintf(c.Writer, "data: %s\n\n", data)
	c.Writer.Flush()
	h.metrics.RecordStreamEvent(event.Type)
}
