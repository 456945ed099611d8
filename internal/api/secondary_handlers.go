package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"replicated-log/internal/logstore"
	"replicated-log/internal/metrics"
	"replicated-log/internal/secondary"
)

// SecondaryHandler holds the dependencies the secondary's HTTP surface
// needs.
type SecondaryHandler struct {
	node    *secondary.Secondary
	metrics *metrics.Secondary
}

// NewSecondaryHandler constructs a SecondaryHandler. m may be nil, in
// which case GET /metrics is not registered.
func NewSecondaryHandler(node *secondary.Secondary, m *metrics.Secondary) *SecondaryHandler {
	return &SecondaryHandler{node: node, metrics: m}
}

// Register mounts every secondary-facing route named in §4.8/§8.
func (h *SecondaryHandler) Register(r *gin.Engine) {
	r.POST("/replicate", h.Replicate)
	r.GET("/messages", h.ReadAll)
	r.GET("/health", h.Health)
	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}
}

type replicateRequest struct {
	ID        *uint64  `json:"id"`
	Message   string   `json:"message"`
	Timestamp *float64 `json:"timestamp"`
}

// Replicate handles POST /replicate, called only by the primary's
// delivery pipelines.
func (h *SecondaryHandler) Replicate(c *gin.Context) {
	var req replicateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == nil || req.Message == "" || req.Timestamp == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": logstore.ErrIncompleteEntry.Error()})
		return
	}

	entry := logstore.Entry{ID: *req.ID, Message: req.Message, Timestamp: *req.Timestamp}
	if err := h.node.Replicate(entry); err != nil {
		if errors.Is(err, logstore.ErrIncompleteEntry) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ack"})
}

// ReadAll handles GET /messages.
func (h *SecondaryHandler) ReadAll(c *gin.Context) {
	entries := h.node.ReadAll()
	if h.metrics != nil {
		h.metrics.LogLength.Set(float64(len(entries)))
	}
	c.JSON(http.StatusOK, entries)
}

// Health handles GET /health, the endpoint the primary's heartbeat
// detector polls.
func (h *SecondaryHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
