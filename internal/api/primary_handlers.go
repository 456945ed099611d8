package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"replicated-log/internal/metrics"
	"replicated-log/internal/primary"
)

// PrimaryHandler holds the dependencies the primary's HTTP surface
// needs, mirroring the teacher's Handler-holds-dependencies-injected-
// from-main shape.
type PrimaryHandler struct {
	node    *primary.Primary
	metrics *metrics.Primary
}

// NewPrimaryHandler constructs a PrimaryHandler. m may be nil, in which
// case GET /metrics is not registered.
func NewPrimaryHandler(node *primary.Primary, m *metrics.Primary) *PrimaryHandler {
	return &PrimaryHandler{node: node, metrics: m}
}

// Register mounts every primary-facing route named in §4.8/§8.
func (h *PrimaryHandler) Register(r *gin.Engine) {
	r.POST("/messages", h.Append)
	r.GET("/messages", h.ReadAll)
	r.GET("/health", h.Health)
	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}
}

type appendRequest struct {
	Message      string `json:"message"`
	WriteConcern *int   `json:"write_concern"`
}

// Append handles POST /messages.
func (h *PrimaryHandler) Append(c *gin.Context) {
	var req appendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	writeConcern := 1
	if req.WriteConcern != nil {
		writeConcern = *req.WriteConcern
	}

	entry, err := h.node.Append(req.Message, writeConcern)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, entry)
	case errors.Is(err, primary.ErrNoQuorum):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "quorum": false})
	case errors.Is(err, primary.ErrBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// ReadAll handles GET /messages.
func (h *PrimaryHandler) ReadAll(c *gin.Context) {
	c.JSON(http.StatusOK, h.node.ReadAll())
}

// Health handles GET /health, reporting the quorum verdict and each
// secondary's classification, per §4.8. It answers 200 whether or not
// quorum holds; the verdict is in the "quorum" field.
func (h *PrimaryHandler) Health(c *gin.Context) {
	secondaries, quorum := h.node.Health()

	if h.metrics != nil {
		h.metrics.LogLength.Set(float64(len(h.node.ReadAll())))
		if quorum {
			h.metrics.Quorum.Set(1)
		} else {
			h.metrics.Quorum.Set(0)
		}
		for endpoint, state := range secondaries {
			h.metrics.SecondaryState.WithLabelValues(endpoint).Set(metrics.StateValue(state))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"quorum":      quorum,
		"secondaries": secondaries,
	})
}
