package health

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DetectorConfig tunes the heartbeat failure detector (C5).
type DetectorConfig struct {
	Interval           time.Duration
	Timeout            time.Duration
	SuspectedThreshold int
	UnhealthyThreshold int
}

// Detector is the single periodic worker that probes every secondary's
// /health endpoint and drives its Descriptor's state machine. Grounded
// on the teacher's use of a dedicated http.Client-per-concern
// (cluster.Replicator) and its background ticker goroutines in
// cmd/server/main.go (the periodic snapshot loop), generalized into a
// reusable worker type.
type Detector struct {
	cfg         DetectorConfig
	descriptors []*Descriptor
	client      *http.Client
	log         zerolog.Logger
}

// NewDetector constructs a Detector over the given descriptors.
func NewDetector(cfg DetectorConfig, descriptors []*Descriptor, log zerolog.Logger) *Detector {
	return &Detector{
		cfg:         cfg,
		descriptors: descriptors,
		client:      &http.Client{Timeout: cfg.Timeout},
		log:         log.With().Str("component", "health-detector").Logger(),
	}
}

// Run blocks, probing every secondary once per Interval, until ctx is
// canceled.
func (d *Detector) Run(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.probeAll(ctx)
		}
	}
}

func (d *Detector) probeAll(ctx context.Context) {
	for _, desc := range d.descriptors {
		d.probeOne(ctx, desc)
	}
}

func (d *Detector) probeOne(ctx context.Context, desc *Descriptor) {
	reqCtx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, desc.Endpoint+"/health", nil)
	if err != nil {
		d.log.Error().Err(err).Str("secondary", desc.Endpoint).Msg("build heartbeat request")
		desc.RecordHeartbeatFailure(d.cfg.SuspectedThreshold, d.cfg.UnhealthyThreshold)
		return
	}

	resp, err := d.client.Do(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		before := desc.State()
		desc.RecordHeartbeatFailure(d.cfg.SuspectedThreshold, d.cfg.UnhealthyThreshold)
		after := desc.State()
		if after != before {
			d.log.Warn().Str("secondary", desc.Endpoint).Str("from", before.String()).Str("to", after.String()).Msg("secondary reclassified")
		}
		if resp != nil {
			resp.Body.Close()
		}
		return
	}
	resp.Body.Close()

	before := desc.State()
	desc.RecordHeartbeatSuccess()
	if before != Healthy {
		d.log.Info().Str("secondary", desc.Endpoint).Msg("secondary is Healthy")
	}
}
