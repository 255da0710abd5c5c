// Package observability wires conversation lifecycle events into Prometheus
// metrics. The serve command registers these and exposes them on /metrics.
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vivekalabs/viveka/pkg/domain"
)

// Metrics holds the conversation-level Prometheus collectors.
type Metrics struct {
	Messages      *prometheus.CounterVec
	StageChanges  *prometheus.CounterVec
	Uploads       *prometheus.CounterVec
	Outcomes      *prometheus.CounterVec
	TranscriptLen prometheus.Histogram
}

// NewMetrics creates the collectors. Call Register (or pass them to a
// registry) before serving.
func NewMetrics() *Metrics {
	return &Metrics{
		Messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "viveka_messages_total",
				Help: "Total transcript messages appended, by sender.",
			},
			[]string{"sender"},
		),
		StageChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "viveka_stage_transitions_total",
				Help: "Total stage transitions, by target stage.",
			},
			[]string{"to"},
		),
		Uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "viveka_document_uploads_total",
				Help: "Total document uploads, by verification result.",
			},
			[]string{"result"},
		),
		Outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "viveka_conversation_outcomes_total",
				Help: "Conversations reaching a terminal stage.",
			},
			[]string{"outcome"},
		),
		TranscriptLen: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "viveka_transcript_messages",
				Help:    "Transcript length at each terminal stage.",
				Buckets: prometheus.LinearBuckets(5, 5, 10),
			},
		),
	}
}

// Register registers all collectors with the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.Messages, m.StageChanges, m.Uploads, m.Outcomes, m.TranscriptLen,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Hooks returns lifecycle hooks that feed the collectors. Chain them with
// any host-level hooks before handing them to the Advisor.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnMessage: func(_ context.Context, e *domain.MessageEvent) {
			m.Messages.WithLabelValues(string(e.Message.Sender)).Inc()
		},
		OnStageChange: func(_ context.Context, e *domain.StageEvent) {
			m.StageChanges.WithLabelValues(string(e.To)).Inc()
			if e.To.Terminal() {
				m.Outcomes.WithLabelValues(string(e.To)).Inc()
			}
		},
		OnUpload: func(_ context.Context, e *domain.UploadEvent) {
			result := "rejected"
			if e.Valid {
				result = "accepted"
			}
			m.Uploads.WithLabelValues(result).Inc()
		},
	}
}

// Chain merges two hook sets; both sides fire on every event.
func Chain(a, b domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnMessage: func(ctx context.Context, e *domain.MessageEvent) {
			if a.OnMessage != nil {
				a.OnMessage(ctx, e)
			}
			if b.OnMessage != nil {
				b.OnMessage(ctx, e)
			}
		},
		OnStageChange: func(ctx context.Context, e *domain.StageEvent) {
			if a.OnStageChange != nil {
				a.OnStageChange(ctx, e)
			}
			if b.OnStageChange != nil {
				b.OnStageChange(ctx, e)
			}
		},
		OnUpload: func(ctx context.Context, e *domain.UploadEvent) {
			if a.OnUpload != nil {
				a.OnUpload(ctx, e)
			}
			if b.OnUpload != nil {
				b.OnUpload(ctx, e)
			}
		},
	}
}
