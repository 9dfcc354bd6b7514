package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Ingestion phases timed for every layer upload.
const (
	PhaseStage   = "stage"
	PhaseDecode  = "decode"
	PhasePromote = "promote"
	PhaseCommit  = "commit"
)

// IngestTimings holds latency measurements for one shapefile ingestion.
type IngestTimings struct {
	mu sync.Mutex

	start       time.Time
	phaseStarts map[string]time.Time

	Phases       map[string]float64 `json:"phases"`
	TotalMs      float64            `json:"totalMs"`
	FeatureCount int                `json:"featureCount"`
	BytesStaged  int64              `json:"bytesStaged"`
}

func NewIngestTimings() *IngestTimings {
	return &IngestTimings{
		start:       time.Now(),
		phaseStarts: make(map[string]time.Time),
		Phases:      make(map[string]float64),
	}
}

// Start marks the beginning of a phase.
func (m *IngestTimings) Start(phase string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phaseStarts[phase] = time.Now()
}

// End records the elapsed time of a phase started with Start.
func (m *IngestTimings) End(phase string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if started, ok := m.phaseStarts[phase]; ok {
		m.Phases[phase] = msSince(started)
		delete(m.phaseStarts, phase)
	}
}

func (m *IngestTimings) SetFeatureCount(n int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeatureCount = n
}

func (m *IngestTimings) AddBytes(n int64) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BytesStaged += n
}

// Finalize computes the total latency.
func (m *IngestTimings) Finalize() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TotalMs = msSince(m.start)
}

// Snapshot returns a copy of the recorded phase durations.
func (m *IngestTimings) Snapshot() map[string]float64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]float64, len(m.Phases))
	for k, v := range m.Phases {
		out[k] = v
	}
	return out
}

// GetHeaders returns HTTP headers carrying the recorded latencies.
func (m *IngestTimings) GetHeaders() map[string]string {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	headers := map[string]string{
		"X-Latency-Total-Ms": formatFloat(m.TotalMs),
		"X-Ingest-Features":  fmt.Sprintf("%d", m.FeatureCount),
		"X-Ingest-Bytes":     fmt.Sprintf("%d", m.BytesStaged),
	}
	phases := make([]string, 0, len(m.Phases))
	for p := range m.Phases {
		phases = append(phases, p)
	}
	sort.Strings(phases)
	for _, p := range phases {
		headers["X-Latency-"+titleCase(p)+"-Ms"] = formatFloat(m.Phases[p])
	}
	return headers
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
