package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestTimingsHeaders(t *testing.T) {
	tm := NewIngestTimings()
	tm.Start(PhaseStage)
	tm.End(PhaseStage)
	tm.Start(PhaseDecode)
	tm.End(PhaseDecode)
	tm.End(PhaseCommit) // never started, ignored
	tm.SetFeatureCount(12)
	tm.AddBytes(2048)
	tm.Finalize()

	h := tm.GetHeaders()
	assert.Contains(t, h, "X-Latency-Stage-Ms")
	assert.Contains(t, h, "X-Latency-Decode-Ms")
	assert.NotContains(t, h, "X-Latency-Commit-Ms")
	assert.Contains(t, h, "X-Latency-Total-Ms")
	assert.Equal(t, "12", h["X-Ingest-Features"])
	assert.Equal(t, "2048", h["X-Ingest-Bytes"])
	assert.Len(t, tm.Snapshot(), 2)
}

func TestNilReceiversAreSafe(t *testing.T) {
	var tm *IngestTimings
	tm.Start(PhaseStage)
	tm.End(PhaseStage)
	tm.Finalize()
	assert.Nil(t, tm.GetHeaders())

	var m *Metrics
	m.RecordUpload("success")
	m.RecordIngest(NewIngestTimings())
	m.RecordFacilityQuery("nearby")
	m.RecordRequest("GET", "/api/facilities", "200", 3)
	m.RecordRevocation()
	m.RecordStorageOp("get", "ok", 1)
	m.RecordStorageBytes("out", 10)
}

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordUpload("success")
	m.RecordUpload("invalid")
	m.RecordUpload("success")
	m.RecordFacilityQuery("nearby")

	tm := NewIngestTimings()
	tm.Start(PhaseDecode)
	tm.End(PhaseDecode)
	tm.SetFeatureCount(3)
	m.RecordIngest(tm)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.layerUploads.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.facilityQueries.WithLabelValues("nearby")))

	n, err := testutil.GatherAndCount(reg, "layer_ingest_phase_latency_ms", "layer_features_decoded")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStorageBytesIgnoresEmptyTransfers(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.RecordStorageBytes("in", 0)
	m.RecordStorageBytes("in", 512)
	m.RecordStorageBytes("out", -1)

	assert.Equal(t, 512.0, testutil.ToFloat64(m.storageBytes.WithLabelValues("in")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.storageBytes.WithLabelValues("out")))
}
