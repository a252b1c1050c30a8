package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// Stage identifies a pipeline stage for counters.
type Stage string

const (
	StageExtract  Stage = "extract"
	StageFetch    Stage = "fetch"
	StageAnalyze  Stage = "analyze"
	StageCompose  Stage = "compose"
	StageDispatch Stage = "dispatch"
)

var stages = []Stage{StageExtract, StageFetch, StageAnalyze, StageCompose, StageDispatch}

type stageCounters struct {
	started   atomic.Uint64
	completed atomic.Uint64
	failed    atomic.Uint64
}

var (
	counters = map[Stage]*stageCounters{
		StageExtract:  {},
		StageFetch:    {},
		StageAnalyze:  {},
		StageCompose:  {},
		StageDispatch: {},
	}

	llmDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncStarted increments the started counter for a stage.
func IncStarted(s Stage) {
	if c, ok := counters[s]; ok {
		c.started.Add(1)
	}
}

// IncCompleted increments the completed counter for a stage.
func IncCompleted(s Stage) {
	if c, ok := counters[s]; ok {
		c.completed.Add(1)
	}
}

// IncFailed increments the failed counter for a stage.
func IncFailed(s Stage) {
	if c, ok := counters[s]; ok {
		c.failed.Add(1)
	}
}

// ObserveLLMDurationMs records an LLM call duration in milliseconds.
func ObserveLLMDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	llmDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	for _, s := range stages {
		c := counters[s]
		writeCounter(&buf, fmt.Sprintf("pipeline_%s_started_total", s), fmt.Sprintf("Total %s operations started", s), c.started.Load())
		writeCounter(&buf, fmt.Sprintf("pipeline_%s_completed_total", s), fmt.Sprintf("Total %s operations completed", s), c.completed.Load())
		writeCounter(&buf, fmt.Sprintf("pipeline_%s_failed_total", s), fmt.Sprintf("Total %s operations failed", s), c.failed.Load())
	}
	writeHistogram(&buf, "llm_call_duration_ms", "LLM call duration in milliseconds", llmDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
