package observability

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Frame outcomes recorded by RecordFrame.
const (
	FrameRoute         = "route"
	FrameNotApplicable = "not_applicable"
	FrameFiltered      = "filtered"
	FrameError         = "error"
)

var (
	registerOnce sync.Once

	decodeFrames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fpm",
			Subsystem: "decode",
			Name:      "frames_total",
			Help:      "FPM frames scanned, by outcome.",
		},
		[]string{"result"},
	)
	decodeAttributes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fpm",
			Subsystem: "decode",
			Name:      "attributes_total",
			Help:      "Route attributes decoded, by attribute type.",
		},
		[]string{"type"},
	)
	decodeTruncated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fpm",
			Subsystem: "decode",
			Name:      "truncated_messages_total",
			Help:      "Route messages whose attribute list stopped at a malformed attribute.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(decodeFrames, decodeAttributes, decodeTruncated)
	})
}

func RecordFrame(result string) {
	RegisterMetrics()
	decodeFrames.WithLabelValues(result).Inc()
}

func RecordAttribute(attrType string) {
	RegisterMetrics()
	decodeAttributes.WithLabelValues(attrType).Inc()
}

func RecordTruncated() {
	RegisterMetrics()
	decodeTruncated.Inc()
}

// WriteTextfile writes the default registry to path in the text exposition
// format, for node_exporter's textfile collector.
func WriteTextfile(path string) error {
	RegisterMetrics()
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("metrics write failed (%s): %w", path, err)
	}
	return nil
}
