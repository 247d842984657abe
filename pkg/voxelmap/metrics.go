package voxelmap

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	kindLabel = "kind"
	fillLabel = "fill"
)

var (
	editCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contour_edits_total",
		Help: "The number of edits applied to voxel maps.",
	}, []string{
		kindLabel,
		fillLabel,
	})

	chunkRebuildCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contour_chunk_rebuilds_total",
		Help: "The number of chunk meshes rebuilt.",
	})

	triangleCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contour_triangles_total",
		Help: "The number of contour triangles emitted by rebuilds.",
	})

	chunkRebuildLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "contour_chunk_rebuild_seconds",
		Help:    "The time to rebuild the meshes of one chunk.",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
	})
)

func instrumentEdit(kind string, fill bool) {
	editCount.With(prometheus.Labels{
		kindLabel: kind,
		fillLabel: strconv.FormatBool(fill),
	}).Inc()
}

func instrumentRebuild(start time.Time, triangles int) {
	chunkRebuildLatency.Observe(time.Since(start).Seconds())
	chunkRebuildCount.Inc()
	triangleCount.Add(float64(triangles))
}
