package metrics

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	taskProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resumify",
			Subsystem: "worker",
			Name:      "tasks_processed_total",
			Help:      "已处理的异步任务总数。",
		},
		[]string{"type", "result"},
	)

	taskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resumify",
			Subsystem: "worker",
			Name:      "task_duration_seconds",
			Help:      "异步任务处理耗时分布（秒）。",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"type"},
	)

	exportPDFBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "resumify",
			Subsystem: "export",
			Name:      "pdf_bytes",
			Help:      "导出 PDF 的文件大小分布（字节）。",
			Buckets:   prometheus.ExponentialBuckets(16*1024, 2, 10),
		},
	)
)

// ObservePDFSize 记录一次 PDF 导出的产物大小。
func ObservePDFSize(n int) {
	exportPDFBytes.Observe(float64(n))
}

// AsynqMetricsMiddleware 采集每个任务的处理结果与耗时。
func AsynqMetricsMiddleware() asynq.MiddlewareFunc {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
			start := time.Now()
			err := next.ProcessTask(ctx, t)

			result := "success"
			if err != nil {
				result = "failure"
			}
			taskProcessedTotal.WithLabelValues(t.Type(), result).Inc()
			taskDuration.WithLabelValues(t.Type()).Observe(time.Since(start).Seconds())
			return err
		})
	}
}
