package telemetry

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type perfGauges struct {
	cpu        metric.Float64Gauge
	memory     metric.Int64Gauge
	goroutines metric.Int64Gauge
}

func newPerfGauges() perfGauges {
	meter := otel.Meter("tennisleagues/perf_stats")
	cpuGauge, _ := meter.Float64Gauge("cpu_usage")
	memoryGauge, _ := meter.Int64Gauge("allocated_mb")
	goroutineGauge, _ := meter.Int64Gauge("goroutine_count")
	return perfGauges{cpu: cpuGauge, memory: memoryGauge, goroutines: goroutineGauge}
}

// InstrumentPerfStats records process gauges every `interval` until ctx is done.
func InstrumentPerfStats(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second * 30
	}
	gauges := newPerfGauges()

	go func() {
		var memStats runtime.MemStats
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				runtime.ReadMemStats(&memStats)

				cpuUsage, err := cpu.PercentWithContext(ctx, 0, false)
				if err == nil && len(cpuUsage) > 0 {
					gauges.cpu.Record(ctx, cpuUsage[0])
				} else if err != nil {
					slog.DebugContext(ctx, "failed to read cpu usage", "err", err)
				}

				gauges.memory.Record(ctx, int64(memStats.Alloc/1_000_000))
				gauges.goroutines.Record(ctx, int64(runtime.NumGoroutine()))
			case <-ctx.Done():
				return
			}
		}
	}()
}
