// Package metrics exposes the sync monitor's state as Prometheus metrics.
package metrics

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"

	"github.com/syncvisor/syncvisor/internal/chain"
	"github.com/syncvisor/syncvisor/internal/status"
	"github.com/syncvisor/syncvisor/pkg/format"
	"github.com/syncvisor/syncvisor/pkg/logger"
)

// Collector owns the Prometheus registry and the gauges/counters updated
// once per poll cycle.
type Collector struct {
	registry *prometheus.Registry
	logger   *logger.Logger

	localHeight  prometheus.Gauge
	remoteHeight prometheus.Gauge
	progress     prometheus.Gauge
	remoteSource *prometheus.GaugeVec
	checksTotal  prometheus.Counter
	checkErrors  prometheus.Counter

	processRSS prometheus.Gauge
	processCPU prometheus.Gauge
	proc       *process.Process
}

// NewCollector creates a collector with its own registry.
func NewCollector(log *logger.Logger) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		logger:   log,

		localHeight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "syncvisor_local_height",
			Help: "Latest block height reported by the local node",
		}),
		remoteHeight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "syncvisor_remote_proven_height",
			Help: "Proven chain height resolved from the remote sources",
		}),
		progress: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "syncvisor_sync_progress_percent",
			Help: "Local sync progress as a percentage of the proven height",
		}),
		remoteSource: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "syncvisor_remote_source",
			Help: "Which upstream produced the remote height this cycle (1 = active)",
		}, []string{"source"}),
		checksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "syncvisor_checks_total",
			Help: "Total number of completed poll cycles",
		}),
		checkErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "syncvisor_check_errors_total",
			Help: "Poll cycles in which a height could not be resolved",
		}),
		processRSS: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "syncvisor_process_resident_memory_bytes",
			Help: "Resident memory of the syncvisor process",
		}),
		processCPU: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "syncvisor_process_cpu_percent",
			Help: "CPU usage of the syncvisor process",
		}),
	}

	c.registry.MustRegister(
		c.localHeight,
		c.remoteHeight,
		c.progress,
		c.remoteSource,
		c.checksTotal,
		c.checkErrors,
		c.processRSS,
		c.processCPU,
	)

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		c.proc = proc
	} else {
		log.Warn("process metrics unavailable", zap.Error(err))
	}

	return c
}

// Registry returns the collector's registry for the exporter.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveCycle records one completed poll cycle. Unknown heights leave the
// height gauges at their previous value rather than forcing them to zero.
func (c *Collector) ObserveCycle(snap chain.Snapshot, st status.Status, errored bool) {
	c.checksTotal.Inc()
	if errored {
		c.checkErrors.Inc()
	}

	if local, ok := snap.Local.Int(); ok {
		c.localHeight.Set(float64(local))
	}
	if remote, ok := snap.Remote.Int(); ok {
		c.remoteHeight.Set(float64(remote))
	}

	localN, localOK := snap.Local.Int()
	remoteN, remoteOK := snap.Remote.Int()
	switch {
	case st.Kind == status.Synced, st.Kind == status.Ahead:
		c.progress.Set(100)
	case localOK && remoteOK:
		if pct, ok := format.PercentValue(localN, remoteN); ok {
			c.progress.Set(pct)
		}
	}

	for _, src := range []chain.Source{chain.SourceNone, chain.SourcePrimary, chain.SourceFallback} {
		v := 0.0
		if src == snap.Source {
			v = 1.0
		}
		c.remoteSource.WithLabelValues(src.String()).Set(v)
	}

	c.collectProcess()
}

// collectProcess refreshes the self-observation gauges via gopsutil.
func (c *Collector) collectProcess() {
	if c.proc == nil {
		return
	}

	if mi, err := c.proc.MemoryInfo(); err == nil {
		c.processRSS.Set(float64(mi.RSS))
	}
	if pct, err := c.proc.CPUPercent(); err == nil {
		c.processCPU.Set(pct)
	}
}
