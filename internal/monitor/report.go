package monitor

import (
	"go.uber.org/zap"

	"github.com/syncvisor/syncvisor/internal/status"
)

// report emits the per-cycle log line. Failed cycles carry enough context to
// tell a local-node outage from a remote-source outage from corrupt data.
func (m *Monitor) report(res CycleResult, localErr error) {
	fields := []zap.Field{
		zap.String("local", res.Snapshot.Local.String()),
		zap.String("remote", res.Snapshot.Remote.String()),
		zap.String("source", res.Snapshot.Source.String()),
		zap.String("state", res.Status.Kind.String()),
		zap.Int64("checks", res.Stats.TotalChecks),
		zap.Int64("errors", res.Stats.ErrorChecks),
		zap.Int64("success_rate", res.Stats.SuccessRate),
	}

	if res.Status.Progress != "" {
		fields = append(fields, zap.String("progress", res.Status.Progress+"%"))
	}
	if res.Status.Milestone != status.MilestoneNone {
		fields = append(fields, zap.String("milestone", string(res.Status.Milestone)))
	}

	switch res.Status.Kind {
	case status.Unknown, status.InvalidData:
		if !res.Snapshot.Local.Known() || res.Status.Kind == status.InvalidData {
			fields = append(fields, zap.NamedError("local_error", localErr))
		}
		if !res.Snapshot.Remote.Known() {
			fields = append(fields, zap.String("remote_error", "all remote sources failed"))
		}
		m.logger.Warn("sync check failed", fields...)
	default:
		m.logger.Info("sync check", fields...)
	}
}
