package orchestrator

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/genforge/genforge/errs"
	"github.com/genforge/genforge/log"
)

// exportReportIfNeeded writes the structured error report when a CRITICAL
// was recorded or the ERROR count exceeds opts.ReportErrorThreshold, per
// §4.8 and §7. A threshold of 0 disables the ERROR-count trigger, leaving
// only CRITICAL. ReportPath unset disables export entirely regardless of
// error counts.
func (o *Orchestrator) exportReportIfNeeded(handler *errs.Handler, summary *Summary, logger *log.Logger) {
	if o.opts.ReportPath == "" {
		return
	}
	hasCritical := handler.Count(errs.Critical) > 0
	overThreshold := o.opts.ReportErrorThreshold > 0 && handler.Count(errs.Error) > o.opts.ReportErrorThreshold
	if !hasCritical && !overThreshold {
		return
	}

	report := handler.BuildReport(time.Now())
	if err := writeJSONReport(report, o.opts.ReportPath); err != nil {
		logger.Error("failed to write error report", map[string]any{"error": err.Error(), "path": o.opts.ReportPath})
		return
	}
	summary.ReportPath = o.opts.ReportPath

	if o.opts.ReportFormat == ReportFormatBoth {
		msgpackPath := msgpackTwinPath(o.opts.ReportPath)
		if err := writeMsgpackReport(report, msgpackPath); err != nil {
			logger.Error("failed to write msgpack report twin", map[string]any{"error": err.Error(), "path": msgpackPath})
		}
	}
}

// writeJSONReport writes report as indented JSON to path, or to stderr when
// path is "-".
func writeJSONReport(report errs.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if path == "-" {
		_, err = os.Stderr.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// writeMsgpackReport writes report as a msgpack-encoded binary twin, for
// consumers that prefer a compact wire format over JSON.
func writeMsgpackReport(report errs.Report, path string) error {
	data, err := msgpack.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal msgpack report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// msgpackTwinPath derives the msgpack twin's path from the JSON report
// path by swapping (or appending) a .msgpack extension.
func msgpackTwinPath(jsonPath string) string {
	if idx := strings.LastIndex(jsonPath, "."); idx > strings.LastIndex(jsonPath, "/") {
		return jsonPath[:idx] + ".msgpack"
	}
	return jsonPath + ".msgpack"
}
