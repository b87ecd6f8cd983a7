package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/api/enums/v1"
	workflowpb "go.temporal.io/api/workflow/v1"
)

// Execution is a single ReindexModel run
type Execution struct {
	WorkflowID string
	RunID      string
	Chain      string
	ModelID    uint64
	Status     enums.WorkflowExecutionStatus
	StartTime  time.Time
	CloseTime  *time.Time
	Duration   time.Duration
}

// ModelSummary aggregates the runs of one model
type ModelSummary struct {
	Chain     string
	ModelID   uint64
	Runs      int
	Failed    int
	LastRun   time.Time
	LastState enums.WorkflowExecutionStatus
}

// Report aggregates reindex executions over a window
type Report struct {
	Since      time.Time
	Until      time.Time
	Total      int
	ByStatus   map[enums.WorkflowExecutionStatus]int
	Durations  []time.Duration
	Models     map[string]*ModelSummary
	Unparsable int
}

func newReport(since, until time.Time) *Report {
	return &Report{
		Since:    since,
		Until:    until,
		ByStatus: make(map[enums.WorkflowExecutionStatus]int),
		Models:   make(map[string]*ModelSummary),
	}
}

// parseWorkflowID splits "reindex-model-<chain>-<model_id>-<uuid>" into chain and model id
func parseWorkflowID(workflowID string) (string, uint64, bool) {
	rest, ok := strings.CutPrefix(workflowID, reindexWorkflowPrefix)
	if !ok {
		return "", 0, false
	}

	// the uuid suffix holds exactly four dashes
	parts := strings.Split(rest, "-")
	if len(parts) < 7 {
		return "", 0, false
	}
	head := parts[:len(parts)-5]

	modelID, err := strconv.ParseUint(head[len(head)-1], 10, 64)
	if err != nil {
		return "", 0, false
	}
	chain := strings.Join(head[:len(head)-1], "-")
	if chain == "" {
		return "", 0, false
	}
	return chain, modelID, true
}

func executionFromInfo(info *workflowpb.WorkflowExecutionInfo) Execution {
	exec := Execution{
		WorkflowID: info.GetExecution().GetWorkflowId(),
		RunID:      info.GetExecution().GetRunId(),
		Status:     info.GetStatus(),
		StartTime:  info.GetStartTime().AsTime(),
	}
	if info.GetCloseTime() != nil {
		closeTime := info.GetCloseTime().AsTime()
		exec.CloseTime = &closeTime
		exec.Duration = closeTime.Sub(exec.StartTime)
	}
	exec.Chain, exec.ModelID, _ = parseWorkflowID(exec.WorkflowID)
	return exec
}

// Add folds an execution into the report
func (r *Report) Add(exec Execution) {
	r.Total++
	r.ByStatus[exec.Status]++
	if exec.CloseTime != nil {
		r.Durations = append(r.Durations, exec.Duration)
	}

	if exec.Chain == "" {
		r.Unparsable++
		return
	}

	key := fmt.Sprintf("%s/%d", exec.Chain, exec.ModelID)
	summary, ok := r.Models[key]
	if !ok {
		summary = &ModelSummary{Chain: exec.Chain, ModelID: exec.ModelID}
		r.Models[key] = summary
	}
	summary.Runs++
	if isFailure(exec.Status) {
		summary.Failed++
	}
	if exec.StartTime.After(summary.LastRun) {
		summary.LastRun = exec.StartTime
		summary.LastState = exec.Status
	}
}

// Percentile returns the p-th percentile of closed run durations
func (r *Report) Percentile(p float64) time.Duration {
	if len(r.Durations) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), r.Durations...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := int(float64(len(sorted)-1) * p / 100)
	return sorted[idx]
}

// FailingModels returns models whose latest run failed, most recent first
func (r *Report) FailingModels() []*ModelSummary {
	var out []*ModelSummary
	for _, m := range r.Models {
		if isFailure(m.LastState) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastRun.After(out[j].LastRun) })
	return out
}

func isFailure(status enums.WorkflowExecutionStatus) bool {
	switch status {
	case enums.WORKFLOW_EXECUTION_STATUS_FAILED,
		enums.WORKFLOW_EXECUTION_STATUS_TIMED_OUT,
		enums.WORKFLOW_EXECUTION_STATUS_TERMINATED:
		return true
	}
	return false
}

var statusOrder = []enums.WorkflowExecutionStatus{
	enums.WORKFLOW_EXECUTION_STATUS_RUNNING,
	enums.WORKFLOW_EXECUTION_STATUS_COMPLETED,
	enums.WORKFLOW_EXECUTION_STATUS_FAILED,
	enums.WORKFLOW_EXECUTION_STATUS_TIMED_OUT,
	enums.WORKFLOW_EXECUTION_STATUS_TERMINATED,
	enums.WORKFLOW_EXECUTION_STATUS_CANCELED,
}

// Print writes a plain text summary
func (r *Report) Print(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Window:   %s .. %s\n", r.Since.Format(time.RFC3339), r.Until.Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "Runs:     %d (%d models, %s)\n", r.Total, len(r.Models), formatRate(r.Total, r.Until.Sub(r.Since)))
	for _, status := range statusOrder {
		if n := r.ByStatus[status]; n > 0 {
			_, _ = fmt.Fprintf(w, "  %-20s %6d  %s\n", formatStatus(status), n, percentageString(n, r.Total))
		}
	}
	_, _ = fmt.Fprintf(w, "Duration: p50 %s, p95 %s, max %s\n",
		formatDuration(r.Percentile(50)), formatDuration(r.Percentile(95)), formatDuration(r.Percentile(100)))

	failing := r.FailingModels()
	if len(failing) > 0 {
		_, _ = fmt.Fprintf(w, "\nModels whose latest reindex failed:\n")
		for _, m := range failing {
			_, _ = fmt.Fprintf(w, "  %s model %d  %s at %s (%d/%d runs failed)\n",
				m.Chain, m.ModelID, formatStatus(m.LastState), m.LastRun.Format(time.RFC3339), m.Failed, m.Runs)
		}
	}
	if r.Unparsable > 0 {
		_, _ = fmt.Fprintf(w, "\n%d runs had an unrecognized workflow id\n", r.Unparsable)
	}
}

// WriteMarkdown writes the report as a markdown document
func (r *Report) WriteMarkdown(w io.Writer) error {
	var b strings.Builder

	b.WriteString("# Reindex Report\n\n")
	fmt.Fprintf(&b, "- **Window:** %s to %s\n", r.Since.Format(time.RFC3339), r.Until.Format(time.RFC3339))
	fmt.Fprintf(&b, "- **Runs:** %d across %d models\n", r.Total, len(r.Models))
	fmt.Fprintf(&b, "- **Health:** %s\n\n", statusEmoji(r.ByStatus[enums.WORKFLOW_EXECUTION_STATUS_COMPLETED],
		len(r.FailingModels()), r.ByStatus[enums.WORKFLOW_EXECUTION_STATUS_RUNNING]))

	b.WriteString("## Status\n\n| Status | Count | Share |\n|---|---:|---:|\n")
	for _, status := range statusOrder {
		if n := r.ByStatus[status]; n > 0 {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", status.String(), n, percentageString(n, r.Total))
		}
	}

	b.WriteString("\n## Duration\n\n| p50 | p95 | max |\n|---|---|---|\n")
	fmt.Fprintf(&b, "| %s | %s | %s |\n", formatDuration(r.Percentile(50)), formatDuration(r.Percentile(95)), formatDuration(r.Percentile(100)))

	if failing := r.FailingModels(); len(failing) > 0 {
		b.WriteString("\n## Failing models\n\n| Chain | Model | Last status | Last run | Failed runs |\n|---|---:|---|---|---:|\n")
		for _, m := range failing {
			fmt.Fprintf(&b, "| %s | %d | %s | %s | %d/%d |\n",
				m.Chain, m.ModelID, m.LastState.String(), m.LastRun.Format(time.RFC3339), m.Failed, m.Runs)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
