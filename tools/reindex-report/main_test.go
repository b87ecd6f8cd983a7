package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	commonpb "go.temporal.io/api/common/v1"
	"go.temporal.io/api/enums/v1"
	workflowpb "go.temporal.io/api/workflow/v1"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{name: "milliseconds", duration: 500 * time.Millisecond, want: "500ms"},
		{name: "seconds", duration: 5 * time.Second, want: "5.00s"},
		{name: "minutes", duration: 2*time.Minute + 30*time.Second, want: "2m 30s"},
		{name: "hours", duration: 1*time.Hour + 15*time.Minute, want: "1h 15m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDuration(tt.duration); got != tt.want {
				t.Errorf("formatDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseWorkflowID(t *testing.T) {
	tests := []struct {
		name       string
		workflowID string
		wantChain  string
		wantModel  uint64
		wantOK     bool
	}{
		{
			name:       "mainnet",
			workflowID: "reindex-model-eip155:1-42-0f8fad5b-d9cb-469f-a165-70867728950e",
			wantChain:  "eip155:1",
			wantModel:  42,
			wantOK:     true,
		},
		{
			name:       "sepolia",
			workflowID: "reindex-model-eip155:11155111-7-7c9e6679-7425-40de-944b-e07fc1f90ae7",
			wantChain:  "eip155:11155111",
			wantModel:  7,
			wantOK:     true,
		},
		{name: "missing uuid", workflowID: "reindex-model-eip155:1-42"},
		{name: "other workflow", workflowID: "index-token-eip155:1-42-0f8fad5b-d9cb-469f-a165-70867728950e"},
		{name: "non numeric model", workflowID: "reindex-model-eip155:1-x-0f8fad5b-d9cb-469f-a165-70867728950e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, modelID, ok := parseWorkflowID(tt.workflowID)
			if ok != tt.wantOK || chain != tt.wantChain || modelID != tt.wantModel {
				t.Errorf("parseWorkflowID() = (%q, %d, %v), want (%q, %d, %v)",
					chain, modelID, ok, tt.wantChain, tt.wantModel, tt.wantOK)
			}
		})
	}
}

func TestBuildQuery(t *testing.T) {
	since := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	got := buildQuery(&Config{}, since)
	want := "WorkflowType = 'ReindexModel' AND StartTime >= '2026-01-02T03:04:05Z'"
	if got != want {
		t.Errorf("buildQuery() = %v, want %v", got, want)
	}

	got = buildQuery(&Config{Chain: "eip155:1", ModelID: 9}, since)
	if !strings.HasSuffix(got, "AND WorkflowId STARTS_WITH 'reindex-model-eip155:1-9-'") {
		t.Errorf("buildQuery() with model = %v", got)
	}

	got = buildQuery(&Config{Chain: "eip155:1"}, since)
	if !strings.HasSuffix(got, "AND WorkflowId STARTS_WITH 'reindex-model-eip155:1-'") {
		t.Errorf("buildQuery() with chain = %v", got)
	}
}

func info(workflowID string, status enums.WorkflowExecutionStatus, start time.Time, took time.Duration) *workflowpb.WorkflowExecutionInfo {
	i := &workflowpb.WorkflowExecutionInfo{
		Execution: &commonpb.WorkflowExecution{WorkflowId: workflowID, RunId: "run"},
		Status:    status,
		StartTime: timestamppb.New(start),
	}
	if status != enums.WORKFLOW_EXECUTION_STATUS_RUNNING {
		i.CloseTime = timestamppb.New(start.Add(took))
	}
	return i
}

func TestReport(t *testing.T) {
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	report := newReport(now.Add(-24*time.Hour), now)

	model7 := "reindex-model-eip155:1-7-0f8fad5b-d9cb-469f-a165-70867728950e"
	model8 := "reindex-model-eip155:1-8-7c9e6679-7425-40de-944b-e07fc1f90ae7"

	report.Add(executionFromInfo(info(model7, enums.WORKFLOW_EXECUTION_STATUS_COMPLETED, now.Add(-3*time.Hour), time.Second)))
	report.Add(executionFromInfo(info(model7, enums.WORKFLOW_EXECUTION_STATUS_FAILED, now.Add(-time.Hour), 3*time.Second)))
	report.Add(executionFromInfo(info(model8, enums.WORKFLOW_EXECUTION_STATUS_FAILED, now.Add(-2*time.Hour), 2*time.Second)))
	report.Add(executionFromInfo(info(model8, enums.WORKFLOW_EXECUTION_STATUS_COMPLETED, now.Add(-30*time.Minute), 4*time.Second)))
	report.Add(executionFromInfo(info("something-else", enums.WORKFLOW_EXECUTION_STATUS_RUNNING, now, 0)))

	if report.Total != 5 {
		t.Fatalf("Total = %d, want 5", report.Total)
	}
	if report.Unparsable != 1 {
		t.Errorf("Unparsable = %d, want 1", report.Unparsable)
	}
	if got := report.ByStatus[enums.WORKFLOW_EXECUTION_STATUS_FAILED]; got != 2 {
		t.Errorf("failed runs = %d, want 2", got)
	}
	if got := report.Percentile(50); got != 2*time.Second {
		t.Errorf("p50 = %v, want 2s", got)
	}
	if got := report.Percentile(100); got != 4*time.Second {
		t.Errorf("max = %v, want 4s", got)
	}

	// model 8 recovered, model 7 did not
	failing := report.FailingModels()
	if len(failing) != 1 || failing[0].ModelID != 7 || failing[0].Failed != 1 || failing[0].Runs != 2 {
		t.Errorf("FailingModels() = %+v", failing)
	}

	var buf bytes.Buffer
	if err := report.WriteMarkdown(&buf); err != nil {
		t.Fatalf("WriteMarkdown() error = %v", err)
	}
	if !strings.Contains(buf.String(), "| eip155:1 | 7 |") {
		t.Errorf("markdown is missing the failing model:\n%s", buf.String())
	}
}

func TestPercentageString(t *testing.T) {
	if got := percentageString(1, 4); got != "25.00%" {
		t.Errorf("percentageString() = %v, want 25.00%%", got)
	}
	if got := percentageString(1, 0); got != "0.00%" {
		t.Errorf("percentageString() = %v, want 0.00%%", got)
	}
}
