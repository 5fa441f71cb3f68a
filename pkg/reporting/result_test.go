package reporting_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Lodek/vcube/pkg/reporting"
)

func TestResult_AppendEvents(t *testing.T) {
	r := &reporting.Result{}
	r.AppendFalseNegative(1.5, "process 0 false-negative tested process 1")
	r.AppendSelfTermination(3.0, "process 1 self-terminated")

	if len(r.Events) != 2 {
		t.Fatalf("len(Events) = %d, want 2", len(r.Events))
	}
	if r.Events[0].Type != reporting.EventFalseNegative {
		t.Errorf("Events[0].Type = %v, want %v", r.Events[0].Type, reporting.EventFalseNegative)
	}
	if r.Events[1].Type != reporting.EventSelfTermination {
		t.Errorf("Events[1].Type = %v, want %v", r.Events[1].Type, reporting.EventSelfTermination)
	}
}

func TestWriteResult_JSON(t *testing.T) {
	r := &reporting.Result{TestCount: 10, FalseNegativeCount: 2, TerminationCount: 1, RemainingProcesses: 3}

	var buf bytes.Buffer
	if err := reporting.WriteResult(&buf, reporting.ResultFormatJSON, r); err != nil {
		t.Fatalf("WriteResult failed: %v", err)
	}

	var decoded reporting.Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.TestCount != 10 || decoded.RemainingProcesses != 3 {
		t.Errorf("decoded result = %+v, want TestCount=10, RemainingProcesses=3", decoded)
	}
}

func TestWriteResult_Text(t *testing.T) {
	r := &reporting.Result{TestCount: 5, RemainingProcesses: 4}
	r.AppendSelfTermination(2.0, "process 2 self-terminated")

	var buf bytes.Buffer
	if err := reporting.WriteResult(&buf, reporting.ResultFormatText, r); err != nil {
		t.Fatalf("WriteResult failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "test count:           5") {
		t.Errorf("text output missing test count:\n%s", out)
	}
	if !strings.Contains(out, "process 2 self-terminated") {
		t.Errorf("text output missing logged event:\n%s", out)
	}
}

func TestWriteResult_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := reporting.WriteResult(&buf, reporting.ResultFormat("xml"), &reporting.Result{})
	if err == nil {
		t.Error("expected an error for an unsupported format")
	}
}
