package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// LoggedEventType distinguishes the two kinds of output-only events the
// simulator records.
type LoggedEventType string

const (
	EventFalseNegative   LoggedEventType = "FalseNegative"
	EventSelfTermination LoggedEventType = "SelfTermination"
)

// LoggedEvent is one append-only entry in the simulation's event log.
type LoggedEvent struct {
	At      float64         `json:"time"`
	Type    LoggedEventType `json:"type"`
	Message string          `json:"message"`
}

// Result is the aggregated outcome of one simulation run.
type Result struct {
	TestCount          int           `json:"test_count"`
	FalseNegativeCount int           `json:"false_negative_count"`
	TerminationCount   int           `json:"termination_count"`
	RemainingProcesses int           `json:"remaining_processes"`
	Events             []LoggedEvent `json:"events"`
}

// AppendFalseNegative implements diagnosis.EventSink.
func (r *Result) AppendFalseNegative(at float64, message string) {
	r.Events = append(r.Events, LoggedEvent{At: at, Type: EventFalseNegative, Message: message})
}

// AppendSelfTermination implements diagnosis.EventSink.
func (r *Result) AppendSelfTermination(at float64, message string) {
	r.Events = append(r.Events, LoggedEvent{At: at, Type: EventSelfTermination, Message: message})
}

// ResultFormat selects the serialization WriteResult produces.
type ResultFormat string

const (
	ResultFormatText ResultFormat = "text"
	ResultFormatJSON ResultFormat = "json"
)

// WriteResult serializes result to w in the given format: an indented
// JSON document, or a short human-readable summary.
func WriteResult(w io.Writer, format ResultFormat, result *Result) error {
	switch format {
	case ResultFormatJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case ResultFormatText, "":
		_, err := io.WriteString(w, formatText(result))
		return err
	default:
		return fmt.Errorf("unsupported result format: %s", format)
	}
}

func formatText(result *Result) string {
	var sb strings.Builder

	sb.WriteString("Simulation Results:\n")
	sb.WriteString(fmt.Sprintf("  remaining processes:  %d\n", result.RemainingProcesses))
	sb.WriteString(fmt.Sprintf("  termination count:    %d\n", result.TerminationCount))
	sb.WriteString(fmt.Sprintf("  test count:           %d\n", result.TestCount))
	sb.WriteString(fmt.Sprintf("  false negative count: %d\n", result.FalseNegativeCount))

	if len(result.Events) > 0 {
		sb.WriteString("\nEvents:\n")
		for _, ev := range result.Events {
			sb.WriteString(fmt.Sprintf("  %7.2f  %-15s  %s\n", ev.At, ev.Type, ev.Message))
		}
	}

	return sb.String()
}
