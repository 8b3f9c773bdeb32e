package output

import "relgate/internal/checks"

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit Events (one JSON object per line):
// - run.started
// - sync.finished
// - check.result
// - run.finished
//
// JSON mode remains an aggregate of checks.Result values.
type Event struct {
	Type    string `json:"type"`
	Project string `json:"project,omitempty"`
	*checks.Result
	Checks   int `json:"checks,omitempty"`
	ExitCode int `json:"exit_code,omitempty"`
}

func eventFromResult(r checks.Result) Event {
	return Event{Type: "check.result", Project: r.Project, Result: &r}
}
