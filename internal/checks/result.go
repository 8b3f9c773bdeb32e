package checks

type Status string

const (
	StatusPass    Status = "PASS"
	StatusFail    Status = "FAIL"
	StatusSkipped Status = "SKIPPED"
	StatusError   Status = "ERROR"
)

type Result struct {
	CheckID string `json:"check_id"`
	Project string `json:"project"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	// Warning carries a non-fatal observation alongside a PASS (e.g. build
	// artifacts present in an otherwise clean workspace).
	Warning string `json:"warning,omitempty"`
	// Evidence contains simple key-value string pairs supporting the result.
	Evidence map[string]string `json:"evidence,omitempty"`
}

// Ok reports whether the result does not fail the gate.
func (r Result) Ok() bool {
	return r.Status == StatusPass || r.Status == StatusSkipped
}
