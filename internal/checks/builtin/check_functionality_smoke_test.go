package builtin

import (
	"context"
	"testing"

	"relgate/internal/checks"
	"relgate/internal/data"
	"relgate/internal/data/models"
)

func TestFunctionalitySmoke_Evaluate(t *testing.T) {
	tests := []struct {
		name           string
		data           map[data.DependencyKey]any
		expectedStatus checks.Status
	}{
		{
			name:           "missing dependency",
			data:           map[data.DependencyKey]any{},
			expectedStatus: checks.StatusError,
		},
		{
			name: "wrong type",
			data: map[data.DependencyKey]any{
				data.DepSmokeReport: "not a report",
			},
			expectedStatus: checks.StatusError,
		},
		{
			name: "expected embedding",
			data: map[data.DependencyKey]any{
				data.DepSmokeReport: &models.SmokeReport{OK: true, Rows: 50, Cols: 2},
			},
			expectedStatus: checks.StatusPass,
		},
		{
			name: "probe did not run",
			data: map[data.DependencyKey]any{
				data.DepSmokeReport: &models.SmokeReport{Detail: "Traceback (most recent call last): ..."},
			},
			expectedStatus: checks.StatusFail,
		},
		{
			name: "wrong shape",
			data: map[data.DependencyKey]any{
				data.DepSmokeReport: &models.SmokeReport{OK: true, Rows: 50, Cols: 3},
			},
			expectedStatus: checks.StatusFail,
		},
		{
			name: "missing operator attributes",
			data: map[data.DependencyKey]any{
				data.DepSmokeReport: &models.SmokeReport{OK: true, Rows: 50, Cols: 2, MissingAttrs: []string{"autocorr_op"}},
			},
			expectedStatus: checks.StatusFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := &FunctionalitySmokeCheck{}
			dc := data.NewMapDataContext(tt.data)
			result, err := check.Evaluate(context.Background(), "tphate", dc)
			if err != nil {
				t.Fatalf("Evaluate error: %v", err)
			}
			if result.Status != tt.expectedStatus {
				t.Errorf("want %v, got %v (message: %s)", tt.expectedStatus, result.Status, result.Message)
			}
		})
	}
}
