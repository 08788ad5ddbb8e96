package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/portnet-lab/caseflow/pkg/domain/types"
)

func TestSeverity_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   types.Severity
		want types.Severity
	}{
		{
			name: "already uppercase",
			in:   types.SeverityCritical,
			want: types.SeverityCritical,
		},
		{
			name: "lowercase",
			in:   types.Severity("critical"),
			want: types.SeverityCritical,
		},
		{
			name: "mixed case",
			in:   types.Severity("High"),
			want: types.SeverityHigh,
		},
		{
			name: "unknown stays as-is uppercased",
			in:   types.Severity("weird"),
			want: types.Severity("WEIRD"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.in.Normalize()).Equal(tt.want)
		})
	}
}

func TestSeverity_IsCritical(t *testing.T) {
	gt.Value(t, types.SeverityCritical.IsCritical()).Equal(true)
	gt.Value(t, types.Severity("critical").IsCritical()).Equal(true)
	gt.Value(t, types.SeverityHigh.IsCritical()).Equal(false)
	gt.Value(t, types.Severity("").IsCritical()).Equal(false)
}
