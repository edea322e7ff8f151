package feos

import "testing"

func TestContributionsFromCode(t *testing.T) {
	tests := []struct {
		code int32
		want Contributions
	}{
		{0, IdealGas},
		{1, Residual},
		{2, Total},
		{-1, Total},
		{42, Total},
	}
	for _, tt := range tests {
		if got := ContributionsFromCode(tt.code); got != tt.want {
			t.Errorf("ContributionsFromCode(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestParsePhaseHint(t *testing.T) {
	tests := []struct {
		in   string
		want PhaseHint
	}{
		{"liquid", Liquid},
		{"Liquid", Liquid},
		{" vapor ", Vapor},
		{"VAPOR", Vapor},
		{"", NoHint},
		{"gas", NoHint},
		{"supercritical", NoHint},
	}
	for _, tt := range tests {
		if got := ParsePhaseHint(tt.in); got != tt.want {
			t.Errorf("ParsePhaseHint(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
