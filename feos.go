package feos

import "strings"

// Contributions selects which part of a property is evaluated.
type Contributions int32

const (
	IdealGas Contributions = iota
	Residual
	Total
)

// ContributionsFromCode maps the boundary selector: 0 ideal gas, 1 residual,
// anything else total.
func ContributionsFromCode(code int32) Contributions {
	switch code {
	case 0:
		return IdealGas
	case 1:
		return Residual
	default:
		return Total
	}
}

func (c Contributions) String() string {
	switch c {
	case IdealGas:
		return "ideal_gas"
	case Residual:
		return "residual"
	default:
		return "total"
	}
}

// PhaseHint selects the density root when a pressure specification admits
// more than one.
type PhaseHint uint8

const (
	NoHint PhaseHint = iota
	Liquid
	Vapor
)

// ParsePhaseHint maps "liquid" and "vapor" (any case) to their hints and
// everything else to NoHint.
func ParsePhaseHint(s string) PhaseHint {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "liquid":
		return Liquid
	case "vapor":
		return Vapor
	default:
		return NoHint
	}
}

func (p PhaseHint) String() string {
	switch p {
	case Liquid:
		return "liquid"
	case Vapor:
		return "vapor"
	default:
		return "none"
	}
}
