package pcsaft

import (
	"fmt"
	"math"

	"github.com/wippyai/feos-abi/errors"
)

// Record holds the PC-SAFT pure-component parameters.
// Association and polar fields are decoded so that nonzero values can be
// rejected instead of silently ignored.
type Record struct {
	M          float64 `json:"m"`
	Sigma      float64 `json:"sigma"`     // Å
	EpsilonK   float64 `json:"epsilon_k"` // K
	Mu         float64 `json:"mu,omitempty"`
	Q          float64 `json:"q,omitempty"`
	KappaAB    float64 `json:"kappa_ab,omitempty"`
	EpsilonKAB float64 `json:"epsilon_k_ab,omitempty"`
	NA         float64 `json:"na,omitempty"`
	NB         float64 `json:"nb,omitempty"`
}

// Validate checks ranges and rejects unsupported contributions.
func (r Record) Validate() error {
	if !(r.M > 0) || math.IsInf(r.M, 0) {
		return fmt.Errorf("segment number m must be positive, got %v", r.M)
	}
	if !(r.Sigma > 0) || math.IsInf(r.Sigma, 0) {
		return fmt.Errorf("segment diameter sigma must be positive, got %v", r.Sigma)
	}
	if !(r.EpsilonK >= 0) || math.IsInf(r.EpsilonK, 0) {
		return fmt.Errorf("dispersion energy epsilon_k must be non-negative, got %v", r.EpsilonK)
	}
	if r.Mu != 0 || r.Q != 0 {
		return errors.Unsupported(errors.PhaseParameters, "polar PC-SAFT contributions (mu, q)")
	}
	if r.KappaAB != 0 || r.EpsilonKAB != 0 || r.NA != 0 || r.NB != 0 {
		return errors.Unsupported(errors.PhaseParameters, "associating PC-SAFT contributions")
	}
	return nil
}

// BinaryRecord holds the correction k_ij to the Berthelot combining rule.
type BinaryRecord struct {
	KIJ float64 `json:"k_ij"`
}

// Validate requires a finite k_ij below one.
func (b BinaryRecord) Validate() error {
	if math.IsNaN(b.KIJ) || math.IsInf(b.KIJ, 0) || b.KIJ >= 1 {
		return fmt.Errorf("k_ij must be finite and below 1, got %v", b.KIJ)
	}
	return nil
}
