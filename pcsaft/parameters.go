package pcsaft

import (
	"math"

	"github.com/wippyai/feos-abi/errors"
	"github.com/wippyai/feos-abi/parameter"
)

// Parameters is the immutable PC-SAFT parameter set of a mixture.
type Parameters struct {
	M           []float64
	Sigma       []float64
	EpsilonK    []float64
	MolarWeight []float64
	KIJ         [][]float64
	Records     []parameter.PureRecord[Record]

	sigmaIJ3   [][]float64 // σ_ij³
	epsilonKIJ [][]float64 // √(ε_i ε_j)(1 − k_ij)
	mm         [][]float64 // m_i m_j
}

// NewParameters assembles a parameter set; binary may be nil.
func NewParameters(pure []parameter.PureRecord[Record], binary [][]BinaryRecord) (*Parameters, error) {
	n := len(pure)
	if n == 0 {
		return nil, errors.InvalidData(errors.PhaseBuild, nil, "parameter set needs at least one substance")
	}
	if binary != nil && len(binary) != n {
		return nil, errors.LengthMismatch(errors.PhaseBuild, "binary matrix", len(binary), n)
	}

	p := &Parameters{
		M:           make([]float64, n),
		Sigma:       make([]float64, n),
		EpsilonK:    make([]float64, n),
		MolarWeight: make([]float64, n),
		KIJ:         square(n),
		Records:     append([]parameter.PureRecord[Record](nil), pure...),
		sigmaIJ3:    square(n),
		epsilonKIJ:  square(n),
		mm:          square(n),
	}
	for i, r := range pure {
		if err := r.ModelRecord.Validate(); err != nil {
			return nil, errors.Wrap(errors.PhaseBuild, errors.KindInvalidData, err, r.Identifier.String())
		}
		p.M[i] = r.ModelRecord.M
		p.Sigma[i] = r.ModelRecord.Sigma
		p.EpsilonK[i] = r.ModelRecord.EpsilonK
		p.MolarWeight[i] = r.MolarWeight
	}
	for i := range binary {
		if len(binary[i]) != n {
			return nil, errors.LengthMismatch(errors.PhaseBuild, "binary matrix row", len(binary[i]), n)
		}
		for j := range binary[i] {
			if binary[i][j] != binary[j][i] {
				return nil, errors.InvalidData(errors.PhaseBuild, nil, "binary matrix is not symmetric")
			}
			p.KIJ[i][j] = binary[i][j].KIJ
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s := 0.5 * (p.Sigma[i] + p.Sigma[j])
			p.sigmaIJ3[i][j] = s * s * s
			p.epsilonKIJ[i][j] = math.Sqrt(p.EpsilonK[i]*p.EpsilonK[j]) * (1 - p.KIJ[i][j])
			p.mm[i][j] = p.M[i] * p.M[j]
		}
	}
	return p, nil
}

// FromRecords builds parameters from decoded records. Every binary record
// must match two pure records.
func FromRecords(pure []parameter.PureRecord[Record], binary []parameter.BinaryRecord[BinaryRecord], opt parameter.IdentifierOption) (*Parameters, error) {
	matrix, err := parameter.BinaryMatrix(pure, binary, opt, parameter.Strict)
	if err != nil {
		return nil, err
	}
	return NewParameters(pure, matrix)
}

// FromFiles builds parameters for substances taken from parameter databases.
func FromFiles(substances []string, pureFile, binaryFile string, opt parameter.IdentifierOption) (*Parameters, error) {
	pure, matrix, err := parameter.FromFiles[Record, BinaryRecord](substances, pureFile, binaryFile, opt)
	if err != nil {
		return nil, err
	}
	return NewParameters(pure, matrix)
}

// Components returns the number of substances.
func (p *Parameters) Components() int { return len(p.M) }

// Joback returns the ideal-gas records when every substance carries one.
func (p *Parameters) Joback() ([]parameter.JobackRecord, bool) {
	out := make([]parameter.JobackRecord, len(p.Records))
	for i, r := range p.Records {
		if r.IdealGasRecord == nil {
			return nil, false
		}
		out[i] = *r.IdealGasRecord
	}
	return out, true
}

func square(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}
