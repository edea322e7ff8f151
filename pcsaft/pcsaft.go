package pcsaft

import (
	"math"

	"github.com/wippyai/feos-abi/dual"
)

// Universal constants of the dispersion integrals.
var (
	a0 = [7]float64{0.9105631445, 0.6361281449, 2.6861347891, -26.547362491, 97.759208784, -159.59154087, 91.297774084}
	a1 = [7]float64{-0.3084016918, 0.1860531159, -2.5030047259, 21.419793629, -65.255885330, 83.318680481, -33.746922930}
	a2 = [7]float64{-0.0906148351, 0.4527842806, 0.5962700728, -1.7241829131, -4.1302112531, 13.776631870, -8.6728470368}
	b0 = [7]float64{0.7240946941, 2.2382791861, -4.0025849485, -21.003576815, 26.855641363, 206.55133841, -355.60235612}
	b1 = [7]float64{-0.5755498075, 0.6995095521, 3.8925673390, -17.215471648, 192.67226447, -161.82646165, -165.20769346}
	b2 = [7]float64{0.0976883116, -0.2557574982, -9.1558561530, 20.642075974, -38.804430052, 93.626774077, -29.666905585}
)

const frac6pi = math.Pi / 6

// PcSaft is the residual PC-SAFT model. It is immutable and safe for
// concurrent use.
type PcSaft struct {
	params *Parameters
}

// New wraps a parameter set.
func New(p *Parameters) *PcSaft {
	return &PcSaft{params: p}
}

func (s *PcSaft) Parameters() *Parameters { return s.params }

func (s *PcSaft) Components() int { return s.params.Components() }

// MolarWeight returns molar weights in g/mol.
func (s *PcSaft) MolarWeight() []float64 { return s.params.MolarWeight }

// MaxDensity is the number density (molecules/Å³) at which segments of
// diameter σ would fill space completely.
func (s *PcSaft) MaxDensity(moles []float64) float64 {
	var total, packing float64
	for i, n := range moles {
		total += n
		packing += n * s.params.M[i] * s.params.Sigma[i] * s.params.Sigma[i] * s.params.Sigma[i]
	}
	return total / (frac6pi * packing)
}

// HelmholtzEnergy returns A^res/k_B in K for temperature t (K), volume v
// (Å³) and mole numbers n (molecules).
func (s *PcSaft) HelmholtzEnergy(t, v dual.HD, n []float64) dual.HD {
	hc, disp := s.Contributions(t, v, n)
	var total float64
	for _, ni := range n {
		total += ni
	}
	return hc.Add(disp).Mul(t).Scale(total)
}

// Contributions returns the hard-chain and dispersion parts of
// A^res/(N k_B T), per molecule.
func (s *PcSaft) Contributions(t, v dual.HD, n []float64) (hardChain, dispersion dual.HD) {
	p := s.params
	x, total := normalize(n)
	rho := v.Inv().Scale(total)

	d := make([]dual.HD, len(x))
	for i := range x {
		d[i] = t.Inv().Scale(-3 * p.EpsilonK[i]).Exp().Scale(-0.12).AddReal(1).Scale(p.Sigma[i])
	}

	var meanM float64
	var zeta [4]dual.HD
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		meanM += xi * p.M[i]
		dk := dual.Real(xi * p.M[i])
		for k := 0; k < 4; k++ {
			zeta[k] = zeta[k].Add(dk)
			dk = dk.Mul(d[i])
		}
	}
	for k := range zeta {
		zeta[k] = zeta[k].Mul(rho).Scale(frac6pi)
	}

	hardChain = hardSphere(zeta).Scale(meanM)
	for i, xi := range x {
		if xi == 0 || p.M[i] == 1 {
			continue
		}
		g := contactValue(zeta, d[i].Scale(0.5))
		hardChain = hardChain.Sub(g.Log().Scale(xi * (p.M[i] - 1)))
	}

	dispersion = s.dispersion(t, rho, x, meanM, zeta[3])
	return hardChain, dispersion
}

// hardSphere is the Boublík–Mansoori hard-sphere term per segment.
func hardSphere(z [4]dual.HD) dual.HD {
	frac := z[3].Neg().AddReal(1)
	z2cube := z[2].Powi(3)
	t1 := z[1].Mul(z[2]).Scale(3).Div(frac)
	t2 := z2cube.Div(z[3].Mul(frac.Powi(2)))
	t3 := z2cube.Div(z[3].Powi(2)).Sub(z[0]).Mul(frac.Log())
	return dual.Sum(t1, t2, t3).Div(z[0])
}

// contactValue is the hard-sphere pair correlation at contact for a pair
// with reduced diameter dij = d_i d_j/(d_i + d_j).
func contactValue(z [4]dual.HD, dij dual.HD) dual.HD {
	frac := z[3].Neg().AddReal(1)
	t1 := frac.Inv()
	t2 := dij.Mul(z[2]).Scale(3).Div(frac.Powi(2))
	t3 := dij.Powi(2).Mul(z[2].Powi(2)).Scale(2).Div(frac.Powi(3))
	return dual.Sum(t1, t2, t3)
}

func (s *PcSaft) dispersion(t, rho dual.HD, x []float64, meanM float64, eta dual.HD) dual.HD {
	p := s.params

	var sum1, sum2 float64
	for i, xi := range x {
		for j, xj := range x {
			e := p.epsilonKIJ[i][j]
			w := xi * xj * p.mm[i][j] * p.sigmaIJ3[i][j]
			sum1 += w * e
			sum2 += w * e * e
		}
	}
	invT := t.Inv()
	m2es3 := invT.Scale(sum1)
	m2e2s3 := invT.Powi(2).Scale(sum2)

	m1 := (meanM - 1) / meanM
	m2 := m1 * (meanM - 2) / meanM
	ac := make([]dual.HD, 7)
	bc := make([]dual.HD, 7)
	for i := 0; i < 7; i++ {
		ac[i] = dual.Real(a0[i] + m1*a1[i] + m2*a2[i])
		bc[i] = dual.Real(b0[i] + m1*b1[i] + m2*b2[i])
	}
	i1 := dual.Poly(ac, eta)
	i2 := dual.Poly(bc, eta)

	c1 := compressibilityTerm(eta, meanM).Inv()

	t1 := rho.Mul(i1).Mul(m2es3).Scale(-2 * math.Pi)
	t2 := rho.Mul(c1).Mul(i2).Mul(m2e2s3).Scale(-math.Pi * meanM)
	return t1.Add(t2)
}

// compressibilityTerm is 1 + Z_hc + ρ ∂Z_hc/∂ρ, the inverse of C1.
func compressibilityTerm(eta dual.HD, m float64) dual.HD {
	one := eta.Neg().AddReal(1)
	two := eta.Neg().AddReal(2)
	eta2 := eta.Powi(2)
	t1 := eta.Scale(8).Sub(eta2.Scale(2)).Div(one.Powi(4)).Scale(m)
	num := dual.Sum(eta.Scale(20), eta2.Scale(-27), eta.Powi(3).Scale(12), eta.Powi(4).Scale(-2))
	t2 := num.Div(one.Mul(two).Powi(2)).Scale(1 - m)
	return t1.Add(t2).AddReal(1)
}

func normalize(n []float64) ([]float64, float64) {
	var total float64
	for _, ni := range n {
		total += ni
	}
	x := make([]float64, len(n))
	for i, ni := range n {
		x[i] = ni / total
	}
	return x, total
}
