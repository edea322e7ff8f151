// Package dual implements hyper-dual numbers.
//
// A hyper-dual number a + b·ε1 + c·ε2 + d·ε1ε2 with ε1² = ε2² = 0 carries a
// function value, two first partial derivatives and the mixed second
// derivative through ordinary arithmetic. Seeding the same variable in both
// ε1 and ε2 yields the pure second derivative.
package dual

import "math"

// HD is a hyper-dual number.
type HD struct {
	Re  float64
	E1  float64
	E2  float64
	E12 float64
}

// Real returns a constant.
func Real(v float64) HD { return HD{Re: v} }

// Var1 seeds v in the ε1 direction.
func Var1(v float64) HD { return HD{Re: v, E1: 1} }

// Var2 seeds v in the ε2 direction.
func Var2(v float64) HD { return HD{Re: v, E2: 1} }

// Var12 seeds v in both directions, for pure second derivatives.
func Var12(v float64) HD { return HD{Re: v, E1: 1, E2: 1} }

func (a HD) Add(b HD) HD {
	return HD{a.Re + b.Re, a.E1 + b.E1, a.E2 + b.E2, a.E12 + b.E12}
}

func (a HD) Sub(b HD) HD {
	return HD{a.Re - b.Re, a.E1 - b.E1, a.E2 - b.E2, a.E12 - b.E12}
}

func (a HD) Mul(b HD) HD {
	return HD{
		Re:  a.Re * b.Re,
		E1:  a.Re*b.E1 + a.E1*b.Re,
		E2:  a.Re*b.E2 + a.E2*b.Re,
		E12: a.Re*b.E12 + a.E1*b.E2 + a.E2*b.E1 + a.E12*b.Re,
	}
}

func (a HD) Div(b HD) HD {
	return a.Mul(b.Inv())
}

// AddReal adds a constant.
func (a HD) AddReal(v float64) HD {
	a.Re += v
	return a
}

// Scale multiplies by a constant.
func (a HD) Scale(v float64) HD {
	return HD{a.Re * v, a.E1 * v, a.E2 * v, a.E12 * v}
}

func (a HD) Neg() HD {
	return a.Scale(-1)
}

// chain applies a scalar function given its value and first two derivatives at a.Re.
func (a HD) chain(f0, f1, f2 float64) HD {
	return HD{
		Re:  f0,
		E1:  f1 * a.E1,
		E2:  f1 * a.E2,
		E12: f1*a.E12 + f2*a.E1*a.E2,
	}
}

func (a HD) Inv() HD {
	r := 1 / a.Re
	return a.chain(r, -r*r, 2*r*r*r)
}

func (a HD) Exp() HD {
	e := math.Exp(a.Re)
	return a.chain(e, e, e)
}

func (a HD) Log() HD {
	r := 1 / a.Re
	return a.chain(math.Log(a.Re), r, -r*r)
}

func (a HD) Sqrt() HD {
	s := math.Sqrt(a.Re)
	return a.chain(s, 0.5/s, -0.25/(s*a.Re))
}

// Powi raises a to an integer power.
func (a HD) Powi(n int) HD {
	switch n {
	case 0:
		return Real(1)
	case 1:
		return a
	case 2:
		return a.Mul(a)
	}
	fn := float64(n)
	p := math.Pow(a.Re, fn-2)
	return a.chain(p*a.Re*a.Re, fn*p*a.Re, fn*(fn-1)*p)
}

// Sum adds all terms.
func Sum(terms ...HD) HD {
	var s HD
	for _, t := range terms {
		s = s.Add(t)
	}
	return s
}

// Poly evaluates Σ c[i]·x^i.
func Poly(c []HD, x HD) HD {
	var r HD
	for i := len(c) - 1; i >= 0; i-- {
		r = r.Mul(x).Add(c[i])
	}
	return r
}
