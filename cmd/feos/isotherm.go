package main

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	feos "github.com/wippyai/feos-abi"
	"github.com/wippyai/feos-abi/eos"
	"github.com/wippyai/feos-abi/errors"
	"github.com/wippyai/feos-abi/si"
)

// isotherm samples the total pressure in bar at n densities between from
// and to (mol/m³). Points that fail to evaluate are NaN.
func isotherm(e *eos.EquationOfState, temperature float64, x []float64, from, to float64, n int) ([]float64, []float64, error) {
	if n < 2 || !(to > from) || from <= 0 {
		return nil, nil, errors.InvalidInput(errors.PhaseEvaluate, "isotherm needs from > 0, to > from and at least two points")
	}
	rho := make([]float64, n)
	p := make([]float64, n)
	for i := range rho {
		rho[i] = from + (to-from)*float64(i)/float64(n-1)
		s, err := eos.NewBuilder(e).
			Temperature(si.Kelvin(temperature)).
			Density(si.MolPerCubicMeter(rho[i])).
			Molefracs(x).
			Build()
		if err != nil {
			return nil, nil, err
		}
		v, err := si.ToBar(s.Pressure(feos.Total))
		if err != nil {
			v = math.NaN()
		}
		p[i] = v
	}
	return rho, p, nil
}

func newIsothermCmd() *cobra.Command {
	var (
		temperature float64
		molefracs   []float64
		from, to    float64
		points      int
		height      int
	)

	cmd := &cobra.Command{
		Use:   "isotherm",
		Short: "plot pressure against density at fixed temperature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadModel(modelFile)
			if err != nil {
				return err
			}
			rho, p, err := isotherm(e, temperature, molefracs, from, to, points)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			graph := asciigraph.Plot(p,
				asciigraph.Height(height),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("p [bar] at %g K, ρ from %g to %g mol/m³", temperature, rho[0], rho[len(rho)-1])))
			fmt.Fprintln(out, graph)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&temperature, "temperature", "T", 298.15, "temperature [K]")
	cmd.Flags().Float64SliceVar(&molefracs, "molefracs", nil, "mole fractions")
	cmd.Flags().Float64Var(&from, "from", 10, "lowest density [mol/m³]")
	cmd.Flags().Float64Var(&to, "to", 10000, "highest density [mol/m³]")
	cmd.Flags().IntVar(&points, "points", 80, "number of samples")
	cmd.Flags().IntVar(&height, "height", 15, "plot height in lines")
	return cmd
}
