package main

import (
	"github.com/spf13/cobra"

	"github.com/wippyai/feos-abi/eos"
	"github.com/wippyai/feos-abi/si"
)

func newDeriveCmd() *cobra.Command {
	var (
		temperature float64
		density     float64
		molefracs   []float64
		orderT      int
		orderRho    int
	)

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "residual Helmholtz energy derivatives at temperature, density and composition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadModel(modelFile)
			if err != nil {
				return err
			}
			s, err := eos.NewBuilder(e).
				Temperature(si.Kelvin(temperature)).
				Density(si.MolPerCubicMeter(density)).
				Molefracs(molefracs).
				Build()
			if err != nil {
				return err
			}

			if orderT < 0 && orderRho < 0 {
				return writeRows(cmd.OutOrStdout(), derivatives(s, eos.Orders()))
			}
			v, err := s.ResidualDerivative(max(orderT, 0), max(orderRho, 0))
			if err != nil {
				return err
			}
			o := [2]int{max(orderT, 0), max(orderRho, 0)}
			return writeRows(cmd.OutOrStdout(), []row{{"value", num(v), derivativeUnit(o)}})
		},
	}

	cmd.Flags().Float64VarP(&temperature, "temperature", "T", 298.15, "temperature [K]")
	cmd.Flags().Float64VarP(&density, "density", "d", 0, "molar density [mol/m³]")
	cmd.Flags().Float64SliceVar(&molefracs, "molefracs", nil, "mole fractions")
	cmd.Flags().IntVar(&orderT, "order-t", -1, "temperature order (default: all supported orders)")
	cmd.Flags().IntVar(&orderRho, "order-rho", -1, "density order (default: all supported orders)")
	_ = cmd.MarkFlagRequired("density")
	return cmd
}
