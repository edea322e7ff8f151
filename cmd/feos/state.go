package main

import (
	"github.com/spf13/cobra"

	feos "github.com/wippyai/feos-abi"
	"github.com/wippyai/feos-abi/eos"
	"github.com/wippyai/feos-abi/si"
)

func newStateCmd() *cobra.Command {
	var (
		temperature float64
		pressure    float64
		moles       []float64
		phase       string
		orders      bool
	)

	cmd := &cobra.Command{
		Use:   "state",
		Short: "solve a state at temperature, pressure and composition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadModel(modelFile)
			if err != nil {
				return err
			}
			if moles == nil && e.Components() == 1 {
				moles = []float64{1}
			}
			s, err := eos.NewBuilder(e).
				Temperature(si.Kelvin(temperature)).
				Pressure(si.Bar(pressure)).
				Moles(moles).
				Phase(feos.ParsePhaseHint(phase)).
				Build()
			if err != nil {
				return err
			}

			rows, err := properties(s)
			if err != nil {
				return err
			}
			if orders {
				rows = append(rows, derivatives(s, eos.Orders())...)
			}
			return writeRows(cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().Float64VarP(&temperature, "temperature", "T", 298.15, "temperature [K]")
	cmd.Flags().Float64VarP(&pressure, "pressure", "p", 1, "pressure [bar]")
	cmd.Flags().Float64SliceVar(&moles, "moles", nil, "mole numbers [mol]")
	cmd.Flags().StringVar(&phase, "phase", "", "density root: liquid, vapor or empty for the stable one")
	cmd.Flags().BoolVar(&orders, "derivatives", false, "also print residual derivatives")
	return cmd
}
