// Command feos evaluates equation-of-state properties from a model
// configuration document.
//
//	feos state -m model.json -T 300 -p 1 --moles 0.9,0.1 --phase vapor
//	feos derive -m model.json -T 300 --density 10000 --molefracs 0.1,0.9
//	feos isotherm -m model.json -T 300 --molefracs 1 --to 8000
//	feos batch scenario.yaml
//	feos explore -m model.json
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/feos-abi/boundary"
	"github.com/wippyai/feos-abi/eos"
	"github.com/wippyai/feos-abi/errors"
	"github.com/wippyai/feos-abi/factory"
	"github.com/wippyai/feos-abi/wasmhost"
)

var (
	modelFile string
	verbose   bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "feos",
		Short:         "equation-of-state properties from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !verbose {
				return nil
			}
			l, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			boundary.SetLogger(l.Named("boundary"))
			wasmhost.SetLogger(l.Named("wasmhost"))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&modelFile, "model", "m", "", "model configuration document (JSON)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		newModelsCmd(),
		newStateCmd(),
		newDeriveCmd(),
		newIsothermCmd(),
		newBatchCmd(),
		newExploreCmd(),
	)
	return root
}

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "list registered model names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range factory.Models() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

// loadModel reads and builds the equation of state in path.
func loadModel(path string) (*eos.EquationOfState, error) {
	if path == "" {
		return nil, errors.FieldMissing(errors.PhaseParse, nil, "--model")
	}
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindNotFound, err, "read model document")
	}
	return factory.FromJSON(doc)
}
