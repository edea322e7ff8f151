package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/feos-abi/config"
)

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <scenario.yaml>",
		Short: "evaluate every state point of a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Load(args[0])
			if err != nil {
				return err
			}
			path := s.ModelPath()
			if modelFile != "" {
				path = modelFile
			}
			e, err := loadModel(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if s.Name != "" {
				fmt.Fprintf(out, "# %s\n", s.Name)
			}
			failed := 0
			for i, p := range s.States {
				fmt.Fprintf(out, "\n## %s\n", p.Label(i))
				st, err := p.Build(e)
				if err != nil {
					failed++
					fmt.Fprintf(out, "error: %v\n", err)
					continue
				}
				rows, err := properties(st)
				if err != nil {
					failed++
					fmt.Fprintf(out, "error: %v\n", err)
					continue
				}
				rows = append(rows, derivatives(st, s.Derivatives)...)
				if err := writeRows(out, rows); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d states failed", failed, len(s.States))
			}
			return nil
		},
	}
}
