package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	feos "github.com/wippyai/feos-abi"
	"github.com/wippyai/feos-abi/eos"
	"github.com/wippyai/feos-abi/errors"
	"github.com/wippyai/feos-abi/si"
)

type row struct {
	name  string
	value string
	unit  string
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', 10, 64) }

// properties lists the state's scalar properties. The ideal-gas entropy
// rows are omitted when the model has no ideal-gas part.
func properties(s *eos.State) ([]row, error) {
	var rows []row
	add := func(name, unit string, v float64, err error) error {
		if err != nil {
			return err
		}
		rows = append(rows, row{name, num(v), unit})
		return nil
	}

	t, err := si.In(s.Temperature(), si.TemperatureDims)
	if err := add("temperature", "K", t, err); err != nil {
		return nil, err
	}
	p, err := si.ToBar(s.Pressure(feos.Total))
	if err := add("pressure", "bar", p, err); err != nil {
		return nil, err
	}
	rho, err := si.In(s.Density(), si.MolarDensityDims)
	if err := add("density", "mol/m³", rho, err); err != nil {
		return nil, err
	}
	mass, err := si.In(s.MassDensity(), si.MassDensityDims)
	if err := add("mass density", "kg/m³", mass, err); err != nil {
		return nil, err
	}

	for _, c := range []feos.Contributions{feos.Residual, feos.Total} {
		q, err := s.Entropy(c)
		if stderrors.Is(err, errors.Of(errors.KindUnsupported)) {
			continue
		}
		if err != nil {
			return nil, err
		}
		v, err := si.In(q, si.EntropyDims)
		if err := add(c.String()+" entropy", "J/K", v, err); err != nil {
			return nil, err
		}
	}

	stable := "no"
	if s.IsStable() {
		stable = "yes"
	}
	rows = append(rows, row{"stable", stable, ""})
	return rows, nil
}

// derivatives lists the residual derivatives for orders; an unsupported
// order is reported in its row.
func derivatives(s *eos.State, orders [][2]int) []row {
	rows := make([]row, 0, len(orders))
	for _, o := range orders {
		name := fmt.Sprintf("d(%d,%d) α", o[0], o[1])
		v, err := s.ResidualDerivative(o[0], o[1])
		if err != nil {
			rows = append(rows, row{name, "error: " + err.Error(), ""})
			continue
		}
		rows = append(rows, row{name, num(v), derivativeUnit(o)})
	}
	return rows
}

func derivativeUnit(o [2]int) string {
	var parts []string
	if o[0] > 0 {
		parts = append(parts, "K^-"+strconv.Itoa(o[0]))
	}
	if o[1] > 0 {
		parts = append(parts, "(m³/mol)^"+strconv.Itoa(o[1]))
	}
	return strings.Join(parts, " ")
}

func writeRows(w io.Writer, rows []row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.name, r.value, r.unit)
	}
	return tw.Flush()
}

// parseFloats parses a comma-separated list; empty input yields nil.
func parseFloats(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidInput, err, "parse number list")
		}
		out[i] = v
	}
	return out, nil
}
