package factory

import (
	"github.com/wippyai/feos-abi/eos"
	"github.com/wippyai/feos-abi/errors"
	"github.com/wippyai/feos-abi/parameter"
	"github.com/wippyai/feos-abi/pcsaft"
)

func init() {
	if err := Register(Registration{
		Kind:    PcSaft,
		Aliases: []string{"pc-saft", "pcsaft"},
		Build:   buildPcSaft,
	}); err != nil {
		panic(err)
	}
}

func buildPcSaft(doc *Document) (*eos.EquationOfState, error) {
	pure, err := parameter.DecodePure[pcsaft.Record](doc.SubstanceParameters)
	if err != nil {
		return nil, err
	}
	binary, err := parameter.DecodeBinary[pcsaft.BinaryRecord](doc.BinaryParameters)
	if err != nil {
		return nil, err
	}
	params, err := pcsaft.FromRecords(pure, binary, doc.IdentifierOption)
	if err != nil {
		return nil, err
	}
	return PcSaftEOS(params)
}

// PcSaftEOS composes an equation of state from PC-SAFT parameters. The
// ideal-gas part is Joback when every record carries an ideal-gas record,
// otherwise there is no ideal-gas model. Documents and parameter files
// follow the same rule.
func PcSaftEOS(params *pcsaft.Parameters) (*eos.EquationOfState, error) {
	if params == nil {
		return nil, errors.NilPointer(errors.PhaseBuild, "PC-SAFT parameters")
	}
	ideal := eos.NoIdealGas(params.Components())
	if joback, ok := params.Joback(); ok {
		ideal = eos.NewJoback(joback)
	}
	return eos.New(ideal, pcsaft.New(params))
}
