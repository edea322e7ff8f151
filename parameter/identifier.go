package parameter

import (
	"strings"

	"github.com/wippyai/feos-abi/errors"
)

// Identifier names a chemical substance in several notations.
type Identifier struct {
	Cas       string `json:"cas,omitempty" yaml:"cas,omitempty"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	IupacName string `json:"iupac_name,omitempty" yaml:"iupac_name,omitempty"`
	Smiles    string `json:"smiles,omitempty" yaml:"smiles,omitempty"`
	Inchi     string `json:"inchi,omitempty" yaml:"inchi,omitempty"`
	Formula   string `json:"formula,omitempty" yaml:"formula,omitempty"`
}

// IdentifierOption selects which Identifier field is used for matching.
type IdentifierOption uint8

const (
	Name IdentifierOption = iota
	Cas
	IupacName
	Smiles
	Inchi
	Formula
)

var identifierOptions = map[string]IdentifierOption{
	"name":       Name,
	"cas":        Cas,
	"iupacname":  IupacName,
	"iupac_name": IupacName,
	"smiles":     Smiles,
	"inchi":      Inchi,
	"formula":    Formula,
}

// ParseIdentifierOption accepts name, cas, iupacname, formula, inchi and
// smiles in any case. An empty string selects Name.
func ParseIdentifierOption(s string) (IdentifierOption, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return Name, nil
	}
	opt, ok := identifierOptions[key]
	if !ok {
		return 0, errors.New(errors.PhaseParameters, errors.KindInvalidInput).
			Value(s).
			Detail("unknown identifier option %q (want name, cas, iupacname, formula, inchi or smiles)", s).
			Build()
	}
	return opt, nil
}

func (o IdentifierOption) String() string {
	switch o {
	case Name:
		return "name"
	case Cas:
		return "cas"
	case IupacName:
		return "iupac_name"
	case Smiles:
		return "smiles"
	case Inchi:
		return "inchi"
	case Formula:
		return "formula"
	default:
		return "unknown"
	}
}

// As returns the field selected by opt; ok is false when it is empty.
func (id Identifier) As(opt IdentifierOption) (string, bool) {
	var v string
	switch opt {
	case Name:
		v = id.Name
	case Cas:
		v = id.Cas
	case IupacName:
		v = id.IupacName
	case Smiles:
		v = id.Smiles
	case Inchi:
		v = id.Inchi
	case Formula:
		v = id.Formula
	}
	return v, v != ""
}

// String prefers the name, then CAS, then formula.
func (id Identifier) String() string {
	switch {
	case id.Name != "":
		return id.Name
	case id.Cas != "":
		return id.Cas
	case id.Formula != "":
		return id.Formula
	default:
		return "<unnamed>"
	}
}
