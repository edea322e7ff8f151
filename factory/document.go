package factory

import (
	"encoding/json"

	"github.com/wippyai/feos-abi/errors"
	"github.com/wippyai/feos-abi/parameter"
)

// Document is a parsed configuration document. Parameter arrays stay raw
// so each model decodes its own record types.
type Document struct {
	Model               string
	SubstanceParameters json.RawMessage
	BinaryParameters    json.RawMessage
	IdentifierOption    parameter.IdentifierOption
}

// field names: canonical first, legacy alias second
var (
	modelField      = [2]string{"model", "residual_model"}
	substancesField = [2]string{"substance_parameters", "residual_substance_parameters"}
	binaryField     = [2]string{"binary_parameters", "residual_binary_parameters"}
)

// ParseDocument decodes the document envelope.
func ParseDocument(raw []byte) (*Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, errors.ParseFailed("configuration document", err)
	}
	if fields == nil {
		return nil, errors.InvalidData(errors.PhaseParse, nil, "configuration document is null")
	}

	doc := &Document{}

	model, name, err := pick(fields, modelField)
	if err != nil {
		return nil, err
	}
	if model == nil || string(model) == "null" {
		return nil, errors.FieldMissing(errors.PhaseParse, nil, modelField[0])
	}
	if err := json.Unmarshal(model, &doc.Model); err != nil {
		return nil, errors.New(errors.PhaseParse, errors.KindTypeMismatch).
			Path(name).Cause(err).Detail("model name must be a string").Build()
	}

	substances, _, err := pick(fields, substancesField)
	if err != nil {
		return nil, err
	}
	if substances == nil || string(substances) == "null" {
		return nil, errors.FieldMissing(errors.PhaseParse, nil, substancesField[0])
	}
	doc.SubstanceParameters = substances

	if doc.BinaryParameters, _, err = pick(fields, binaryField); err != nil {
		return nil, err
	}

	if opt, ok := fields["identifier_option"]; ok {
		var s string
		if err := json.Unmarshal(opt, &s); err != nil {
			return nil, errors.New(errors.PhaseParse, errors.KindTypeMismatch).
				Path("identifier_option").Cause(err).Detail("identifier option must be a string").Build()
		}
		if doc.IdentifierOption, err = parameter.ParseIdentifierOption(s); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// pick returns whichever spelling of a field is present.
func pick(fields map[string]json.RawMessage, names [2]string) (json.RawMessage, string, error) {
	canonical, hasCanonical := fields[names[0]]
	legacy, hasLegacy := fields[names[1]]
	switch {
	case hasCanonical && hasLegacy:
		return nil, "", errors.New(errors.PhaseParse, errors.KindInvalidData).
			Path(names[0]).
			Detail("both %q and %q given", names[0], names[1]).
			Build()
	case hasCanonical:
		return canonical, names[0], nil
	case hasLegacy:
		return legacy, names[1], nil
	default:
		return nil, "", nil
	}
}
