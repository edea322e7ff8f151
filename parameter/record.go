package parameter

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/wippyai/feos-abi/errors"
)

// JobackRecord holds the Joback ideal-gas heat capacity polynomial
// cp(T) = a + b·T + c·T² + d·T³ + e·T⁴ in J/(mol·K).
type JobackRecord struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
	D float64 `json:"d"`
	E float64 `json:"e"`
}

// PureRecord describes one substance.
type PureRecord[M any] struct {
	Identifier     Identifier    `json:"identifier"`
	MolarWeight    float64       `json:"molarweight"`
	ModelRecord    M             `json:"model_record"`
	IdealGasRecord *JobackRecord `json:"ideal_gas_record,omitempty"`
}

// BinaryRecord describes the interaction of an unordered pair of substances.
type BinaryRecord[B any] struct {
	ID1         Identifier `json:"id1"`
	ID2         Identifier `json:"id2"`
	ModelRecord B          `json:"model_record"`
}

// Validator is implemented by model records that constrain their values.
type Validator interface {
	Validate() error
}

// DecodePure decodes and validates a JSON array of pure records.
func DecodePure[M any](raw []byte) ([]PureRecord[M], error) {
	var records []PureRecord[M]
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errors.Wrap(errors.PhaseParameters, errors.KindInvalidData, err, "decode pure records")
	}
	if len(records) == 0 {
		return nil, errors.InvalidData(errors.PhaseParameters, nil, "no pure records")
	}
	for i := range records {
		if err := records[i].validate(i); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// DecodeBinary decodes a JSON array of binary records. Empty input and JSON
// null decode to no records.
func DecodeBinary[B any](raw []byte) ([]BinaryRecord[B], error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var records []BinaryRecord[B]
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errors.Wrap(errors.PhaseParameters, errors.KindInvalidData, err, "decode binary records")
	}
	for i, r := range records {
		if v, ok := any(r.ModelRecord).(Validator); ok {
			if err := v.Validate(); err != nil {
				return nil, errors.New(errors.PhaseParameters, errors.KindInvalidData).
					Path("binary_parameters", strconv.Itoa(i), "model_record").
					Cause(err).
					Build()
			}
		}
	}
	return records, nil
}

func (r *PureRecord[M]) validate(i int) error {
	path := []string{"substance_parameters", strconv.Itoa(i)}
	if !(r.MolarWeight > 0) || math.IsInf(r.MolarWeight, 0) {
		return errors.New(errors.PhaseParameters, errors.KindInvalidData).
			Path(append(path, "molarweight")...).
			Value(r.MolarWeight).
			Detail("molar weight of %s must be positive", r.Identifier).
			Build()
	}
	if v, ok := any(r.ModelRecord).(Validator); ok {
		if err := v.Validate(); err != nil {
			return errors.New(errors.PhaseParameters, errors.KindInvalidData).
				Path(append(path, "model_record")...).
				Detail("%s", r.Identifier).
				Cause(err).
				Build()
		}
	}
	return nil
}
