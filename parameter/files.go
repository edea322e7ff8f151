package parameter

import (
	"os"

	"github.com/wippyai/feos-abi/errors"
)

// FromFiles reads a pure-record database and an optional binary-record
// database and selects substances in the given order. binaryFile may be
// empty. Binary records for pairs outside the selection are ignored.
func FromFiles[M, B any](substances []string, pureFile, binaryFile string, opt IdentifierOption) ([]PureRecord[M], [][]B, error) {
	if len(substances) == 0 {
		return nil, nil, errors.InvalidInput(errors.PhaseParameters, "no substances requested")
	}

	raw, err := os.ReadFile(pureFile)
	if err != nil {
		return nil, nil, errors.Wrap(errors.PhaseParameters, errors.KindNotFound, err, "read pure parameter file")
	}
	all, err := DecodePure[M](raw)
	if err != nil {
		return nil, nil, err
	}
	pure, err := Select(all, substances, opt)
	if err != nil {
		return nil, nil, err
	}

	var binary []BinaryRecord[B]
	if binaryFile != "" {
		raw, err := os.ReadFile(binaryFile)
		if err != nil {
			return nil, nil, errors.Wrap(errors.PhaseParameters, errors.KindNotFound, err, "read binary parameter file")
		}
		if binary, err = DecodeBinary[B](raw); err != nil {
			return nil, nil, err
		}
	}

	matrix, err := BinaryMatrix(pure, binary, opt, Subset)
	if err != nil {
		return nil, nil, err
	}
	return pure, matrix, nil
}

// Select picks records by identifier in the order of substances.
func Select[M any](records []PureRecord[M], substances []string, opt IdentifierOption) ([]PureRecord[M], error) {
	byKey := make(map[string]int, len(records))
	for i, r := range records {
		if key, ok := r.Identifier.As(opt); ok {
			if _, dup := byKey[key]; !dup {
				byKey[key] = i
			}
		}
	}

	out := make([]PureRecord[M], 0, len(substances))
	used := make(map[string]bool, len(substances))
	for _, s := range substances {
		if used[s] {
			return nil, errors.InvalidInput(errors.PhaseParameters, "substance "+s+" requested twice")
		}
		i, ok := byKey[s]
		if !ok {
			return nil, errors.NotFound(errors.PhaseParameters, "substance "+opt.String(), s)
		}
		used[s] = true
		out = append(out, records[i])
	}
	return out, nil
}
