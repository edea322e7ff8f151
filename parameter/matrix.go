package parameter

import (
	"strconv"

	"github.com/wippyai/feos-abi/errors"
)

// MatchMode controls binary records whose pair is not among the pure records.
type MatchMode uint8

const (
	// Strict rejects unmatched binary records.
	Strict MatchMode = iota
	// Subset skips them, for records taken from a larger database.
	Subset
)

// BinaryMatrix builds the symmetric n×n matrix of binary model records.
// Pairs without a record hold the zero value of B.
func BinaryMatrix[M, B any](pure []PureRecord[M], binary []BinaryRecord[B], opt IdentifierOption, mode MatchMode) ([][]B, error) {
	n := len(pure)
	matrix := make([][]B, n)
	for i := range matrix {
		matrix[i] = make([]B, n)
	}
	if len(binary) == 0 {
		return matrix, nil
	}

	index := make(map[string]int, n)
	for i, r := range pure {
		key, ok := r.Identifier.As(opt)
		if !ok {
			continue
		}
		if j, dup := index[key]; dup {
			return nil, errors.New(errors.PhaseParameters, errors.KindIdentifierMismatch).
				Path("substance_parameters", strconv.Itoa(i), "identifier", opt.String()).
				Value(key).
				Detail("%s %q is shared by substances %d and %d", opt, key, j, i).
				Build()
		}
		index[key] = i
	}

	seen := make(map[[2]int]int, len(binary))
	for k, r := range binary {
		path := []string{"binary_parameters", strconv.Itoa(k)}
		i, okI, err := lookup(index, r.ID1, opt, mode, append(path, "id1"))
		if err != nil {
			return nil, err
		}
		j, okJ, err := lookup(index, r.ID2, opt, mode, append(path, "id2"))
		if err != nil {
			return nil, err
		}
		if !okI || !okJ {
			continue
		}
		if i == j {
			return nil, errors.InvalidData(errors.PhaseParameters, path,
				"binary record pairs "+r.ID1.String()+" with itself")
		}
		pair := [2]int{min(i, j), max(i, j)}
		if prev, dup := seen[pair]; dup {
			return nil, errors.InvalidData(errors.PhaseParameters, path,
				"duplicate binary record, first given at index "+strconv.Itoa(prev))
		}
		seen[pair] = k
		matrix[i][j] = r.ModelRecord
		matrix[j][i] = r.ModelRecord
	}
	return matrix, nil
}

func lookup(index map[string]int, id Identifier, opt IdentifierOption, mode MatchMode, path []string) (int, bool, error) {
	key, ok := id.As(opt)
	if !ok {
		if mode == Subset {
			return 0, false, nil
		}
		return 0, false, errors.New(errors.PhaseParameters, errors.KindIdentifierMismatch).
			Path(path...).
			Detail("binary record identifier has no %s", opt).
			Build()
	}
	i, found := index[key]
	if !found && mode == Strict {
		return 0, false, errors.New(errors.PhaseParameters, errors.KindIdentifierMismatch).
			Path(path...).
			Value(key).
			Detail("no pure record with %s %q", opt, key).
			Build()
	}
	return i, found, nil
}
