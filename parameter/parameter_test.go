package parameter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	feoserrors "github.com/wippyai/feos-abi/errors"
)

type testRecord struct {
	M float64 `json:"m"`
}

func (r testRecord) Validate() error {
	if r.M <= 0 {
		return errors.New("m must be positive")
	}
	return nil
}

type testBinary struct {
	K float64 `json:"k_ij"`
}

const pureJSON = `[
	{"identifier": {"name": "methane", "cas": "74-82-8", "formula": "CH4"}, "molarweight": 16.043, "model_record": {"m": 1.0}},
	{"identifier": {"name": "ethane", "cas": "74-84-0", "formula": "C2H6"}, "molarweight": 30.07, "model_record": {"m": 1.6},
	 "ideal_gas_record": {"a": 1, "b": 2, "c": 3, "d": 4, "e": 5}},
	{"identifier": {"name": "propane", "cas": "74-98-6"}, "molarweight": 44.1, "model_record": {"m": 2.0}}
]`

func TestParseIdentifierOption(t *testing.T) {
	tests := []struct {
		in      string
		want    IdentifierOption
		wantErr bool
	}{
		{"name", Name, false},
		{"", Name, false},
		{"CAS", Cas, false},
		{"IupacName", IupacName, false},
		{"iupac_name", IupacName, false},
		{"smiles", Smiles, false},
		{"inchi", Inchi, false},
		{"Formula", Formula, false},
		{"weight", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseIdentifierOption(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseIdentifierOption(%q) err = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseIdentifierOption(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDecodePure(t *testing.T) {
	records, err := DecodePure[testRecord]([]byte(pureJSON))
	if err != nil {
		t.Fatalf("DecodePure: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records", len(records))
	}
	if records[1].ModelRecord.M != 1.6 || records[1].IdealGasRecord == nil || records[1].IdealGasRecord.E != 5 {
		t.Errorf("record 1 = %+v", records[1])
	}
	if records[0].IdealGasRecord != nil {
		t.Error("record 0 should have no ideal gas record")
	}
}

func TestDecodePure_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"malformed", `[{"identifier": `},
		{"empty", `[]`},
		{"no molar weight", `[{"identifier": {"name": "x"}, "model_record": {"m": 1}}]`},
		{"invalid model record", `[{"identifier": {"name": "x"}, "molarweight": 1, "model_record": {"m": -1}}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePure[testRecord]([]byte(tt.raw))
			if !errors.Is(err, feoserrors.Of(feoserrors.KindInvalidData)) {
				t.Errorf("err = %v, want invalid_data", err)
			}
		})
	}
}

func TestDecodeBinary_Empty(t *testing.T) {
	for _, raw := range []string{"", "null", "[]"} {
		records, err := DecodeBinary[testBinary]([]byte(raw))
		if err != nil || len(records) != 0 {
			t.Errorf("DecodeBinary(%q) = %v, %v", raw, records, err)
		}
	}
}

func TestBinaryMatrix(t *testing.T) {
	pure, _ := DecodePure[testRecord]([]byte(pureJSON))
	binary, err := DecodeBinary[testBinary]([]byte(`[
		{"id1": {"name": "methane"}, "id2": {"name": "propane"}, "model_record": {"k_ij": 0.03}}
	]`))
	if err != nil {
		t.Fatalf("DecodeBinary: %v", err)
	}

	m, err := BinaryMatrix(pure, binary, Name, Strict)
	if err != nil {
		t.Fatalf("BinaryMatrix: %v", err)
	}
	if m[0][2].K != 0.03 || m[2][0].K != 0.03 {
		t.Errorf("k_ij not symmetric: %v", m)
	}
	if m[0][1].K != 0 || m[1][1].K != 0 {
		t.Errorf("unset pairs should be zero: %v", m)
	}
}

func TestBinaryMatrix_ByCas(t *testing.T) {
	pure, _ := DecodePure[testRecord]([]byte(pureJSON))
	binary := []BinaryRecord[testBinary]{
		{ID1: Identifier{Cas: "74-84-0"}, ID2: Identifier{Cas: "74-98-6"}, ModelRecord: testBinary{K: 0.01}},
	}
	m, err := BinaryMatrix(pure, binary, Cas, Strict)
	if err != nil {
		t.Fatalf("BinaryMatrix: %v", err)
	}
	if m[1][2].K != 0.01 {
		t.Errorf("m[1][2] = %v", m[1][2])
	}
}

func TestBinaryMatrix_Unmatched(t *testing.T) {
	pure, _ := DecodePure[testRecord]([]byte(pureJSON))
	binary := []BinaryRecord[testBinary]{
		{ID1: Identifier{Name: "methanol"}, ID2: Identifier{Name: "propane"}, ModelRecord: testBinary{K: 0.05}},
	}

	_, err := BinaryMatrix(pure, binary, Name, Strict)
	if !errors.Is(err, feoserrors.Of(feoserrors.KindIdentifierMismatch)) {
		t.Fatalf("strict: err = %v, want identifier_mismatch", err)
	}

	m, err := BinaryMatrix(pure, binary, Name, Subset)
	if err != nil {
		t.Fatalf("subset: %v", err)
	}
	if m[0][2].K != 0 {
		t.Error("subset mode should ignore unmatched records")
	}

	// formula is missing on propane's binary identifier
	_, err = BinaryMatrix(pure, binary, Formula, Strict)
	if !errors.Is(err, feoserrors.Of(feoserrors.KindIdentifierMismatch)) {
		t.Errorf("missing identifier field: err = %v", err)
	}
}

func TestBinaryMatrix_Invalid(t *testing.T) {
	pure, _ := DecodePure[testRecord]([]byte(pureJSON))

	self := []BinaryRecord[testBinary]{{ID1: Identifier{Name: "methane"}, ID2: Identifier{Name: "methane"}}}
	if _, err := BinaryMatrix(pure, self, Name, Strict); err == nil {
		t.Error("self pair accepted")
	}

	dup := []BinaryRecord[testBinary]{
		{ID1: Identifier{Name: "methane"}, ID2: Identifier{Name: "ethane"}},
		{ID1: Identifier{Name: "ethane"}, ID2: Identifier{Name: "methane"}},
	}
	if _, err := BinaryMatrix(pure, dup, Name, Strict); err == nil {
		t.Error("duplicate pair accepted")
	}

	shared := append([]PureRecord[testRecord]{}, pure...)
	shared[1].Identifier.Name = "methane"
	one := []BinaryRecord[testBinary]{{ID1: Identifier{Name: "methane"}, ID2: Identifier{Name: "propane"}}}
	if _, err := BinaryMatrix(shared, one, Name, Strict); err == nil {
		t.Error("ambiguous pure identifiers accepted")
	}
}

func TestFromFiles(t *testing.T) {
	dir := t.TempDir()
	pureFile := filepath.Join(dir, "pure.json")
	binaryFile := filepath.Join(dir, "binary.json")
	if err := os.WriteFile(pureFile, []byte(pureJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	binaryJSON := `[
		{"id1": {"name": "methane"}, "id2": {"name": "propane"}, "model_record": {"k_ij": 0.03}},
		{"id1": {"name": "methanol"}, "id2": {"name": "propane"}, "model_record": {"k_ij": 0.05}}
	]`
	if err := os.WriteFile(binaryFile, []byte(binaryJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	pure, matrix, err := FromFiles[testRecord, testBinary]([]string{"propane", "methane"}, pureFile, binaryFile, Name)
	if err != nil {
		t.Fatalf("FromFiles: %v", err)
	}
	if len(pure) != 2 || pure[0].Identifier.Name != "propane" || pure[1].Identifier.Name != "methane" {
		t.Fatalf("selection order wrong: %+v", pure)
	}
	if matrix[0][1].K != 0.03 {
		t.Errorf("k_ij = %v", matrix[0][1].K)
	}

	_, _, err = FromFiles[testRecord, testBinary]([]string{"water"}, pureFile, "", Name)
	if !errors.Is(err, feoserrors.Of(feoserrors.KindNotFound)) {
		t.Errorf("missing substance: err = %v", err)
	}

	_, _, err = FromFiles[testRecord, testBinary]([]string{"methane"}, filepath.Join(dir, "nope.json"), "", Name)
	if !errors.Is(err, feoserrors.Of(feoserrors.KindNotFound)) {
		t.Errorf("missing file: err = %v", err)
	}

	_, _, err = FromFiles[testRecord, testBinary]([]string{"methane", "methane"}, pureFile, "", Name)
	if err == nil {
		t.Error("duplicate substance accepted")
	}
}
