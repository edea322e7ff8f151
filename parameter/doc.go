// Package parameter holds model-independent parameter records.
//
// A PureRecord identifies one substance and carries a model-specific record
// plus an optional Joback ideal-gas record. A BinaryRecord carries a
// model-specific correction for an unordered pair of substances. Binary
// records are matched to pure records through one IdentifierOption:
//
//	pure, err := parameter.DecodePure[pcsaft.Record](raw)
//	binary, err := parameter.DecodeBinary[pcsaft.BinaryRecord](rawBinary)
//	matrix, err := parameter.BinaryMatrix(pure, binary, parameter.Name, parameter.Strict)
//
// Records are values; nothing in this package mutates a record after decoding.
package parameter
