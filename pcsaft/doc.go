// Package pcsaft implements the non-associating, non-polar PC-SAFT residual
// Helmholtz energy (Gross and Sadowski, 2001) on hyper-dual numbers.
//
// The model consumes Parameters built from pure and binary records and
// evaluates A^res/k_B for a temperature, a volume and a mole-number vector
// in reduced units (K, Å³, molecules). Derivatives with respect to
// temperature and volume come from the hyper-dual parts of the inputs.
//
//	params, err := pcsaft.FromRecords(pure, binary, parameter.Name)
//	model := pcsaft.New(params)
//	a := model.HelmholtzEnergy(dual.Real(300), dual.Var12(v), moles)
package pcsaft
