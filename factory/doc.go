// Package factory builds equations of state from JSON configuration
// documents.
//
// A document names a residual model and carries that model's parameter
// records:
//
//	{
//	  "model": "PC-SAFT",
//	  "substance_parameters": [...],
//	  "binary_parameters": [...],
//	  "identifier_option": "name"
//	}
//
// The older spellings residual_model, residual_substance_parameters and
// residual_binary_parameters are accepted as well, but a document may not
// use both spellings of one field. binary_parameters is optional and
// identifier_option defaults to "name".
//
// Models are looked up case-insensitively through a registration table;
// PC-SAFT registers itself as "pc-saft" and "pcsaft".
package factory
