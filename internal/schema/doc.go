// Package schema turns the tabular variable table into VariableRecords.
//
// # Table Format
//
// One row per variable, comma separated, with the fixed column order
//
//	direction, name, description, unit, default
//
// The default is always the last cell. Rows whose first cell starts with
// '#' or is blank are skipped, as are rows naming a vector-valued variable
// (arrayCables, exportCables) that the flat exchange cannot carry.
//
// # Classification
//
// Classify assigns each default cell a kind with fixed precedence:
//
//  1. TRUE / FALSE (any case)            -> bool
//  2. description mentions "number"      -> int (must parse as an integer)
//  3. parses as a float                  -> float
//  4. otherwise                          -> enum, domain from Bindings
//
// The loader never deduplicates names; the variable registry rejects
// duplicates at insertion.
package schema
