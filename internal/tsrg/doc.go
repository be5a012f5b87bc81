// Package tsrg serializes a merged rename table to tsrg text.
//
// Each class contributes one unindented line followed by tab-indented member
// lines, fields before methods:
//
//	obf/Name orig/pkg/Name
//	\tobfField origField
//	\tobfMethod (desc)ret origMethod
//
// Method descriptors are written in the namespace of the left column. In the
// default obfuscated-to-named direction every class the table knows is
// renamed to its obfuscated name inside descriptors; classes outside the
// table stay as they are.
package tsrg
