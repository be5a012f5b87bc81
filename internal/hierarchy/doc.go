// Package hierarchy indexes the superclass and interface graph of a mapping
// model and supplies that graph from outside sources.
//
// The mapping text does not record inheritance, so edges come from either a
// YAML sidecar (original names) or the class files of the obfuscated jar
// (obfuscated names, translated back through the model). Attach copies the
// edges onto the model's classes; Build indexes them.
//
// Ancestors that are not classes of the model (java.lang.Object, library
// types) are opaque external nodes: queries stop at them and never fail.
// Each one is recorded once as an informational diagnostic.
package hierarchy
