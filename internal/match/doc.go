// Package match finds near-miss class names with Levenshtein distance.
//
// It backs the suggestions attached to unresolved ancestor diagnostics, so
// a typo in a hierarchy sidecar ("LivngEntity") points at the class that was
// probably meant.
package match
