// Package diagnostic provides the error kinds and informational
// diagnostics shared by the mapping pipeline.
//
// Key capabilities:
//   - Typed errors carrying the line number or class/member identity
//   - Sentinel values for errors.Is matching on each error kind
//   - Non-fatal notes (unresolved ancestors) with suggested alternatives
package diagnostic
