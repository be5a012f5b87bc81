package diagnostic

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind identifies a category of pipeline failure or note.
type Kind int

const (
	_ Kind = iota // zero value is reserved for "no kind"

	KindMalformedTypeName
	KindMalformedMapping
	KindDuplicateClassMapping
	KindDuplicateMemberMapping
	KindHierarchyCycleDetected
	KindUnresolvedAncestorReference
)

// Fatal reports whether diagnostics of this kind abort a run.
// Unresolved ancestors are recorded, never returned as errors.
func (k Kind) Fatal() bool {
	return k != KindUnresolvedAncestorReference
}
