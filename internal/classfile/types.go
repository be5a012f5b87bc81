package classfile

// Access flags
const (
	AccPublic    = 0x0001
	AccFinal     = 0x0010
	AccInterface = 0x0200
	AccAbstract  = 0x0400
	AccSynthetic = 0x1000
)

// Header is the inheritance-relevant part of a parsed .class file.
// Class names are in internal form (java/lang/Object).
type Header struct {
	MinorVersion uint16
	MajorVersion uint16
	AccessFlags  uint16
	ThisClass    string
	// SuperClass is "" only for java/lang/Object and module-info.
	SuperClass string
	Interfaces []string
}

// IsInterface reports whether the class is an interface.
func (h *Header) IsInterface() bool {
	return h.AccessFlags&AccInterface != 0
}
