package classfile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const classMagic = 0xCAFEBABE

// ParseFile opens and parses the header of a .class file.
func ParseFile(path string) (*Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a .class file header from r. Reading stops after the
// interfaces table; the rest of r is left unread.
func Parse(r io.Reader) (*Header, error) {
	br := bufio.NewReader(r)
	h := &Header{}

	// Magic number
	var magic uint32
	if err := binary.Read(br, binary.BigEndian, &magic); err != nil {
		return nil, fmt.Errorf("reading magic number: %w", err)
	}

	if magic != classMagic {
		return nil, fmt.Errorf("invalid magic number: 0x%X (expected 0xCAFEBABE)", magic)
	}

	// Version
	if err := binary.Read(br, binary.BigEndian, &h.MinorVersion); err != nil {
		return nil, fmt.Errorf("reading minor version: %w", err)
	}

	if err := binary.Read(br, binary.BigEndian, &h.MajorVersion); err != nil {
		return nil, fmt.Errorf("reading major version: %w", err)
	}

	// Constant pool
	var cpCount uint16
	if err := binary.Read(br, binary.BigEndian, &cpCount); err != nil {
		return nil, fmt.Errorf("reading constant pool count: %w", err)
	}

	pool, err := parseConstantPool(br, cpCount)
	if err != nil {
		return nil, fmt.Errorf("parsing constant pool: %w", err)
	}

	// Access flags, this_class, super_class
	var thisClass, superClass uint16
	if err := binary.Read(br, binary.BigEndian, &h.AccessFlags); err != nil {
		return nil, fmt.Errorf("reading access flags: %w", err)
	}

	if err := binary.Read(br, binary.BigEndian, &thisClass); err != nil {
		return nil, fmt.Errorf("reading this_class: %w", err)
	}

	if err := binary.Read(br, binary.BigEndian, &superClass); err != nil {
		return nil, fmt.Errorf("reading super_class: %w", err)
	}

	if h.ThisClass, err = pool.className(thisClass); err != nil {
		return nil, fmt.Errorf("resolving this_class: %w", err)
	}

	if superClass != 0 {
		if h.SuperClass, err = pool.className(superClass); err != nil {
			return nil, fmt.Errorf("resolving super_class: %w", err)
		}
	}

	// Interfaces
	var interfacesCount uint16
	if err := binary.Read(br, binary.BigEndian, &interfacesCount); err != nil {
		return nil, fmt.Errorf("reading interfaces count: %w", err)
	}

	h.Interfaces = make([]string, 0, interfacesCount)

	for i := uint16(0); i < interfacesCount; i++ {
		var idx uint16
		if err := binary.Read(br, binary.BigEndian, &idx); err != nil {
			return nil, fmt.Errorf("reading interface %d: %w", i, err)
		}

		name, err := pool.className(idx)
		if err != nil {
			return nil, fmt.Errorf("resolving interface %d: %w", i, err)
		}

		h.Interfaces = append(h.Interfaces, name)
	}

	return h, nil
}
