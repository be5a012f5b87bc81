package classfile

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Constant pool tags
const (
	TagUtf8               = 1
	TagInteger            = 3
	TagFloat              = 4
	TagLong               = 5
	TagDouble             = 6
	TagClass              = 7
	TagString             = 8
	TagFieldref           = 9
	TagMethodref          = 10
	TagInterfaceMethodref = 11
	TagNameAndType        = 12
	TagMethodHandle       = 15
	TagMethodType         = 16
	TagDynamic            = 17
	TagInvokeDynamic      = 18
	TagModule             = 19
	TagPackage            = 20
)

// skipSizes is the payload size of every tag whose content is not kept.
var skipSizes = map[uint8]int{
	TagInteger:            4,
	TagFloat:              4,
	TagLong:               8,
	TagDouble:             8,
	TagString:             2,
	TagFieldref:           4,
	TagMethodref:          4,
	TagInterfaceMethodref: 4,
	TagNameAndType:        4,
	TagMethodHandle:       3,
	TagMethodType:         2,
	TagDynamic:            4,
	TagInvokeDynamic:      4,
	TagModule:             2,
	TagPackage:            2,
}

// constantPool keeps only the entries needed to resolve class names.
// It is 1-indexed: index 0 is unused.
type constantPool struct {
	utf8    map[uint16]string
	classes map[uint16]uint16 // class index -> name index
}

func parseConstantPool(r io.Reader, count uint16) (*constantPool, error) {
	pool := &constantPool{
		utf8:    make(map[uint16]string),
		classes: make(map[uint16]uint16),
	}

	var skip [8]byte

	for i := uint16(1); i < count; i++ {
		var tag uint8
		if err := binary.Read(r, binary.BigEndian, &tag); err != nil {
			return nil, fmt.Errorf("reading constant pool tag at index %d: %w", i, err)
		}

		switch tag {
		case TagUtf8:
			var length uint16
			if err := binary.Read(r, binary.BigEndian, &length); err != nil {
				return nil, fmt.Errorf("reading Utf8 length at index %d: %w", i, err)
			}

			data := make([]byte, length)
			if _, err := io.ReadFull(r, data); err != nil {
				return nil, fmt.Errorf("reading Utf8 bytes at index %d: %w", i, err)
			}

			pool.utf8[i] = string(data)

		case TagClass:
			var nameIndex uint16
			if err := binary.Read(r, binary.BigEndian, &nameIndex); err != nil {
				return nil, fmt.Errorf("reading Class at index %d: %w", i, err)
			}

			pool.classes[i] = nameIndex

		default:
			size, ok := skipSizes[tag]
			if !ok {
				return nil, fmt.Errorf("unknown constant pool tag %d at index %d", tag, i)
			}

			if _, err := io.ReadFull(r, skip[:size]); err != nil {
				return nil, fmt.Errorf("reading constant tag %d at index %d: %w", tag, i, err)
			}

			if tag == TagLong || tag == TagDouble {
				i++ // long and double take 2 slots
			}
		}
	}

	return pool, nil
}

// className returns the class name referenced by a CONSTANT_Class entry.
func (p *constantPool) className(classIndex uint16) (string, error) {
	nameIndex, ok := p.classes[classIndex]
	if !ok {
		return "", fmt.Errorf("constant pool index %d is not Class", classIndex)
	}

	name, ok := p.utf8[nameIndex]
	if !ok {
		return "", fmt.Errorf("constant pool index %d is not Utf8", nameIndex)
	}

	return name, nil
}
