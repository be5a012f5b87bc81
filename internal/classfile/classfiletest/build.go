// Package classfiletest builds minimal .class files and jars for tests.
package classfiletest

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// Class describes a class to synthesize. Names are in internal form.
type Class struct {
	Name       string
	Super      string
	Interfaces []string
	Interface  bool
}

// Build returns the bytes of a .class file with an empty body. The constant
// pool also carries a long constant so readers must handle two-slot entries.
func Build(c Class) []byte {
	var pool bytes.Buffer

	next := uint16(1)
	classIndex := func(name string) uint16 {
		pool.WriteByte(1) // Utf8
		_ = binary.Write(&pool, binary.BigEndian, uint16(len(name)))
		pool.WriteString(name)

		pool.WriteByte(7) // Class
		_ = binary.Write(&pool, binary.BigEndian, next)

		idx := next + 1
		next += 2

		return idx
	}

	// A long constant takes two slots.
	pool.WriteByte(5)
	_ = binary.Write(&pool, binary.BigEndian, int64(42))
	next += 2

	this := classIndex(c.Name)

	var super uint16
	if c.Super != "" {
		super = classIndex(c.Super)
	}

	ifaces := make([]uint16, 0, len(c.Interfaces))
	for _, name := range c.Interfaces {
		ifaces = append(ifaces, classIndex(name))
	}

	var flags uint16 = 0x0021 // public super
	if c.Interface {
		flags = 0x0601 // public interface abstract
	}

	var out bytes.Buffer

	w := func(v any) { _ = binary.Write(&out, binary.BigEndian, v) }

	w(uint32(0xCAFEBABE))
	w(uint16(0))
	w(uint16(65))
	w(next)
	out.Write(pool.Bytes())
	w(flags)
	w(this)
	w(super)
	w(uint16(len(ifaces)))

	for _, idx := range ifaces {
		w(idx)
	}

	w(uint16(0)) // fields
	w(uint16(0)) // methods
	w(uint16(0)) // attributes

	return out.Bytes()
}

// WriteJar writes a jar containing the given classes plus a manifest and
// returns its path.
func WriteJar(t testing.TB, classes ...Class) string {
	t.Helper()

	sort.Slice(classes, func(i, j int) bool { return classes[i].Name < classes[j].Name })

	var buf bytes.Buffer

	zw := zip.NewWriter(&buf)

	mf, err := zw.Create("META-INF/MANIFEST.MF")
	if err != nil {
		t.Fatalf("creating manifest: %v", err)
	}

	_, _ = mf.Write([]byte("Manifest-Version: 1.0\n"))

	for _, c := range classes {
		f, err := zw.Create(c.Name + ".class")
		if err != nil {
			t.Fatalf("creating %s: %v", c.Name, err)
		}

		if _, err := f.Write(Build(c)); err != nil {
			t.Fatalf("writing %s: %v", c.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("closing jar: %v", err)
	}

	path := filepath.Join(t.TempDir(), "client.jar")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing jar: %v", err)
	}

	return path
}
