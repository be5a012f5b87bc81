// Package mapping provides the in-memory model of a member-level obfuscation
// mapping, the parser for its proguard-style text form and a writer that
// produces the same text back.
//
// # Text Format
//
// Each class line names the original and obfuscated class, followed by
// indented member lines belonging to that class:
//
//	# comments and blank lines are ignored
//	net.minecraft.world.entity.Entity -> bsr:
//	    int id -> o
//	    java.util.UUID uuid -> aj
//	    12:15:void tick() -> h
//	    boolean hurt(net.minecraft.world.damagesource.DamageSource,float) -> a
//
// Method lines may carry a "start:end:" line-number prefix. It has no meaning
// for renaming but is kept so Format reproduces the input.
//
// # Strictness
//
// The parser never skips a bad line. A member before any class, a duplicate
// class, a duplicate field name or a duplicate method (name and descriptor)
// inside one class fails the whole parse. AllowRedundant relaxes the member
// rule for exact repeats only (same name, descriptor and obfuscated name).
//
// # Hierarchy
//
// The text format carries no superclass or interface information.
// ClassEntry.Super and ClassEntry.Interfaces are filled by package hierarchy
// from a sidecar file or the class files of a jar.
package mapping
