// Package merge resolves a mapping model against its class hierarchy into a
// rename table where every class lists each member it can be reached through,
// not only the members it declares.
//
// The external remapper renames bytecode members per concrete class. A method
// renamed in Entity must therefore also be renamed when it is referenced as
// LivingEntity.tick, unless LivingEntity has its own mapping for it.
//
// # Resolution rules
//
//  1. A class starts with its own declared fields and methods.
//  2. Classes are resolved ancestors first. A class then copies the resolved
//     entries of its superclass, followed by those of each direct interface
//     in declared order. An entry is copied only when the class has no entry
//     with the same key yet, so the class's own declaration always wins and
//     an inherited member keeps the name its parent resolved it to. Because
//     the superclass comes first, the whole class chain (with everything it
//     inherits) beats the class's own interfaces on a diamond.
//  3. External ancestors carry no mapping data and are skipped.
//  4. <init> and <clinit> are never inherited.
//
// Fields are keyed by name; methods by name and descriptor.
//
// A cycle aborts the merge with diagnostic.ErrHierarchyCycleDetected. The
// resulting Table is sorted by class name and member key, so merging the same
// input twice yields identical tables.
package merge
