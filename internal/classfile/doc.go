// Package classfile reads the header of a JVM .class file: the class name,
// its superclass and its direct interfaces. Fields, methods and attributes
// are never read.
package classfile
