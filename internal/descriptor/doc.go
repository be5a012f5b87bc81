// Package descriptor converts between source-style Java type names and JVM
// descriptor notation.
//
//	int        <-> I
//	int[][]    <-> [[I
//	java.util.List <-> Ljava/util/List;
//	(int, java.lang.String) -> void  <-> (ILjava/lang/String;)V
//
// All functions are pure. Invalid input fails with an error matching
// diagnostic.ErrMalformedTypeName.
package descriptor
