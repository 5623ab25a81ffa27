// Package value models loosely typed values: a [Kind] for every Go value,
// predicates such as [IsObj] and [IsNum], string coercion with
// [ParseToType], insertion-ordered [Object] helpers, and [Strong] records
// that check the type of every assignment.
package value
