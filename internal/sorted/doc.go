// Package sorted provides a key-ordered map backed by a slice and the
// linear two-way walk used to merge state stacks with incoming state sets.
//
// Keys are kept in ascending order according to a comparison function
// supplied at construction. The comparison must define a strict weak
// ordering that is stable for the lifetime of the map; the merge walk
// relies on both sides sharing the same ordering.
package sorted
