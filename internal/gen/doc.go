// Package gen turns one resolved declaration tree into ordered declaration
// fragments.
//
// For every field the emitter consults, in order, the property attribute
// parser, the memory-semantics resolver and the static-accessor visibility
// policy. Their diagnostics land in the call's diag.Bag and only drop the
// facet they concern: a malformed directive loses its @property line but the
// instance variable is still declared.
//
// Anonymous and local classes are named Enclosing_$N with counters owned by
// the call, so regenerating the same tree yields the same names. Inner
// classes keep their enclosing-instance field and initializer parameter only
// when UsageFacts says the link is used (or says nothing).
//
// Emit is pure: no globals and no I/O. The driver runs calls for different
// documents in parallel, each with its own Config copy and Bag.
package gen
