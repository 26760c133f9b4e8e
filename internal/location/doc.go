// Package location implements the resolution engine: a breadth-first
// worklist that reduces caller-supplied location strings (files,
// directories, remote video URLs) to a flat, ordered list of local media
// files.
//
// Resolvers are a fixed, ordered set of {predicate, resolve} pairs; the
// first resolver whose predicate matches wins. Local file checks run before
// the directory fallthrough so a path never reaches a broader handler than
// necessary.
package location
