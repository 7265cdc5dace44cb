// Package document models the loosely-typed JSON trees the generator reads
// and writes as a closed tagged union: *Object, *Array and Scalar.
//
// Objects keep key insertion order, both when decoded from JSONC input and
// when encoded back out, so generated files list their properties in the
// order the templates declared them. Paths (locators) address a position in
// a tree and are used in every error message that points at user input.
package document
