// Package registry holds the shared accumulators of a generation run.
//
// Many block definitions contribute to the same output files: the block
// registry (RP/blocks.json), the placement animation controllers, the hold
// animations of attachables, the lang file, and the generated cube textures.
// The Registry owns one accumulator per file. Each is seeded from the file
// already in the pack, enforces its own collision rules on insert, and is
// written once by Flush, and only when something was added.
//
// A Registry is an explicit run context: the caller creates it, hands it to
// the compilers, and flushes it after the last block.
package registry
