/*
Package builder compiles one block definition into its block document and
drives every other compiler the block needs.

Building a block is a multi-phase process:

 1. Template: the block template is evaluated against the group scope and
    block_template_override is merged over its "minecraft:block" section.
    The identifier is injected and the permutations list and the states
    object are made to exist.

 2. States: each variant group contributes one integer state and one
    permutation per variant. A rotation scheme contributes the rotation
    state and one permutation per orientation.

 3. Entities: a block with variant groups or a rotation scheme gets one
    companion entity per point of the variant cross product. Each adds a
    fallback permutation carrying the shared_variant overlays and the
    self-drop loot table. Plain blocks drop themselves instead.

 4. Output: the block document is written, the block is registered in the
    shared blocks.json accumulator and its recipes are generated.

Failures in any phase stop the block. Files written by earlier phases are
left in place.
*/
package builder
