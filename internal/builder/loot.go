package builder

import (
	"github.com/specialistvlad/blockgen/internal/document"
	"github.com/specialistvlad/blockgen/internal/pack"
)

// LootTable returns a loot table dropping exactly one item.
func LootTable(item string) *document.Object {
	return document.ObjectOf(
		"pools", document.ArrayOf(document.ObjectOf(
			"rolls", 1,
			"entries", document.ArrayOf(document.ObjectOf(
				"type", "item",
				"name", item,
				"functions", document.ArrayOf(document.ObjectOf(
					"function", "set_count",
					"count", document.ObjectOf("min", 1, "max", 1),
				)),
			)),
		)),
	)
}

func writeLoot(p *pack.Pack, name, item string) error {
	return pack.WriteDocument(p.LootFile(name), LootTable(item))
}
