package bitboards

// BuildAttackTable stores the ray-cast attacks of every blocker configuration
// of mask at its magic index. The magic must have passed ValidateMagic: with a
// colliding magic, later configurations silently overwrite earlier ones.
func BuildAttackTable(square int, shape Shape, mask Bitboard, magic uint64) []Bitboard {
	entry := NewMagicEntry(magic, mask)
	table := make([]Bitboard, entry.TableSize())

	for _, blockers := range EnumerateBlockerConfigs(mask) {
		table[MagicIndex(blockers, entry)] = shape.AttacksFrom(square, blockers)
	}

	return table
}
