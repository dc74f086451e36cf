package bitboards

import (
	. "github.com/cricklet/magician/internal/helpers"
)

// BlockerConfig builds configuration number seed for mask: bit j of seed
// decides whether the j-th lowest set square of mask is occupied. Seeds
// 0..2^popcount(mask)-1 map one-to-one onto the subsets of mask.
func BlockerConfig(mask Bitboard, seed int) Bitboard {
	result := Bitboard(0)

	buffer := GetIndicesBuffer()
	for i, indexInBitboard := range *mask.EachIndexOfOne(buffer) {
		if seed&(1<<i) != 0 {
			result |= SingleBitboard(indexInBitboard)
		}
	}
	ReleaseIndicesBuffer(buffer)

	return result
}

// MaxMaskBits bounds the masks that can be enumerated. Real slider masks have
// at most 12 bits.
const MaxMaskBits = 30

// EnumerateBlockerConfigs returns every subset of mask, ordered by seed (see
// BlockerConfig). The result has exactly 1<<OnesCount(mask) distinct entries.
// It panics if mask has more than MaxMaskBits bits.
func EnumerateBlockerConfigs(mask Bitboard) []Bitboard {
	if OnesCount(mask) > MaxMaskBits {
		panic(Errorf("cannot enumerate %v blocker bits", OnesCount(mask)))
	}

	buffer := GetIndicesBuffer()
	defer ReleaseIndicesBuffer(buffer)

	relevant := *mask.EachIndexOfOne(buffer)
	numConfigs := 1 << len(relevant)

	result := make([]Bitboard, numConfigs)
	for seed := 0; seed < numConfigs; seed++ {
		config := Bitboard(0)
		for i, indexInBitboard := range relevant {
			if seed&(1<<i) != 0 {
				config |= SingleBitboard(indexInBitboard)
			}
		}
		result[seed] = config
	}
	return result
}
