package bitboards

import (
	"testing"

	. "github.com/cricklet/magician/internal/helpers"

	"github.com/stretchr/testify/assert"
)

func TestEnumerateBlockerConfigs(t *testing.T) {
	for _, shape := range AllShapes {
		for square := 0; square < 64; square++ {
			mask := shape.OccupancyMask(square)
			configs := EnumerateBlockerConfigs(mask)

			assert.Equal(t, 1<<OnesCount(mask), len(configs), shape.String()+" "+StringFromBoardIndex(square))

			outside, duplicates, mismatched := 0, 0, 0
			seen := map[Bitboard]bool{}
			for seed, config := range configs {
				if config&^mask != 0 {
					outside++
				}
				if seen[config] {
					duplicates++
				}
				seen[config] = true
				if BlockerConfig(mask, seed) != config {
					mismatched++
				}
			}
			assert.Zero(t, outside)
			assert.Zero(t, duplicates)
			assert.Zero(t, mismatched)

			assert.Equal(t, Bitboard(0), configs[0])
			assert.Equal(t, mask, configs[len(configs)-1])
		}
	}
}

func TestBlockerConfigOrdering(t *testing.T) {
	mask := BitboardWithAllLocationsSet([]string{"b1", "e1", "c3"})

	assert.Equal(t, []Bitboard{
		0,
		BitboardWithAllLocationsSet([]string{"b1"}),
		BitboardWithAllLocationsSet([]string{"e1"}),
		BitboardWithAllLocationsSet([]string{"b1", "e1"}),
		BitboardWithAllLocationsSet([]string{"c3"}),
		BitboardWithAllLocationsSet([]string{"b1", "c3"}),
		BitboardWithAllLocationsSet([]string{"e1", "c3"}),
		mask,
	}, EnumerateBlockerConfigs(mask))

	assert.Equal(t, []Bitboard{0}, EnumerateBlockerConfigs(0))
}
