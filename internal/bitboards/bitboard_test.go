package bitboards

import (
	"sort"
	"strings"
	"testing"

	. "github.com/cricklet/magician/internal/helpers"

	"github.com/stretchr/testify/assert"
)

func TestEachIndexOfOne(t *testing.T) {
	board := SingleBitboard(63) | SingleBitboard(3) | SingleBitboard(5) | SingleBitboard(30)
	assert.Equal(t, board.String(), strings.Join([]string{
		"00000001",
		"00000000",
		"00000000",
		"00000000",
		"00000010",
		"00000000",
		"00000000",
		"00010100",
	}, "\n"))

	expected := []string{
		"d1", "f1", "g4", "h8",
	}
	result := []string{}
	buffer := GetIndicesBuffer()
	for _, index := range *board.EachIndexOfOne(buffer) {
		result = append(result, StringFromBoardIndex(index))
	}
	ReleaseIndicesBuffer(buffer)
	assert.Contains(t, StatsIndicesBuffer().String(), "creates: ")

	sort.Strings(result)
	sort.Strings(expected)

	assert.Equal(t, result, expected)
	assert.Equal(t, expected, board.Squares())
}

func TestBitboardFromStrings(t *testing.T) {
	assert.Equal(t,
		BitboardFromStrings([8]string{
			"00000000",
			"00100000",
			"00000000",
			"00000000",
			"00000000",
			"00000000",
			"00000000",
			"00000000",
		}).String(),
		SingleBitboard(BoardIndexFromString("c7")).String())
}

func TestBitboardFromSquares(t *testing.T) {
	b, err := BitboardFromSquares([]string{"e8", "c4", "e3"})
	assert.True(t, err.IsNil())
	assert.Equal(t, BitboardWithAllLocationsSet([]string{"e8", "c4", "e3"}), b)
	assert.Equal(t, 3, OnesCount(b))
	assert.True(t, b.IsSet(BoardIndexFromString("c4")))
	assert.False(t, b.IsSet(BoardIndexFromString("c5")))

	empty, err := BitboardFromSquares(nil)
	assert.True(t, err.IsNil())
	assert.Equal(t, Bitboard(0), empty)

	_, err = BitboardFromSquares([]string{"e4", "k9"})
	assert.True(t, err.HasError())
}

func TestFirstIndexOfOne(t *testing.T) {
	b := BitboardWithAllLocationsSet([]string{"c2", "h8"})
	assert.Equal(t, BoardIndexFromString("c2"), b.FirstIndexOfOne())
	assert.Equal(t, SingleBitboard(BoardIndexFromString("c2")), b.LeastSignificantOne())

	index, rest := b.NextIndexOfOne()
	assert.Equal(t, BoardIndexFromString("c2"), index)
	assert.Equal(t, SingleBitboard(63), rest)
}

func TestDirMasks(t *testing.T) {
	assert.Equal(t,
		BitboardFromStrings([8]string{
			"00000000",
			"11111111",
			"11111111",
			"11111111",
			"11111111",
			"11111111",
			"11111111",
			"11111111",
		}).String(), MaskN.String())

	assert.Equal(t,
		BitboardFromStrings([8]string{
			"00000000",
			"01111110",
			"01111110",
			"01111110",
			"01111110",
			"01111110",
			"01111110",
			"00000000",
		}).String(), MaskAllEdges.String())

	assert.Equal(t, MaskS&MaskW, PreMoveMasks[SW])
}
