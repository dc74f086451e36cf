package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationDecoding(t *testing.T) {
	location, err := FileRankFromString("a1")
	assert.True(t, err.IsNil())
	assert.Equal(t, FileRank{File: 0, Rank: 0}, location)

	location, err = FileRankFromString("e4")
	assert.True(t, err.IsNil())
	assert.Equal(t, FileRank{File: 4, Rank: 3}, location)
	assert.Equal(t, 28, IndexFromFileRank(location))

	for _, bad := range []string{"", "e", "i1", "a9", "a0", "e44", "E4"} {
		_, err := SquareFromString(bad)
		assert.True(t, err.HasError(), bad)
	}
}

func TestStringFromBoardIndex(t *testing.T) {
	for _, str := range []string{"a4", "c2", "h7", "a1", "h8"} {
		fileRank, err := FileRankFromString(str)
		assert.True(t, err.IsNil())

		assert.Equal(t, fileRank.String(), str)

		i := BoardIndexFromString(str)
		j := IndexFromFileRank(fileRank)
		assert.Equal(t, str, StringFromBoardIndex(i))
		assert.Equal(t, str, StringFromBoardIndex(j))
	}

	assert.Equal(t, 0, BoardIndexFromString("a1"))
	assert.Equal(t, 7, BoardIndexFromString("h1"))
	assert.Equal(t, 56, BoardIndexFromString("a8"))
	assert.Equal(t, 63, BoardIndexFromString("h8"))
	assert.Panics(t, func() { BoardIndexFromString("z9") })
}

func TestPieceTypeFromString(t *testing.T) {
	assert.Equal(t, Rook, PieceTypeFromString("rook"))
	assert.Equal(t, Rook, PieceTypeFromString("r"))
	assert.Equal(t, Bishop, PieceTypeFromString("bishop"))
	assert.Equal(t, Queen, PieceTypeFromString("q"))
	assert.Equal(t, InvalidPiece, PieceTypeFromString("dragon"))

	assert.True(t, Queen.IsSlider())
	assert.False(t, Knight.IsSlider())
	assert.Equal(t, "bishop", Bishop.Name())
}
