package bitboards

import (
	"math/bits"
	"strings"

	. "github.com/cricklet/magician/internal/helpers"
)

// Bitboard is a set of squares, bit i for square i (a1 = 0, h1 = 7, h8 = 63).
type Bitboard uint64

type IndicesBuffer []int

var GetIndicesBuffer, ReleaseIndicesBuffer, StatsIndicesBuffer = CreatePool(
	func() IndicesBuffer {
		return make(IndicesBuffer, 0, 64)
	},
	func(x *IndicesBuffer) {
		*x = (*x)[:0]
	},
)

// EachIndexOfOne fills buffer with the set squares in ascending order.
func (b Bitboard) EachIndexOfOne(buffer *IndicesBuffer) *IndicesBuffer {
	*buffer = (*buffer)[:0]

	temp := b
	for temp != 0 {
		var index int
		index, temp = temp.NextIndexOfOne()
		*buffer = append(*buffer, index)
	}

	return buffer
}

func (b Bitboard) EachIndexOfOneCallback(callback func(int)) {
	temp := b
	for temp != 0 {
		var index int
		index, temp = temp.NextIndexOfOne()
		callback(index)
	}
}

func (b Bitboard) NextIndexOfOne() (int, Bitboard) {
	ls1 := b.LeastSignificantOne()
	index := bits.TrailingZeros64(uint64(ls1))
	b = b ^ ls1

	return index, b
}

func (b Bitboard) LeastSignificantOne() Bitboard {
	return b & -b
}

func (b Bitboard) FirstIndexOfOne() int {
	return bits.TrailingZeros64(uint64(b))
}

func (b Bitboard) IsSet(index int) bool {
	return b&SingleBitboard(index) != 0
}

// Squares lists the set squares in algebraic notation, ascending.
func (b Bitboard) Squares() []string {
	result := []string{}
	b.EachIndexOfOneCallback(func(index int) {
		result = append(result, StringFromBoardIndex(index))
	})
	return result
}

func OnesCount(b Bitboard) int {
	return bits.OnesCount64(uint64(b))
}

type Dir int

const (
	N Dir = iota
	S
	E
	W

	NE
	NW
	SE
	SW

	NumDirs
)

var RookDirs = []Dir{
	N,
	S,
	E,
	W,
}

var BishopDirs = []Dir{
	NE,
	NW,
	SE,
	SW,
}

const (
	OffsetN int = 8
	OffsetS int = -8
	OffsetE int = 1
	OffsetW int = -1
)

var Offsets = [NumDirs]int{
	OffsetN,
	OffsetS,
	OffsetE,
	OffsetW,

	OffsetN + OffsetE,
	OffsetN + OffsetW,
	OffsetS + OffsetE,
	OffsetS + OffsetW,
}

var AllZeros Bitboard = Bitboard(0)
var AllOnes Bitboard = ^AllZeros

var Zeros = []int{0, 0, 0, 0, 0, 0, 0, 0}
var Sevens = []int{7, 7, 7, 7, 7, 7, 7, 7}
var ZeroToSeven = []int{0, 1, 2, 3, 4, 5, 6, 7}

// MaskX is every square that can step one square in direction X without
// leaving the board.
var (
	MaskN Bitboard = ZerosForRange(ZeroToSeven, Sevens)
	MaskS Bitboard = ZerosForRange(ZeroToSeven, Zeros)
	MaskE Bitboard = ZerosForRange(Sevens, ZeroToSeven)
	MaskW Bitboard = ZerosForRange(Zeros, ZeroToSeven)

	MaskAllEdges Bitboard = MaskN & MaskS & MaskE & MaskW
)

var PreMoveMasks = [NumDirs]Bitboard{
	MaskN,
	MaskS,
	MaskE,
	MaskW,

	MaskN & MaskE,
	MaskN & MaskW,
	MaskS & MaskE,
	MaskS & MaskW,
}

var SingleBitboards [64]Bitboard = func() [64]Bitboard {
	result := [64]Bitboard{}
	for i := 0; i < 64; i++ {
		result[i] = ShiftTowardsIndex64(1, i)
	}
	return result
}()

func SingleBitboard(index int) Bitboard {
	return SingleBitboards[index]
}

func ZerosForRange(fs []int, rs []int) Bitboard {
	if len(fs) != len(rs) {
		panic("slices have different length")
	}

	result := AllOnes
	for i := 0; i < len(fs); i++ {
		result &= ^SingleBitboard(IndexFromFileRank(FileRank{File: File(fs[i]), Rank: Rank(rs[i])}))
	}
	return result
}

// BitboardWithAllLocationsSet panics on bad notation. It is meant for
// constants and tests; parse user input with BitboardFromSquares.
func BitboardWithAllLocationsSet(locations []string) Bitboard {
	return ReduceSlice(
		MapSlice(locations, BoardIndexFromString),
		0,
		func(result Bitboard, index int) Bitboard {
			return result | SingleBitboard(index)
		},
	)
}

func BitboardFromSquares(locations []string) (Bitboard, Error) {
	result := Bitboard(0)
	for _, location := range locations {
		index, err := SquareFromString(location)
		if !IsNil(err) {
			return 0, err
		}
		result |= SingleBitboard(index)
	}
	return result, NilError
}

func ShiftTowardsIndex64(b Bitboard, n int) Bitboard {
	return b << n
}

func RotateTowardsIndex64(b Bitboard, n int) Bitboard {
	return Bitboard(bits.RotateLeft64(uint64(b), n))
}

// String prints rank 8 first with file a on the left.
func (b Bitboard) String() string {
	ranks := [8]string{}
	for rank := 0; rank < 8; rank++ {
		row := [8]byte{}
		for file := 0; file < 8; file++ {
			if b.IsSet(IndexFromFileRank(FileRank{File: File(file), Rank: Rank(rank)})) {
				row[file] = '1'
			} else {
				row[file] = '0'
			}
		}
		ranks[7-rank] = string(row[:])
	}

	return strings.Join(ranks[0:], "\n")
}

func BitboardFromStrings(strings [8]string) Bitboard {
	b := Bitboard(0)
	for inverseRank, line := range strings {
		for file, c := range line {
			if c == '1' {
				index := IndexFromFileRank(FileRank{File: File(file), Rank: Rank(7 - inverseRank)})
				b |= SingleBitboard(index)
			}
		}
	}
	return b
}
