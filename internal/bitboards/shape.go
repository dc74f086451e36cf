package bitboards

import (
	. "github.com/cricklet/magician/internal/helpers"
)

// Shape is a sliding movement pattern. Queens are not a shape of their own:
// their attacks are always the union of RookShape and BishopShape.
type Shape int

const (
	RookShape Shape = iota
	BishopShape

	NumShapes
)

var AllShapes = []Shape{RookShape, BishopShape}

var _shapeDirs = [NumShapes][]Dir{
	RookDirs,
	BishopDirs,
}

func (s Shape) String() string {
	return [NumShapes]string{"rook", "bishop"}[s]
}

func (s Shape) Dirs() []Dir {
	return _shapeDirs[s]
}

func (s Shape) IsValid() bool {
	return s >= RookShape && s < NumShapes
}

func ShapeFromString(str string) (Shape, Error) {
	switch str {
	case "rook", "r":
		return RookShape, NilError
	case "bishop", "b":
		return BishopShape, NilError
	}
	return 0, Errorf("unknown shape %q", str)
}

// ShapesForPieceType returns the shapes whose attacks make up the piece's
// attacks, or nothing for non-sliding pieces.
func ShapesForPieceType(p PieceType) []Shape {
	switch p {
	case Rook:
		return []Shape{RookShape}
	case Bishop:
		return []Shape{BishopShape}
	case Queen:
		return []Shape{RookShape, BishopShape}
	}
	return nil
}

// walk ray-casts from the piece in one direction. Every visited square is
// added to output; the walk ends after the first square in blockerBoard or
// when the next step would leave the board.
func walk(
	pieceBoard Bitboard,
	blockerBoard Bitboard,
	dir Dir,
	output Bitboard,
) Bitboard {
	mask := PreMoveMasks[dir]
	offset := Offsets[dir]

	potential := pieceBoard

	for potential != 0 {
		potential = RotateTowardsIndex64(potential&mask, offset)

		quiet := potential & ^blockerBoard
		capture := potential & blockerBoard

		output |= quiet | capture

		potential = quiet
	}

	return output
}

// OccupancyMask is the set of squares whose occupancy can change the shape's
// attacks from square: each ray from square, minus the last square before the
// board edge (nothing lies behind it) and minus square itself.
func (s Shape) OccupancyMask(square int) Bitboard {
	result := Bitboard(0)
	for _, dir := range s.Dirs() {
		ray := walk(SingleBitboard(square), Bitboard(0), dir, Bitboard(0))
		result |= ray & PreMoveMasks[dir]
	}

	return result & ^SingleBitboard(square)
}

// AttacksFrom ray-casts the shape's attacks from square for any blocker set.
// A blocked square is attacked (it can be captured); squares behind it are
// not. blockers does not need to lie within the occupancy mask.
func (s Shape) AttacksFrom(square int, blockers Bitboard) Bitboard {
	pieceBoard := SingleBitboard(square)
	result := Bitboard(0)
	for _, dir := range s.Dirs() {
		result = walk(pieceBoard, blockers, dir, result)
	}
	return result
}
