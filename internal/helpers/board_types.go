package helpers

type File uint
type Rank uint

type FileRank struct {
	File File
	Rank Rank
}

type PieceType uint

const (
	Rook PieceType = iota
	Knight
	Bishop
	King
	Queen
	Pawn
	InvalidPiece
)

func (p PieceType) String() string {
	return [7]string{
		"r", "n", "b", "k", "q", "p", "?",
	}[p]
}

func (p PieceType) Name() string {
	return [7]string{
		"rook", "knight", "bishop", "king", "queen", "pawn", "invalid",
	}[p]
}

// PieceTypeFromString accepts either the single letter or the full name, in
// lower case.
func PieceTypeFromString(s string) PieceType {
	switch s {
	case "r", "rook":
		return Rook
	case "n", "knight":
		return Knight
	case "b", "bishop":
		return Bishop
	case "k", "king":
		return King
	case "q", "queen":
		return Queen
	case "p", "pawn":
		return Pawn
	default:
		return InvalidPiece
	}
}

func (p PieceType) IsValid() bool {
	return p >= Rook && p <= Pawn
}

func (p PieceType) IsSlider() bool {
	return p == Rook || p == Bishop || p == Queen
}

func (f File) String() string {
	return [8]string{
		"a", "b", "c", "d", "e", "f", "g", "h",
	}[f]
}
func (r Rank) String() string {
	return [8]string{
		"1", "2", "3", "4", "5", "6", "7", "8",
	}[r]
}

func RankFromChar(c byte) (Rank, Error) {
	rank := int(c) - '1'
	if rank < 0 || rank >= 8 {
		return 0, Errorf("rank invalid %q", c)
	}
	return Rank(rank), NilError
}

func FileFromChar(c byte) (File, Error) {
	file := int(c) - 'a'
	if file < 0 || file >= 8 {
		return 0, Errorf("file invalid %q", c)
	}
	return File(file), NilError
}

func (v FileRank) String() string {
	return v.File.String() + v.Rank.String()
}

func FileRankFromString(s string) (FileRank, Error) {
	if len(s) != 2 {
		return FileRank{}, Errorf("invalid location %q", s)
	}

	file, fileErr := FileFromChar(s[0])
	rank, rankErr := RankFromChar(s[1])

	if !IsNil(fileErr) || !IsNil(rankErr) {
		return FileRank{}, Errorf("invalid location %q", s)
	}

	return FileRank{file, rank}, NilError
}

func IndexFromFileRank(location FileRank) int {
	return int(location.Rank)*8 + int(location.File)
}

func FileRankFromIndex(index int) FileRank {
	f := File(index & 0b111)
	r := Rank(index >> 3)
	return FileRank{f, r}
}

func StringFromBoardIndex(index int) string {
	return FileRankFromIndex(index).String()
}

// BoardIndexFromString panics on bad input; use SquareFromString for input
// that did not come from source code.
func BoardIndexFromString(s string) int {
	index, err := SquareFromString(s)
	if !IsNil(err) {
		panic(err)
	}
	return index
}

func SquareFromString(s string) (int, Error) {
	location, err := FileRankFromString(s)
	if !IsNil(err) {
		return 0, err
	}
	return IndexFromFileRank(location), NilError
}

func IsValidSquare(index int) bool {
	return index >= 0 && index < 64
}
