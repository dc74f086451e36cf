package attacks

import (
	"errors"
	"runtime"

	"github.com/cricklet/magician/internal/bitboards"
	. "github.com/cricklet/magician/internal/helpers"
	"github.com/cricklet/magician/internal/magicfile"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidMagic = errors.New("invalid magic")
	ErrInvalidMask  = errors.New("invalid occupancy mask")
)

// MagicSet is what gets persisted for one shape: a magic and an occupancy
// mask per square.
type MagicSet struct {
	Magics      []bitboards.MagicEntry
	Occupancies []bitboards.Bitboard
}

type shapeTables struct {
	masks   [64]bitboards.Bitboard
	entries [64]bitboards.MagicEntry
	tables  [64][]bitboards.Bitboard
}

func (s *shapeTables) lookup(square int, blockers bitboards.Bitboard) bitboards.Bitboard {
	return s.tables[square][bitboards.MagicIndex(blockers&s.masks[square], s.entries[square])]
}

// Service answers slider attack queries. It is immutable once NewService
// returns and safe for any number of concurrent readers.
type Service struct {
	shapes [bitboards.NumShapes]*shapeTables

	logger      Logger
	parallelism int
}

type ServiceOption func(*Service)

func WithLogger(logger Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithParallelism bounds the number of tables built at once.
func WithParallelism(n int) ServiceOption {
	return func(s *Service) {
		s.parallelism = MaxInt(1, n)
	}
}

func checkMagicSet(shape bitboards.Shape, set MagicSet) Error {
	return Join(
		magicfile.RequireSquareCount(len(set.Magics), shape.String()+" magics"),
		magicfile.RequireSquareCount(len(set.Occupancies), shape.String()+" occupancies"),
	)
}

func validateSquare(shape bitboards.Shape, square int, entry bitboards.MagicEntry, mask bitboards.Bitboard) Error {
	if expected := shape.OccupancyMask(square); mask != expected {
		return Errorf("%v %v: mask %v does not match %v: %w",
			shape, StringFromBoardIndex(square), mask.Squares(), expected.Squares(), ErrInvalidMask)
	}
	if entry.Shift != bitboards.ShiftForMask(mask) {
		return Errorf("%v %v: shift %v does not match %v relevant bits: %w",
			shape, StringFromBoardIndex(square), entry.Shift, bitboards.OnesCount(mask), ErrInvalidMagic)
	}
	if !bitboards.ValidateMagic(mask, entry.Magic) {
		return Errorf("%v %v: magic %#x collides: %w",
			shape, StringFromBoardIndex(square), entry.Magic, ErrInvalidMagic)
	}
	return NilError
}

// NewService validates every magic against its mask and builds the attack
// tables. Either every table is built or an error is returned.
func NewService(rook MagicSet, bishop MagicSet, options ...ServiceOption) (*Service, Error) {
	s := &Service{
		logger:      &SilentLogger,
		parallelism: runtime.NumCPU(),
	}
	for _, option := range options {
		option(s)
	}

	sets := [bitboards.NumShapes]MagicSet{
		bitboards.RookShape:   rook,
		bitboards.BishopShape: bishop,
	}

	err := Join(checkMagicSet(bitboards.RookShape, rook), checkMagicSet(bitboards.BishopShape, bishop))
	if !IsNil(err) {
		return nil, err
	}

	shapes := [bitboards.NumShapes]*shapeTables{}
	for _, shape := range bitboards.AllShapes {
		shapes[shape] = &shapeTables{}
		copy(shapes[shape].masks[:], sets[shape].Occupancies)
		copy(shapes[shape].entries[:], sets[shape].Magics)
	}

	g := errgroup.Group{}
	g.SetLimit(s.parallelism)

	for _, shape := range bitboards.AllShapes {
		tables := shapes[shape]
		for square := 0; square < 64; square++ {
			g.Go(func() error {
				entry := tables.entries[square]
				mask := tables.masks[square]

				err := validateSquare(shape, square, entry, mask)
				if !IsNil(err) {
					return err
				}

				tables.tables[square] = bitboards.BuildAttackTable(square, shape, mask, entry.Magic)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, Wrap(err)
	}

	s.shapes = shapes

	for _, shape := range bitboards.AllShapes {
		entries := s.TableEntries(shape)
		s.logger.Printf("built %v tables: %v entries (%v)\n",
			shape, humanize.Comma(int64(entries)), humanize.Bytes(uint64(entries*8)))
	}

	return s, NilError
}

func LoadMagicSet(dir string, shape bitboards.Shape) (MagicSet, Error) {
	magics, err := magicfile.LoadMagics(dataPath(dir, magicfile.MagicsFileName(shape)))
	if !IsNil(err) {
		return MagicSet{}, err
	}
	occupancies, err := magicfile.LoadOccupancies(dataPath(dir, magicfile.OccupanciesFileName(shape)))
	if !IsNil(err) {
		return MagicSet{}, err
	}
	return MagicSet{magics, occupancies}, NilError
}

// LoadService reads the rook and bishop files from dir (the default data
// directory when empty) and builds a Service from them.
func LoadService(dir string, options ...ServiceOption) (*Service, Error) {
	rook, err := LoadMagicSet(dir, bitboards.RookShape)
	if !IsNil(err) {
		return nil, err
	}
	bishop, err := LoadMagicSet(dir, bitboards.BishopShape)
	if !IsNil(err) {
		return nil, err
	}
	return NewService(rook, bishop, options...)
}

func (s *Service) RookAttacks(square int, blockers bitboards.Bitboard) bitboards.Bitboard {
	return s.shapes[bitboards.RookShape].lookup(square, blockers)
}

func (s *Service) BishopAttacks(square int, blockers bitboards.Bitboard) bitboards.Bitboard {
	return s.shapes[bitboards.BishopShape].lookup(square, blockers)
}

func (s *Service) QueenAttacks(square int, blockers bitboards.Bitboard) bitboards.Bitboard {
	return s.RookAttacks(square, blockers) | s.BishopAttacks(square, blockers)
}

// Attacks is the checked form of the lookups, for input that has not been
// validated yet.
func (s *Service) Attacks(pieceType PieceType, square int, blockers bitboards.Bitboard) (bitboards.Bitboard, Error) {
	if !IsValidSquare(square) {
		return 0, Errorf("square %v out of range", square)
	}

	shapes := bitboards.ShapesForPieceType(pieceType)
	if len(shapes) == 0 {
		return 0, Errorf("%v is not a sliding piece", pieceType.Name())
	}

	result := bitboards.Bitboard(0)
	for _, shape := range shapes {
		result |= s.shapes[shape].lookup(square, blockers)
	}
	return result, NilError
}

func (s *Service) Magic(shape bitboards.Shape, square int) (bitboards.MagicEntry, bitboards.Bitboard) {
	tables := s.shapes[shape]
	return tables.entries[square], tables.masks[square]
}

func (s *Service) MagicSet(shape bitboards.Shape) MagicSet {
	tables := s.shapes[shape]
	return MagicSet{
		Magics:      append([]bitboards.MagicEntry{}, tables.entries[:]...),
		Occupancies: append([]bitboards.Bitboard{}, tables.masks[:]...),
	}
}

func (s *Service) TableEntries(shape bitboards.Shape) int {
	total := 0
	for _, table := range s.shapes[shape].tables {
		total += len(table)
	}
	return total
}

// Verify looks up every blocker configuration of every square and compares
// it with a ray-cast.
func (s *Service) Verify() Error {
	g := errgroup.Group{}
	g.SetLimit(s.parallelism)

	for _, shape := range bitboards.AllShapes {
		tables := s.shapes[shape]
		for square := 0; square < 64; square++ {
			g.Go(func() error {
				for _, blockers := range bitboards.EnumerateBlockerConfigs(tables.masks[square]) {
					expected := shape.AttacksFrom(square, blockers)
					if actual := tables.lookup(square, blockers); actual != expected {
						return Errorf("%v %v with blockers %v:\n%v\nexpected:\n%v",
							shape, StringFromBoardIndex(square), blockers.Squares(), actual, expected)
					}
				}
				return nil
			})
		}
	}

	return Wrap(g.Wait())
}
