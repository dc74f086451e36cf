package attacks

import (
	"errors"
	"math/rand"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cricklet/magician/internal/bitboards"
	. "github.com/cricklet/magician/internal/helpers"
	"github.com/cricklet/magician/internal/magicfile"
	"github.com/davecgh/go-spew/spew"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_serviceOnce sync.Once
	_service     *Service
	_serviceErr  Error
)

func loadForTest(t *testing.T) *Service {
	_serviceOnce.Do(func() {
		_service, _serviceErr = LoadService("")
	})
	require.True(t, IsNil(_serviceErr), _serviceErr.Error())
	return _service
}

func loadSets(t *testing.T) (MagicSet, MagicSet) {
	rook, err := LoadMagicSet("", bitboards.RookShape)
	require.True(t, err.IsNil(), err.Error())
	bishop, err := LoadMagicSet("", bitboards.BishopShape)
	require.True(t, err.IsNil(), err.Error())
	return rook, bishop
}

func TestRookAttacksWithBlockers(t *testing.T) {
	s := loadForTest(t)

	blockers := bitboards.BitboardWithAllLocationsSet([]string{"e8", "c4", "e3"})
	attacks := s.RookAttacks(BoardIndexFromString("e4"), blockers)
	assert.Equal(t,
		bitboards.BitboardFromStrings([8]string{
			"00001000",
			"00001000",
			"00001000",
			"00001000",
			"00110111",
			"00001000",
			"00000000",
			"00000000",
		}).String(),
		attacks.String())
	assert.Equal(t, 10, bitboards.OnesCount(attacks))
}

func TestEmptyBoardAttacks(t *testing.T) {
	s := loadForTest(t)

	assert.Equal(t, 14, bitboards.OnesCount(s.RookAttacks(BoardIndexFromString("a1"), 0)))
	assert.Equal(t,
		[]string{"b1", "h1", "c2", "g2", "d3", "f3", "d5", "f5", "c6", "g6", "b7", "h7", "a8"},
		s.BishopAttacks(BoardIndexFromString("e4"), 0).Squares())
	assert.Equal(t, 27, bitboards.OnesCount(s.QueenAttacks(BoardIndexFromString("d4"), 0)))
}

func TestLookupsMatchRayCastForFullBoards(t *testing.T) {
	s := loadForTest(t)
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 20000; i++ {
		square := rng.Intn(64)
		occupancy := bitboards.Bitboard(rng.Uint64() & rng.Uint64())

		rook := s.RookAttacks(square, occupancy)
		bishop := s.BishopAttacks(square, occupancy)

		if !assert.Equal(t, bitboards.RookShape.AttacksFrom(square, occupancy), rook) {
			t.Log(spew.Sdump(square, occupancy))
		}
		assert.Equal(t, bitboards.BishopShape.AttacksFrom(square, occupancy), bishop)
		assert.Equal(t, rook|bishop, s.QueenAttacks(square, occupancy))
	}
}

func TestVerify(t *testing.T) {
	s := loadForTest(t)
	assert.True(t, s.Verify().IsNil())

	assert.Equal(t, 102400, s.TableEntries(bitboards.RookShape))
	assert.Equal(t, 5248, s.TableEntries(bitboards.BishopShape))
}

func TestAttacksByPieceType(t *testing.T) {
	s := loadForTest(t)
	square := BoardIndexFromString("c3")
	blockers := bitboards.BitboardWithAllLocationsSet([]string{"c6", "e5", "a1"})

	queen, err := s.Attacks(Queen, square, blockers)
	assert.True(t, err.IsNil())
	assert.Equal(t, s.QueenAttacks(square, blockers), queen)

	rook, err := s.Attacks(Rook, square, blockers)
	assert.True(t, err.IsNil())
	assert.Equal(t, s.RookAttacks(square, blockers), rook)

	_, err = s.Attacks(Knight, square, blockers)
	assert.True(t, err.HasError())
	_, err = s.Attacks(Bishop, 64, blockers)
	assert.True(t, err.HasError())
}

func TestMagicAccessors(t *testing.T) {
	s := loadForTest(t)

	entry, mask := s.Magic(bitboards.RookShape, BoardIndexFromString("e4"))
	assert.Equal(t, bitboards.RookShape.OccupancyMask(BoardIndexFromString("e4")), mask)
	assert.Equal(t, uint8(54), entry.Shift)

	set := s.MagicSet(bitboards.BishopShape)
	assert.Len(t, set.Magics, 64)
	assert.Len(t, set.Occupancies, 64)
}

func TestNewServiceRejectsShortSets(t *testing.T) {
	rook, bishop := loadSets(t)

	short := MagicSet{rook.Magics[:63], rook.Occupancies}
	s, err := NewService(short, bishop)
	assert.Nil(t, s)
	assert.True(t, errors.Is(err, magicfile.ErrRecordCount))

	s, err = NewService(rook, MagicSet{bishop.Magics, nil})
	assert.Nil(t, s)
	assert.True(t, errors.Is(err, magicfile.ErrRecordCount))
}

func TestNewServiceRejectsInvalidMagics(t *testing.T) {
	rook, bishop := loadSets(t)

	badShift := MagicSet{append([]bitboards.MagicEntry{}, rook.Magics...), rook.Occupancies}
	badShift.Magics[10].Shift++
	_, err := NewService(badShift, bishop)
	assert.True(t, errors.Is(err, ErrInvalidMagic))

	colliding := MagicSet{append([]bitboards.MagicEntry{}, bishop.Magics...), bishop.Occupancies}
	colliding.Magics[27].Magic = 1
	_, err = NewService(rook, colliding, WithParallelism(1))
	assert.True(t, errors.Is(err, ErrInvalidMagic))
	assert.Contains(t, err.Error(), "d4")
}

func TestLoadServiceMissingFiles(t *testing.T) {
	s, err := LoadService(filepath.Join(t.TempDir(), "nothing"))
	assert.Nil(t, s)
	assert.True(t, err.HasError())
}

func TestLoadServiceLogsTableSizes(t *testing.T) {
	lines := []string{}
	lock := sync.Mutex{}
	logger := FuncLogger(func(s string) {
		lock.Lock()
		defer lock.Unlock()
		lines = append(lines, s)
	})

	_, err := LoadService("", WithLogger(logger), WithParallelism(2))
	require.True(t, err.IsNil())
	assert.Equal(t, []string{
		"built rook tables: 102,400 entries (819 kB)\n",
		"built bishop tables: 5,248 entries (42 kB)\n",
	}, lines)
}

func TestNewServiceRejectsSubsetMask(t *testing.T) {
	rook, bishop := loadSets(t)

	square := BoardIndexFromString("e4")
	subset := rook.Occupancies[square] &^ bitboards.SingleBitboard(BoardIndexFromString("e7"))

	search := bitboards.DefaultSearchOptions
	search.Rand = rand.New(rand.NewSource(8))
	magic, _, err := bitboards.FindMagic(square, subset, search)
	require.True(t, err.IsNil(), err.Error())
	require.True(t, bitboards.ValidateMagic(subset, magic))

	shrunk := MagicSet{
		append([]bitboards.MagicEntry{}, rook.Magics...),
		append([]bitboards.Bitboard{}, rook.Occupancies...),
	}
	shrunk.Occupancies[square] = subset
	shrunk.Magics[square] = bitboards.NewMagicEntry(magic, subset)

	s, err := NewService(shrunk, bishop)
	assert.Nil(t, s)
	assert.True(t, errors.Is(err, ErrInvalidMask))
	assert.Contains(t, err.Error(), "e4")
}

func TestNewServiceRejectsFullMask(t *testing.T) {
	rook, bishop := loadSets(t)

	full := MagicSet{
		append([]bitboards.MagicEntry{}, rook.Magics...),
		append([]bitboards.Bitboard{}, rook.Occupancies...),
	}
	full.Occupancies[0] = bitboards.AllOnes
	full.Magics[0] = bitboards.MagicEntry{Magic: 1, Shift: 0}

	assert.NotPanics(t, func() {
		s, err := NewService(full, bishop)
		assert.Nil(t, s)
		assert.True(t, errors.Is(err, ErrInvalidMask))
	})
}
