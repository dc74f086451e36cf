package bitboards

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	. "github.com/cricklet/magician/internal/helpers"
)

// MagicEntry hashes the blockers of one square into its attack table:
//
//	index = ((occupancy & mask) * Magic) >> Shift
//
// where Shift = 64 - OnesCount(mask), so the table has exactly
// 1<<OnesCount(mask) slots.
type MagicEntry struct {
	Magic uint64
	Shift uint8
}

func NewMagicEntry(magic uint64, mask Bitboard) MagicEntry {
	return MagicEntry{magic, ShiftForMask(mask)}
}

func ShiftForMask(mask Bitboard) uint8 {
	return uint8(64 - OnesCount(mask))
}

func (m MagicEntry) String() string {
	return fmt.Sprintf("{%v, %v}", m.Magic, m.Shift)
}

func (m MagicEntry) TableSize() int {
	return 1 << (64 - int(m.Shift))
}

func MagicIndex(blockers Bitboard, entry MagicEntry) int {
	return int((uint64(blockers) * entry.Magic) >> entry.Shift)
}

var ErrSearchExhausted = errors.New("magic search exhausted")

type SearchOptions struct {
	// Attempts is the number of candidates tried before giving up.
	Attempts int
	// Candidates have between MinBits and MaxBits bits set (inclusive).
	MinBits int
	MaxBits int
	// Rand defaults to a time-seeded source. Not safe for concurrent use.
	Rand *rand.Rand
}

var DefaultSearchOptions = SearchOptions{
	Attempts: 1_000_000,
	MinBits:  6,
	MaxBits:  10,
}

func (o SearchOptions) Validate() Error {
	if o.Attempts < 1 {
		return Errorf("search needs at least one attempt, got %v", o.Attempts)
	}
	if o.MinBits < 1 || o.MaxBits > 64 || o.MinBits > o.MaxBits {
		return Errorf("invalid candidate bit range %v..%v", o.MinBits, o.MaxBits)
	}
	return NilError
}

func (o SearchOptions) rng() *rand.Rand {
	if o.Rand != nil {
		return o.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// SparseRandom64 returns a value with a uniformly chosen number of set bits
// in [minBits, maxBits], each at a random position.
func SparseRandom64(rng *rand.Rand, minBits int, maxBits int) uint64 {
	numBits := minBits + rng.Intn(maxBits-minBits+1)

	candidate := uint64(0)
	setBits := 0
	for setBits < numBits {
		bit := uint64(1) << rng.Intn(64)
		if candidate&bit == 0 {
			candidate |= bit
			setBits++
		}
	}
	return candidate
}

// slotTracker detects index collisions without clearing the table between
// candidates: a slot is taken iff it holds the current generation.
type slotTracker struct {
	slots      []uint32
	generation uint32
}

func newSlotTracker(size int) *slotTracker {
	return &slotTracker{slots: make([]uint32, size)}
}

func (t *slotTracker) isPerfect(configs []Bitboard, magic uint64, shift uint8) bool {
	t.generation++
	if t.generation == 0 {
		for i := range t.slots {
			t.slots[i] = 0
		}
		t.generation = 1
	}

	indexMask := uint64(len(t.slots) - 1)
	for _, blockers := range configs {
		index := ((uint64(blockers) * magic) >> shift) & indexMask
		if t.slots[index] == t.generation {
			return false
		}
		t.slots[index] = t.generation
	}
	return true
}

// FindMagic searches for a multiplier that sends every blocker configuration
// of mask to its own slot. It returns the magic and the number of candidates
// tried, or ErrSearchExhausted once options.Attempts candidates have collided.
func FindMagic(square int, mask Bitboard, options SearchOptions) (uint64, int, Error) {
	err := options.Validate()
	if !IsNil(err) {
		return 0, 0, err
	}

	if OnesCount(mask) > MaxMaskBits {
		return 0, 0, Errorf("square %v: mask has %v bits, at most %v are supported",
			StringFromBoardIndex(square), OnesCount(mask), MaxMaskBits)
	}

	configs := EnumerateBlockerConfigs(mask)
	shift := ShiftForMask(mask)
	if len(configs) != 1<<(64-int(shift)) {
		return 0, 0, Errorf("square %v: %v blocker configurations for %v relevant bits",
			StringFromBoardIndex(square), len(configs), OnesCount(mask))
	}

	rng := options.rng()
	tracker := newSlotTracker(len(configs))

	for attempt := 1; attempt <= options.Attempts; attempt++ {
		candidate := SparseRandom64(rng, options.MinBits, options.MaxBits)
		if tracker.isPerfect(configs, candidate, shift) {
			return candidate, attempt, NilError
		}
	}

	return 0, options.Attempts, Errorf("square %v (%v relevant bits) after %v attempts: %w",
		StringFromBoardIndex(square), OnesCount(mask), options.Attempts, ErrSearchExhausted)
}

// ValidateMagic checks every blocker configuration of mask, not a sample.
// Masks wider than MaxMaskBits are never valid.
func ValidateMagic(mask Bitboard, magic uint64) bool {
	if OnesCount(mask) > MaxMaskBits {
		return false
	}
	configs := EnumerateBlockerConfigs(mask)
	return newSlotTracker(len(configs)).isPerfect(configs, magic, ShiftForMask(mask))
}
