package generate

import (
	"io"
	"path/filepath"

	"github.com/cricklet/magician/internal/attacks"
	"github.com/cricklet/magician/internal/bitboards"
	. "github.com/cricklet/magician/internal/helpers"
	"github.com/cricklet/magician/internal/magicfile"
	"github.com/cricklet/magician/internal/magicstore"
	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
)

// Result holds a complete set of magics for one shape.
type Result struct {
	Shape       bitboards.Shape
	Magics      [64]bitboards.MagicEntry
	Occupancies [64]bitboards.Bitboard

	// Attempts is the total number of candidates tried. Magics reused from
	// the store count towards Cached instead.
	Attempts int
	Cached   int
}

func (r Result) MagicSet() attacks.MagicSet {
	return attacks.MagicSet{
		Magics:      append([]bitboards.MagicEntry{}, r.Magics[:]...),
		Occupancies: append([]bitboards.Bitboard{}, r.Occupancies[:]...),
	}
}

type Generator struct {
	logger   Logger
	store    *magicstore.Store
	search   bitboards.SearchOptions
	progress io.Writer
}

type GeneratorOption func(*Generator)

func WithLogger(logger Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithStore reuses magics found by earlier runs and records new ones.
func WithStore(store *magicstore.Store) GeneratorOption {
	return func(g *Generator) {
		g.store = store
	}
}

func WithSearchOptions(search bitboards.SearchOptions) GeneratorOption {
	return func(g *Generator) {
		g.search = search
	}
}

func WithProgress(out io.Writer) GeneratorOption {
	return func(g *Generator) {
		g.progress = out
	}
}

func NewGenerator(options ...GeneratorOption) *Generator {
	g := &Generator{
		logger: &SilentLogger,
		search: bitboards.DefaultSearchOptions,
	}
	for _, option := range options {
		option(g)
	}
	return g
}

func (g *Generator) progressBar(shape bitboards.Shape) *progressbar.ProgressBar {
	if g.progress == nil {
		return nil
	}
	return progressbar.NewOptions(64,
		progressbar.OptionSetWriter(g.progress),
		progressbar.OptionSetDescription(shape.String()),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(32),
	)
}

func (g *Generator) cached(shape bitboards.Shape, square int, mask bitboards.Bitboard) (Optional[bitboards.MagicEntry], Error) {
	if g.store == nil {
		return Empty[bitboards.MagicEntry](), NilError
	}

	entry, err := g.store.Get(shape, square)
	if !IsNil(err) || entry.IsEmpty() {
		return entry, err
	}

	// stale entries (from a different mask definition) are searched again
	if entry.Value().Shift != bitboards.ShiftForMask(mask) || !bitboards.ValidateMagic(mask, entry.Value().Magic) {
		g.logger.Printf("%v %v: ignoring cached magic %#x\n", shape, StringFromBoardIndex(square), entry.Value().Magic)
		return Empty[bitboards.MagicEntry](), NilError
	}
	return entry, NilError
}

// GenerateShape finds a magic for every square of shape. It fails as soon as
// one square exhausts its search budget.
func (g *Generator) GenerateShape(shape bitboards.Shape) (Result, Error) {
	result := Result{Shape: shape}

	bar := g.progressBar(shape)
	if bar != nil {
		defer bar.Close()
	}

	for square := 0; square < 64; square++ {
		mask := shape.OccupancyMask(square)
		result.Occupancies[square] = mask

		cached, err := g.cached(shape, square, mask)
		if !IsNil(err) {
			return Result{}, err
		}

		if cached.HasValue() {
			result.Magics[square] = cached.Value()
			result.Cached++
		} else {
			magic, attempts, err := bitboards.FindMagic(square, mask, g.search)
			result.Attempts += attempts
			if !IsNil(err) {
				g.logger.Printf("%v %v: %v\n", shape, StringFromBoardIndex(square), err)
				return Result{}, err
			}

			entry := bitboards.NewMagicEntry(magic, mask)
			result.Magics[square] = entry
			g.logger.Printf("%v %v: %#x after %v attempts\n",
				shape, StringFromBoardIndex(square), magic, humanize.Comma(int64(attempts)))

			if g.store != nil {
				err = g.store.Put(shape, square, entry)
				if !IsNil(err) {
					return Result{}, err
				}
			}
		}

		if bar != nil {
			bar.Add(1)
		}
	}

	g.logger.Printf("%v: %v attempts, %v cached\n", shape, humanize.Comma(int64(result.Attempts)), result.Cached)
	return result, NilError
}

// Write saves the magics and occupancies files for result.Shape into dir.
func Write(dir string, result Result) Error {
	set := result.MagicSet()
	return Join(
		magicfile.SaveMagics(filepath.Join(dir, magicfile.MagicsFileName(result.Shape)), set.Magics),
		magicfile.SaveOccupancies(filepath.Join(dir, magicfile.OccupanciesFileName(result.Shape)), set.Occupancies),
	)
}

// Run generates every shape before writing anything, so a failed search
// leaves the files in dir untouched.
func (g *Generator) Run(dir string, shapes []bitboards.Shape) ([]Result, Error) {
	results := []Result{}
	for _, shape := range shapes {
		result, err := g.GenerateShape(shape)
		if !IsNil(err) {
			return nil, err
		}
		results = append(results, result)
	}

	for _, result := range results {
		err := Write(dir, result)
		if !IsNil(err) {
			return nil, err
		}
		g.logger.Printf("wrote %v and %v\n",
			magicfile.MagicsFileName(result.Shape), magicfile.OccupanciesFileName(result.Shape))
	}

	return results, NilError
}
