package generate

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/cricklet/magician/internal/bitboards"
	. "github.com/cricklet/magician/internal/helpers"
)

type Options struct {
	Search bitboards.SearchOptions
	Shapes []bitboards.Shape

	Dir      string
	StoreDir string
	Seed     Optional[int64]
	Profile  bool
}

func parseInt(arg string) (int64, Error) {
	n, err := strconv.ParseInt(strings.SplitN(arg, "=", 2)[1], 10, 64)
	if err != nil {
		return 0, Wrap(err)
	}
	return n, NilError
}

// OptionsFromArgs parses "rook", "bishop" or "all" plus key=value settings:
// attempts, minBits, maxBits, seed, dir, store and the bare flag profile.
func OptionsFromArgs(args ...string) (Options, Error) {
	options := Options{
		Search: bitboards.DefaultSearchOptions,
	}

	for _, arg := range args {
		var err Error
		var n int64

		if arg == "all" {
			options.Shapes = append(options.Shapes, bitboards.AllShapes...)
		} else if shape, shapeErr := bitboards.ShapeFromString(arg); IsNil(shapeErr) {
			options.Shapes = append(options.Shapes, shape)
		} else if strings.HasPrefix(arg, "attempts=") {
			n, err = parseInt(arg)
			options.Search.Attempts = int(n)
		} else if strings.HasPrefix(arg, "minBits=") {
			n, err = parseInt(arg)
			options.Search.MinBits = int(n)
		} else if strings.HasPrefix(arg, "maxBits=") {
			n, err = parseInt(arg)
			options.Search.MaxBits = int(n)
		} else if strings.HasPrefix(arg, "seed=") {
			n, err = parseInt(arg)
			options.Seed = Some(n)
		} else if strings.HasPrefix(arg, "dir=") {
			options.Dir = strings.TrimPrefix(arg, "dir=")
		} else if strings.HasPrefix(arg, "store=") {
			options.StoreDir = strings.TrimPrefix(arg, "store=")
		} else if arg == "profile" {
			options.Profile = true
		} else {
			return options, Errorf("unknown option: %s", arg)
		}

		if !IsNil(err) {
			return options, Errorf("%s: %w", arg, err)
		}
	}

	if len(options.Shapes) == 0 {
		options.Shapes = bitboards.AllShapes
	}
	if options.Dir == "" {
		options.Dir = DataDir()
	}
	if options.Seed.HasValue() {
		options.Search.Rand = rand.New(rand.NewSource(options.Seed.Value()))
	}

	return options, options.Search.Validate()
}
