package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cricklet/magician/internal/attacks"
	"github.com/cricklet/magician/internal/bitboards"
	"github.com/cricklet/magician/internal/generate"
	. "github.com/cricklet/magician/internal/helpers"
	"github.com/cricklet/magician/internal/magicstore"
	"github.com/dustin/go-humanize"
)

type commonArgs struct {
	dir  string
	n    int
	rest []string
}

func parseArgs(args []string) (commonArgs, Error) {
	result := commonArgs{n: 10_000_000}
	for _, arg := range args {
		if strings.HasPrefix(arg, "dir=") {
			result.dir = strings.TrimPrefix(arg, "dir=")
		} else if strings.HasPrefix(arg, "n=") {
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "n="))
			if err != nil || n < 1 {
				return result, Errorf("bad lookup count: %s", arg)
			}
			result.n = n
		} else if arg != "profile" {
			result.rest = append(result.rest, arg)
		}
	}
	return result, NilError
}

var stdoutLogger = FuncLogger(func(s string) {
	fmt.Print(s)
})

func runGenerate(args []string) Error {
	options, err := generate.OptionsFromArgs(args...)
	if !IsNil(err) {
		return err
	}

	live := NewLiveLogger(os.Stdout)
	defer live.Close()

	generatorOptions := []generate.GeneratorOption{
		generate.WithLogger(NewFooterLogger(live, 0)),
		generate.WithSearchOptions(options.Search),
		generate.WithProgress(os.Stderr),
	}

	if options.StoreDir != "" {
		store, err := magicstore.Open(options.StoreDir)
		if !IsNil(err) {
			return err
		}
		defer store.Close()
		generatorOptions = append(generatorOptions, generate.WithStore(store))
	}

	start := time.Now()
	results, err := generate.NewGenerator(generatorOptions...).Run(options.Dir, options.Shapes)
	if !IsNil(err) {
		return err
	}

	for _, result := range results {
		live.Printf("%v: %v candidates tried, %v magics reused\n",
			result.Shape, humanize.Comma(int64(result.Attempts)), result.Cached)
	}
	live.Printf("wrote %v in %v\n", options.Dir, time.Since(start).Round(time.Millisecond))

	if len(options.Shapes) < len(bitboards.AllShapes) {
		return NilError
	}

	service, err := attacks.LoadService(options.Dir, attacks.WithLogger(live))
	if !IsNil(err) {
		return err
	}
	return service.Verify()
}

func runVerify(args []string) Error {
	parsed, err := parseArgs(args)
	if !IsNil(err) {
		return err
	}
	if len(parsed.rest) > 0 {
		return Errorf("unknown options: %v", parsed.rest)
	}

	service, err := attacks.LoadService(parsed.dir, attacks.WithLogger(stdoutLogger))
	if !IsNil(err) {
		return err
	}

	err = service.Verify()
	if !IsNil(err) {
		return err
	}

	for _, shape := range bitboards.AllShapes {
		fmt.Printf("%v: 64 magics, every blocker configuration matches\n", shape)
	}
	return NilError
}

type benchQuery struct {
	square    int
	occupancy bitboards.Bitboard
}

func runBench(args []string) Error {
	parsed, err := parseArgs(args)
	if !IsNil(err) {
		return err
	}

	service, err := attacks.LoadService(parsed.dir, attacks.WithLogger(stdoutLogger))
	if !IsNil(err) {
		return err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	queries := make([]benchQuery, 4096)
	for i := range queries {
		queries[i] = benchQuery{rng.Intn(64), bitboards.Bitboard(rng.Uint64() & rng.Uint64())}
	}

	lookups := []struct {
		name   string
		lookup func(int, bitboards.Bitboard) bitboards.Bitboard
	}{
		{"rook", service.RookAttacks},
		{"bishop", service.BishopAttacks},
		{"queen", service.QueenAttacks},
	}

	const batch = 1 << 16
	checksum := bitboards.Bitboard(0)

	for _, l := range lookups {
		bar := CreateProgressBar(parsed.n, l.name)
		start := time.Now()

		for i := 0; i < parsed.n; i++ {
			q := queries[i&(len(queries)-1)]
			checksum ^= l.lookup(q.square, q.occupancy)
			if i%batch == batch-1 {
				bar.Add(batch)
			}
		}

		elapsed := time.Since(start)
		bar.Set(parsed.n)
		bar.Close()

		perSecond := int64(float64(parsed.n) / elapsed.Seconds())
		fmt.Printf("%v: %v lookups in %v (%v/s)\n",
			l.name, humanize.Comma(int64(parsed.n)), elapsed.Round(time.Microsecond), humanize.Comma(perSecond))
	}

	fmt.Printf("checksum %#x\n", uint64(checksum))
	return NilError
}

func runShow(args []string) Error {
	parsed, err := parseArgs(args)
	if !IsNil(err) {
		return err
	}
	if len(parsed.rest) < 2 {
		return Errorf("show needs a piece and a square")
	}

	piece := PieceTypeFromString(parsed.rest[0])
	square, err := SquareFromString(parsed.rest[1])
	if !IsNil(err) {
		return err
	}
	blockers, err := bitboards.BitboardFromSquares(parsed.rest[2:])
	if !IsNil(err) {
		return err
	}

	service, err := attacks.LoadService(parsed.dir)
	if !IsNil(err) {
		return err
	}

	result, err := service.Attacks(piece, square, blockers)
	if !IsNil(err) {
		return err
	}

	for _, shape := range bitboards.ShapesForPieceType(piece) {
		entry, mask := service.Magic(shape, square)
		fmt.Printf("%v %v: magic %#016x, shift %v, %v relevant squares\n",
			shape, StringFromBoardIndex(square), entry.Magic, entry.Shift, bitboards.OnesCount(mask))
	}
	fmt.Printf("\nblockers:\n%v\n\nattacks:\n%v\n\n%v\n", blockers, result, strings.Join(result.Squares(), " "))
	return NilError
}
