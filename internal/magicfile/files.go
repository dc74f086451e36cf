package magicfile

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/cricklet/magician/internal/bitboards"
	. "github.com/cricklet/magician/internal/helpers"
)

// writeAtomically writes to a temp file in the target's directory and renames
// it into place once everything has been flushed.
func writeAtomically(path string, write func(w io.Writer) Error) Error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Wrap(err)
	}

	file, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return Wrap(err)
	}
	tempPath := file.Name()

	buffered := bufio.NewWriter(file)
	result := write(buffered)
	if IsNil(result) {
		result = Wrap(buffered.Flush())
	}
	if IsNil(result) {
		result = Wrap(file.Sync())
	}
	result = Join(result, Wrap(file.Close()))
	if IsNil(result) {
		result = Wrap(os.Rename(tempPath, path))
	}

	if !IsNil(result) {
		os.Remove(tempPath)
	}
	return result
}

func readFile[T any](path string, read func(r io.Reader) ([]T, Error)) ([]T, Error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Wrap(err)
	}
	defer file.Close()

	return read(bufio.NewReader(file))
}

func SaveMagics(path string, entries []bitboards.MagicEntry) Error {
	return writeAtomically(path, func(w io.Writer) Error {
		return WriteMagics(w, entries)
	})
}

func LoadMagics(path string) ([]bitboards.MagicEntry, Error) {
	return readFile(path, ReadMagics)
}

func SaveOccupancies(path string, masks []bitboards.Bitboard) Error {
	return writeAtomically(path, func(w io.Writer) Error {
		return WriteOccupancies(w, masks)
	})
}

func LoadOccupancies(path string) ([]bitboards.Bitboard, Error) {
	return readFile(path, ReadOccupancies)
}
