package magicfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cricklet/magician/internal/bitboards"
	. "github.com/cricklet/magician/internal/helpers"
)

const (
	MagicRecordSize     = 9
	OccupancyRecordSize = 8

	NumSquares = 64
)

var ErrRecordCount = errors.New("wrong number of records")

func MagicsFileName(shape bitboards.Shape) string {
	return fmt.Sprintf("%v_magics.bin", shape)
}

func OccupanciesFileName(shape bitboards.Shape) string {
	return fmt.Sprintf("%v_occupancies.bin", shape)
}

// EncodeMagic writes the 8 byte little-endian magic followed by the shift.
func EncodeMagic(entry bitboards.MagicEntry) [MagicRecordSize]byte {
	record := [MagicRecordSize]byte{}
	binary.LittleEndian.PutUint64(record[:8], entry.Magic)
	record[8] = entry.Shift
	return record
}

func DecodeMagic(record []byte) (bitboards.MagicEntry, Error) {
	if len(record) != MagicRecordSize {
		return bitboards.MagicEntry{}, Errorf("magic record has %v bytes, expected %v", len(record), MagicRecordSize)
	}
	return bitboards.MagicEntry{
		Magic: binary.LittleEndian.Uint64(record[:8]),
		Shift: record[8],
	}, NilError
}

func WriteMagics(w io.Writer, entries []bitboards.MagicEntry) Error {
	for _, entry := range entries {
		record := EncodeMagic(entry)
		if _, err := w.Write(record[:]); err != nil {
			return Wrap(err)
		}
	}
	return NilError
}

func WriteOccupancies(w io.Writer, masks []bitboards.Bitboard) Error {
	record := [OccupancyRecordSize]byte{}
	for _, mask := range masks {
		binary.LittleEndian.PutUint64(record[:], uint64(mask))
		if _, err := w.Write(record[:]); err != nil {
			return Wrap(err)
		}
	}
	return NilError
}

// eachRecord calls f with every complete record in r. A partial record at the
// end of the stream is dropped.
func eachRecord(r io.Reader, size int, f func([]byte) Error) Error {
	record := make([]byte, size)
	for {
		_, err := io.ReadFull(r, record)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return NilError
		}
		if err != nil {
			return Wrap(err)
		}

		result := f(record)
		if !IsNil(result) {
			return result
		}
	}
}

func ReadMagics(r io.Reader) ([]bitboards.MagicEntry, Error) {
	result := []bitboards.MagicEntry{}
	err := eachRecord(r, MagicRecordSize, func(record []byte) Error {
		entry, err := DecodeMagic(record)
		if !IsNil(err) {
			return err
		}
		result = append(result, entry)
		return NilError
	})
	return result, err
}

func ReadOccupancies(r io.Reader) ([]bitboards.Bitboard, Error) {
	result := []bitboards.Bitboard{}
	err := eachRecord(r, OccupancyRecordSize, func(record []byte) Error {
		result = append(result, bitboards.Bitboard(binary.LittleEndian.Uint64(record)))
		return NilError
	})
	return result, err
}

// RequireSquareCount fails with ErrRecordCount unless there is one record per
// square.
func RequireSquareCount(n int, what string) Error {
	if n != NumSquares {
		return Errorf("%v: %v records, expected %v: %w", what, n, NumSquares, ErrRecordCount)
	}
	return NilError
}
