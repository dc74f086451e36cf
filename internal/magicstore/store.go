package magicstore

import (
	"errors"
	"fmt"

	"github.com/cricklet/magician/internal/bitboards"
	. "github.com/cricklet/magician/internal/helpers"
	"github.com/cricklet/magician/internal/magicfile"
	"github.com/dgraph-io/badger/v4"
)

// Store remembers magics that have already been found so an interrupted
// generation can pick up where it left off.
type Store struct {
	db *badger.DB
}

func open(opts badger.Options) (*Store, Error) {
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, Wrap(err)
	}
	return &Store{db: db}, NilError
}

func Open(dir string) (*Store, Error) {
	return open(badger.DefaultOptions(dir))
}

func OpenInMemory() (*Store, Error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func (s *Store) Close() Error {
	if s.db == nil {
		return NilError
	}
	err := s.db.Close()
	s.db = nil
	return Wrap(err)
}

func prefix(shape bitboards.Shape) []byte {
	return []byte(fmt.Sprintf("magic/%v/", shape))
}

func key(shape bitboards.Shape, square int) []byte {
	return []byte(fmt.Sprintf("magic/%v/%02d", shape, square))
}

func (s *Store) Put(shape bitboards.Shape, square int, entry bitboards.MagicEntry) Error {
	record := magicfile.EncodeMagic(entry)
	return Wrap(s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(shape, square), record[:])
	}))
}

func (s *Store) Get(shape bitboards.Shape, square int) (Optional[bitboards.MagicEntry], Error) {
	result := Empty[bitboards.MagicEntry]()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(shape, square))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			entry, err := magicfile.DecodeMagic(val)
			if !IsNil(err) {
				return err
			}
			result = Some(entry)
			return nil
		})
	})

	return result, Wrap(err)
}

func (s *Store) Count(shape bitboards.Shape) (int, Error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix(shape)

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, Wrap(err)
}

func (s *Store) Clear(shape bitboards.Shape) Error {
	return Wrap(s.db.DropPrefix(prefix(shape)))
}
