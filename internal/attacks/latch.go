package attacks

import (
	"sync"
	"sync/atomic"

	"github.com/cricklet/magician/internal/bitboards"
	. "github.com/cricklet/magician/internal/helpers"
)

var (
	_default  atomic.Pointer[Service]
	_initLock sync.Mutex
)

// Init loads the process-wide Service from dir. Once it has succeeded,
// further calls do nothing. A failed Init leaves nothing published and can be
// retried.
func Init(dir string, options ...ServiceOption) Error {
	_initLock.Lock()
	defer _initLock.Unlock()

	if _default.Load() != nil {
		return NilError
	}

	service, err := LoadService(dir, options...)
	if !IsNil(err) {
		return err
	}

	_default.Store(service)
	return NilError
}

// InitWith publishes an already built service, unless one is published.
func InitWith(service *Service) {
	if service == nil {
		panic("attacks: nil service")
	}
	_default.CompareAndSwap(nil, service)
}

func Ready() bool {
	return _default.Load() != nil
}

func Default() *Service {
	service := _default.Load()
	if service == nil {
		panic("attacks: queried before Init")
	}
	return service
}

func RookAttacks(square int, blockers bitboards.Bitboard) bitboards.Bitboard {
	return Default().RookAttacks(square, blockers)
}

func BishopAttacks(square int, blockers bitboards.Bitboard) bitboards.Bitboard {
	return Default().BishopAttacks(square, blockers)
}

func QueenAttacks(square int, blockers bitboards.Bitboard) bitboards.Bitboard {
	return Default().QueenAttacks(square, blockers)
}
