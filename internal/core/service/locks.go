package service

import (
	"hash/fnv"
	"sync"
)

const lockStripes = 64

// stripedLock serializes operations per string key by hashing the key onto a
// fixed set of mutexes. Loan creation and return lock on the book isbn so the
// availability check, the decrement and the increment act on fresh state;
// loan return additionally locks on the loan id to prevent a concurrent
// double return, and the loan-history append locks on the user id.
type stripedLock struct {
	stripes [lockStripes]sync.Mutex
}

// of maps a key deterministically to its stripe mutex.
func (s *stripedLock) of(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &s.stripes[int(h.Sum32())%lockStripes]
}
