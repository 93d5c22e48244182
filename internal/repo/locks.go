package repo

import (
	"sync"

	"github.com/yourname/cardpay-bot/internal/domain"
)

type lockShard struct {
	mu    sync.Mutex
	locks map[domain.UserID]*sync.Mutex
}

// UserLocks hands out one mutex per user. Holding it serializes everything
// done on behalf of that user; other users are unaffected.
// Mutexes are never removed: they live as long as the user's cards, which
// are never deleted either.
type UserLocks struct {
	shards [shardCount]*lockShard
}

func NewUserLocks() *UserLocks {
	l := &UserLocks{}
	for i := range l.shards {
		l.shards[i] = &lockShard{locks: make(map[domain.UserID]*sync.Mutex)}
	}
	return l
}

// Lock blocks until the user's mutex is held and returns its unlock func.
func (l *UserLocks) Lock(user domain.UserID) func() {
	s := l.shards[shardIndex(user)]
	s.mu.Lock()
	m, ok := s.locks[user]
	if !ok {
		m = &sync.Mutex{}
		s.locks[user] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}
