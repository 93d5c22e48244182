package repo

import (
	"sync"

	"github.com/yourname/cardpay-bot/internal/domain"
)

type pendingShard struct {
	mu      sync.Mutex
	pending map[domain.UserID]domain.PendingInput
}

// Pending tracks at most one outstanding typed-value request per user.
// Requests never expire.
type Pending struct {
	shards [shardCount]*pendingShard
}

func NewPending() *Pending {
	p := &Pending{}
	for i := range p.shards {
		p.shards[i] = &pendingShard{pending: make(map[domain.UserID]domain.PendingInput)}
	}
	return p
}

func (r *Pending) shard(user domain.UserID) *pendingShard {
	return r.shards[shardIndex(user)]
}

// Request replaces whatever the user was asked before.
func (r *Pending) Request(user domain.UserID, kind domain.InputKind, target string) {
	s := r.shard(user)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[user] = domain.PendingInput{Kind: kind, Target: target}
}

// Consume removes and returns the user's pending request.
func (r *Pending) Consume(user domain.UserID) (domain.PendingInput, bool) {
	s := r.shard(user)
	s.mu.Lock()
	defer s.mu.Unlock()

	in, ok := s.pending[user]
	if ok {
		delete(s.pending, user)
	}
	return in, ok
}

func (r *Pending) State(user domain.UserID) domain.ConversationState {
	s := r.shard(user)
	s.mu.Lock()
	defer s.mu.Unlock()

	if in, ok := s.pending[user]; ok {
		return domain.AwaitingInput(in)
	}
	return domain.Idle()
}
